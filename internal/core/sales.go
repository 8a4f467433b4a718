package core

import (
	"github.com/shopspring/decimal"
	"github.com/toeirei/panaderia/util/slicest"
)

// Series is one labelled data set of a bar chart.
type Series struct {
	Label  string
	Labels []string
	Values []decimal.Decimal
}

// Max returns the largest value, or zero for an empty series.
func (s Series) Max() decimal.Decimal {
	m := decimal.Zero
	for _, v := range s.Values {
		if v.GreaterThan(m) {
			m = v
		}
	}
	return m
}

// Sum adds up the values.
func (s Series) Sum() decimal.Decimal {
	return decimal.Sum(decimal.Zero, s.Values...)
}

func ints(vs ...int64) []decimal.Decimal {
	return slicest.Map(vs, decimal.NewFromInt)
}

// WeeklySales is the demo sales series shown on the dashboard. The backend
// has no sales endpoint yet.
func WeeklySales() Series {
	return Series{
		Label:  "Ventas",
		Labels: []string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"},
		Values: ints(1200, 1900, 1700, 2100, 2500, 2200, 1800),
	}
}

// TopProducts is the demo best-seller series shown on the dashboard.
func TopProducts() Series {
	return Series{
		Label:  "Unidades Vendidas",
		Labels: []string{"Pan Integral", "Croissants", "Baguette", "Donas", "Torta Chocolate"},
		Values: ints(120, 90, 75, 60, 45),
	}
}
