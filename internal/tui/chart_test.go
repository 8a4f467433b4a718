package tui

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/toeirei/panaderia/internal/core"
)

func TestBarWidth(t *testing.T) {
	d := decimal.NewFromInt
	cases := []struct {
		v, max decimal.Decimal
		width  int
		want   int
	}{
		{d(10), d(10), 20, 20},
		{d(5), d(10), 20, 10},
		{d(1), d(1000), 20, 1}, // tiny but positive values stay visible
		{d(0), d(10), 20, 0},
		{d(-3), d(10), 20, 0},
		{d(5), d(0), 20, 0},
		{d(50), d(10), 20, 20},
		{d(5), d(10), 0, 0},
	}
	for _, c := range cases {
		if got := barWidth(c.v, c.max, c.width); got != c.want {
			t.Fatalf("barWidth(%s, %s, %d) = %d, want %d", c.v, c.max, c.width, got, c.want)
		}
	}
}

func TestRenderBarChart_OneRowPerLabel(t *testing.T) {
	s := core.Series{
		Label:  "Ventas",
		Labels: []string{"Lun", "Mar", "Mié"},
		Values: []decimal.Decimal{decimal.NewFromInt(100), decimal.NewFromInt(50), decimal.Zero},
	}
	out := renderBarChart(s, 40)
	for _, l := range s.Labels {
		if !strings.Contains(out, l) {
			t.Fatalf("chart is missing label %q:\n%s", l, out)
		}
	}
	if !strings.Contains(out, "Ventas") {
		t.Fatalf("chart is missing its title:\n%s", out)
	}
}
