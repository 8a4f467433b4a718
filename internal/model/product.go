package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is an item in the bakery catalogue.
type Product struct {
	ID           int             `json:"id"`
	NameProduct  string          `json:"nameProduct" validate:"required,min=2,max=100"`
	Description  string          `json:"description" validate:"max=500"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category" validate:"required"`
	Units        int             `json:"units" validate:"gte=0"`
	Status       string          `json:"status"`
	CreationDate string          `json:"creationDate"`
	ImageURL     string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// IsActive reports whether the product has status A.
func (p Product) IsActive() bool { return p.Status == StatusActive }

func (p Product) String() string {
	return fmt.Sprintf("#%d %s · %s · %s", p.ID, p.NameProduct, p.Category, FormatSoles(p.Price))
}
