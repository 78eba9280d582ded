// Package pricing derives order totals from a cart subtotal. Shipping and
// tax are flat constants matching the storefront's single-jurisdiction
// setup; there is no tier logic.
package pricing

import "github.com/evenlines/storefront/internal/cart"

const (
	ShippingFlat = 15.00
	TaxRate      = 0.15
	Currency     = "CAD"
)

type Quote struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

func Calculate(subtotal float64) Quote {
	tax := subtotal * TaxRate
	return Quote{
		Subtotal: subtotal,
		Shipping: ShippingFlat,
		Tax:      tax,
		Total:    subtotal + ShippingFlat + tax,
		Currency: Currency,
	}
}

func ForCart(c *cart.Cart) Quote {
	return Calculate(c.TotalPrice())
}
