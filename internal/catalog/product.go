package catalog

import "time"

// Product is a merch variant. The catalog is read-only reference data:
// cart items are joined against it by id when building gateway line items.
type Product struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Price            float64   `json:"price"`
	Currency         string    `json:"currency"`
	Inventory        int       `json:"inventory"`
	WeightKG         float64   `json:"weight_kg"`
	RequiresShipping bool      `json:"requires_shipping"`
	CreatedAt        time.Time `json:"created_at"`
}
