package checkout

import (
	"context"
	"crypto/rand"
	"log"
	"math/big"

	"github.com/evenlines/storefront/internal/cart"
)

type ShippingInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PaymentInfo is held by the flow for the gateway handoff only. It is
// never logged, never persisted, and must never appear on an Order.
type PaymentInfo struct {
	CardholderName string
	CardNumber     string
	Expiry         string // MM/YY
	CVV            string
}

// Order is the synthetic record produced at place-order time. The card
// details are deliberately absent from this type.
type Order struct {
	Items     []cart.Item  `json:"items"`
	Shipping  ShippingInfo `json:"shipping"`
	Total     float64      `json:"total"`
	OrderDate string       `json:"order_date"` // ISO-8601
	OrderID   string       `json:"order_id"`
}

const orderIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderID generates the short uppercase order code printed on the
// confirmation screen.
func NewOrderID() string {
	b := make([]byte, 9)
	max := big.NewInt(int64(len(orderIDAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = '0'
			continue
		}
		b[i] = orderIDAlphabet[n.Int64()]
	}
	return string(b)
}

// OrderRepository is the boundary to a real order backend. Nothing durable
// sits behind it in this system.
type OrderRepository interface {
	SaveOrder(ctx context.Context, order *Order) error
}

// LogOrders is the default OrderRepository: it only logs the order id.
type LogOrders struct{}

func (LogOrders) SaveOrder(_ context.Context, order *Order) error {
	log.Printf("order %s accepted (total %.2f)", order.OrderID, order.Total)
	return nil
}
