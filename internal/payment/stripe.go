package payment

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/evenlines/storefront/internal/catalog"
	"github.com/evenlines/storefront/internal/config"
)

// Catalog is the slice of the product catalog the adapters need.
type Catalog interface {
	Variant(ctx context.Context, id string) (*catalog.Product, error)
}

// stripeLineItem follows the provider's price_data shape.
type stripeLineItem struct {
	PriceData struct {
		Currency    string `json:"currency"`
		ProductData struct {
			Name        string   `json:"name"`
			Images      []string `json:"images"`
			Description string   `json:"description"`
		} `json:"product_data"`
		UnitAmount int64 `json:"unit_amount"` // cents
	} `json:"price_data"`
	Quantity int `json:"quantity"`
}

// StripeGateway fabricates Stripe-shaped checkout sessions. Latency is
// simulated and every call succeeds; the session URL goes nowhere.
type StripeGateway struct {
	cfg     config.PaymentConfig
	catalog Catalog
	latency time.Duration
	sleep   sleepFunc
}

func NewStripeGateway(cfg config.PaymentConfig, cat Catalog, latency time.Duration) *StripeGateway {
	return &StripeGateway{
		cfg:     cfg,
		catalog: cat,
		latency: latency,
		sleep:   sleepCtx,
	}
}

func (g *StripeGateway) CreateCheckout(ctx context.Context, items []LineItem, total float64) (*Session, error) {
	lineItems, err := g.buildLineItems(ctx, items)
	if err != nil {
		log.Printf("checkout creation error: %v", err)
		return nil, ErrCheckoutFailed
	}

	if err := g.sleep(ctx, g.latency); err != nil {
		return nil, err
	}

	token := randomToken(9)
	session := &Session{
		SessionID:   "cs_mock_" + token,
		CheckoutURL: fmt.Sprintf("https://checkout.stripe.com/pay/%s", randomToken(9)),
		AmountTotal: toCents(total),
		Currency:    g.cfg.Currency,
	}

	log.Printf("created checkout session %s for %d line items (%d %s)",
		session.SessionID, len(lineItems), session.AmountTotal, session.Currency)
	return session, nil
}

func (g *StripeGateway) buildLineItems(ctx context.Context, items []LineItem) ([]stripeLineItem, error) {
	out := make([]stripeLineItem, 0, len(items))
	for _, item := range items {
		li := stripeLineItem{Quantity: item.Quantity}
		li.PriceData.Currency = g.cfg.Currency
		li.PriceData.ProductData.Name = item.Name
		li.PriceData.ProductData.Images = []string{item.Image}
		li.PriceData.UnitAmount = toCents(item.UnitPrice)

		if variant, err := g.catalog.Variant(ctx, item.ID); err == nil {
			li.PriceData.ProductData.Description = fmt.Sprintf("%s - Even Lines Merchandise", variant.Title)
		} else {
			li.PriceData.ProductData.Description = item.Name
		}

		out = append(out, li)
	}
	return out, nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
