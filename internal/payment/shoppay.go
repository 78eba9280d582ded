package payment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/evenlines/storefront/internal/config"
)

// shopPayLineItem follows the shop's variant line-item shape.
type shopPayLineItem struct {
	VariantID  string            `json:"variant_id"`
	Quantity   int               `json:"quantity"`
	Properties map[string]string `json:"properties"`
}

// ShopPayGateway fabricates Shop Pay-shaped checkouts: the session points
// at a checkout URL on the shop domain with the total as a query parameter.
type ShopPayGateway struct {
	cfg     config.PaymentConfig
	catalog Catalog
	latency time.Duration
	sleep   sleepFunc
}

func NewShopPayGateway(cfg config.PaymentConfig, cat Catalog, latency time.Duration) *ShopPayGateway {
	return &ShopPayGateway{
		cfg:     cfg,
		catalog: cat,
		latency: latency,
		sleep:   sleepCtx,
	}
}

func (g *ShopPayGateway) CreateCheckout(ctx context.Context, items []LineItem, total float64) (*Session, error) {
	lineItems := g.buildLineItems(ctx, items)

	if err := g.sleep(ctx, g.latency); err != nil {
		return nil, err
	}

	session := &Session{
		SessionID:   "chk_" + randomToken(9),
		CheckoutURL: fmt.Sprintf("https://%s/checkout?shop_pay=true&total=%.2f", g.cfg.ShopDomain, total),
		AmountTotal: toCents(total),
		Currency:    g.cfg.Currency,
	}

	log.Printf("created shop pay checkout %s for %d line items", session.SessionID, len(lineItems))
	return session, nil
}

func (g *ShopPayGateway) buildLineItems(ctx context.Context, items []LineItem) []shopPayLineItem {
	out := make([]shopPayLineItem, 0, len(items))
	for _, item := range items {
		variantID := item.ID
		if variant, err := g.catalog.Variant(ctx, item.ID); err == nil {
			variantID = variant.ID
		}
		out = append(out, shopPayLineItem{
			VariantID: variantID,
			Quantity:  item.Quantity,
			Properties: map[string]string{
				"_custom_name":  item.Name,
				"_custom_image": item.Image,
			},
		})
	}
	return out
}
