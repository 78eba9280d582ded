package payment

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/evenlines/storefront/internal/catalog"
	"github.com/evenlines/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	products map[string]*catalog.Product
}

func (f *fakeCatalog) Variant(_ context.Context, id string) (*catalog.Product, error) {
	p, exists := f.products[id]
	if !exists {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func testCatalog() *fakeCatalog {
	return &fakeCatalog{products: map[string]*catalog.Product{
		"vinyl-album": {ID: "vinyl-album", Title: "Vinyl Album", Price: 35.00, Currency: "CAD"},
		"tshirt":      {ID: "tshirt", Title: "Tour Shirt", Price: 25.00, Currency: "CAD"},
	}}
}

func instantSleep(context.Context, time.Duration) error { return nil }

func testPaymentConfig() config.PaymentConfig {
	return config.PaymentConfig{
		Currency:   "cad",
		Country:    "CA",
		ShopDomain: "even-lines.myshopify.com",
	}
}

func TestStripeGateway_CreateCheckout(t *testing.T) {
	g := NewStripeGateway(testPaymentConfig(), testCatalog(), time.Millisecond)
	g.sleep = instantSleep

	items := []LineItem{
		{ID: "vinyl-album", Name: "Vinyl Album", UnitPrice: 35.00, Quantity: 1},
		{ID: "tshirt", Name: "Tour Shirt", UnitPrice: 25.00, Quantity: 2},
	}

	session, err := g.CreateCheckout(context.Background(), items, 112.70)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(session.SessionID, "cs_mock_"))
	assert.True(t, strings.HasPrefix(session.CheckoutURL, "https://checkout.stripe.com/pay/"))
	assert.Equal(t, int64(11270), session.AmountTotal)
	assert.Equal(t, "cad", session.Currency)
}

func TestStripeGateway_SessionIDsAreUnique(t *testing.T) {
	g := NewStripeGateway(testPaymentConfig(), testCatalog(), time.Millisecond)
	g.sleep = instantSleep

	items := []LineItem{{ID: "poster", Name: "Poster", UnitPrice: 15.00, Quantity: 1}}

	a, err := g.CreateCheckout(context.Background(), items, 15.00)
	require.NoError(t, err)
	b, err := g.CreateCheckout(context.Background(), items, 15.00)
	require.NoError(t, err)

	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestStripeGateway_UnknownVariantStillChecksOut(t *testing.T) {
	g := NewStripeGateway(testPaymentConfig(), testCatalog(), time.Millisecond)
	g.sleep = instantSleep

	items := []LineItem{{ID: "not-in-catalog", Name: "Mystery Item", UnitPrice: 10.00, Quantity: 1}}

	session, err := g.CreateCheckout(context.Background(), items, 10.00)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), session.AmountTotal)
}

func TestStripeGateway_CancelledContext(t *testing.T) {
	g := NewStripeGateway(testPaymentConfig(), testCatalog(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.CreateCheckout(ctx, []LineItem{{ID: "tshirt", Quantity: 1}}, 25.00)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestToCents(t *testing.T) {
	assert.Equal(t, int64(11270), toCents(112.70))
	assert.Equal(t, int64(1), toCents(0.01))
	assert.Equal(t, int64(0), toCents(0))
	assert.Equal(t, int64(3500), toCents(35.00))
	// Rounding, not truncation
	assert.Equal(t, int64(2000), toCents(19.999))
}

func TestRandomToken(t *testing.T) {
	token := randomToken(9)
	require.Len(t, token, 9)
	for _, r := range token {
		assert.True(t, (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'), "unexpected rune %q", r)
	}
	assert.NotEqual(t, token, randomToken(9))
}
