package payment

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"
)

// LineItem is the provider-neutral shape handed to an adapter. Adapters
// translate it into their provider's line-item format, joining against the
// catalog by id.
type LineItem struct {
	ID        string
	Name      string
	Image     string
	UnitPrice float64
	Quantity  int
}

// Session is the fabricated checkout session a gateway returns. The URL is
// never navigated to; both adapters are non-functional stubs.
type Session struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
	AmountTotal int64  `json:"amount_total"` // smallest currency unit
	Currency    string `json:"currency"`
}

// Gateway is the capability interface both mock providers implement.
// Adapters are interchangeable and selected by configuration.
type Gateway interface {
	CreateCheckout(ctx context.Context, items []LineItem, total float64) (*Session, error)
}

var ErrCheckoutFailed = errors.New("failed to create checkout")

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomToken builds a short lowercase base36 token like the provider's
// session identifiers.
func randomToken(length int) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(tokenAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = '0'
			continue
		}
		b[i] = tokenAlphabet[n.Int64()]
	}
	return string(b)
}

// sleepFunc lets tests replace the simulated network latency.
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
