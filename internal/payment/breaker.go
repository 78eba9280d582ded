package payment

import (
	"context"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Breaker wraps a Gateway in a circuit breaker so a misbehaving provider
// trips fast instead of queueing checkout attempts behind simulated
// round trips.
type Breaker struct {
	gateway Gateway
	cb      *gobreaker.CircuitBreaker[*Session]
}

func NewBreaker(gateway Gateway) *Breaker {
	settings := gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
	}

	return &Breaker{
		gateway: gateway,
		cb:      gobreaker.NewCircuitBreaker[*Session](settings),
	}
}

func (b *Breaker) CreateCheckout(ctx context.Context, items []LineItem, total float64) (*Session, error) {
	return b.cb.Execute(func() (*Session, error) {
		return b.gateway.CreateCheckout(ctx, items, total)
	})
}
