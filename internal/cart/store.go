package cart

import (
	"context"
	"errors"
)

// Store persists carts per session. The memory store is the default;
// the redis store exists for running more than one instance.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

var ErrCartNotFound = errors.New("cart not found")
