package cart

import (
	"context"
	"errors"
	"log"
	"time"
)

// Service applies cart mutations through the configured store. A session
// without a stored cart gets an empty one rather than an error.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	c, err := s.store.Get(ctx, sessionID)
	if err != nil && errors.Is(err, ErrCartNotFound) {
		now := time.Now()
		return &Cart{
			SessionID: sessionID,
			Items:     nil,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) AddItem(ctx context.Context, sessionID string, item Item) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.AddItem(item)
	})
}

func (s *Service) UpdateQuantity(ctx context.Context, sessionID, itemID string, quantity int) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.UpdateQuantity(itemID, quantity)
	})
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, itemID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.RemoveItem(itemID)
	})
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Clear()
	})
}

func (s *Service) TogglePanel(ctx context.Context, sessionID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Toggle()
	})
}

func (s *Service) OpenPanel(ctx context.Context, sessionID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Open()
	})
}

func (s *Service) ClosePanel(ctx context.Context, sessionID string) (*Cart, error) {
	return s.mutate(ctx, sessionID, func(c *Cart) {
		c.Close()
	})
}

func (s *Service) mutate(ctx context.Context, sessionID string, fn func(*Cart)) (*Cart, error) {
	c, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	fn(c)
	c.UpdatedAt = time.Now()

	if errSave := s.store.Save(ctx, c); errSave != nil {
		log.Printf("store save cart error: %v \n", errSave)
		return nil, errSave
	}
	return c, nil
}
