package catalog

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Service fronts the repository for the handlers and the payment adapters.
type Service struct {
	repo RepoInterface
	sfg  singleflight.Group // Prevents duplicate concurrent lookups for same id
}

func NewService(repo RepoInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.GetAllProducts(ctx)
}

func (s *Service) Variant(ctx context.Context, id string) (*Product, error) {
	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {
		return s.repo.GetProduct(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Product), nil
}
