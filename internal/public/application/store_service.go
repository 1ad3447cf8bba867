package application

import (
	"context"

	"github.com/jirodb/services/api/internal/public/domain"
)

// storeQueryService is the concrete implementation of StoreQueryService.
type storeQueryService struct {
	repo StoreRepository
}

// NewStoreQueryService creates a new store query service.
func NewStoreQueryService(repo StoreRepository) StoreQueryService {
	return &storeQueryService{repo: repo}
}

func (s *storeQueryService) List(ctx context.Context) ([]domain.Store, error) {
	return s.repo.List(ctx)
}

func (s *storeQueryService) Detail(ctx context.Context, id string) (*domain.Store, error) {
	return s.repo.FindByID(ctx, id)
}
