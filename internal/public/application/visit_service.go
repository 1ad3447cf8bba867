package application

import (
	"context"

	"github.com/jirodb/services/api/internal/public/domain"
)

// visitService implements VisitService.
type visitService struct {
	counts VisitCountRepository
	stores StoreRepository
}

// NewVisitService creates a new VisitService.
func NewVisitService(counts VisitCountRepository, stores StoreRepository) VisitService {
	return &visitService{counts: counts, stores: stores}
}

func (s *visitService) Count(ctx context.Context, storeID string) (int, error) {
	return s.counts.Read(ctx, storeID)
}

func (s *visitService) Adjust(ctx context.Context, storeID string, delta int) (int, error) {
	return s.counts.Adjust(ctx, storeID, delta)
}

// StampCard composes the card from the catalog order and the current
// counters. Cells keep the catalog's ordering so the card renders stably.
func (s *visitService) StampCard(ctx context.Context) (*domain.StampCard, error) {
	stores, err := s.stores.List(ctx)
	if err != nil {
		return nil, err
	}

	card := &domain.StampCard{
		Total: len(stores),
		Cells: make([]domain.StampCell, 0, len(stores)),
	}
	for _, store := range stores {
		count, err := s.counts.Read(ctx, store.ID)
		if err != nil {
			return nil, err
		}
		cell := domain.StampCell{
			StoreID:    store.ID,
			StoreName:  store.Name,
			Area:       store.Area,
			VisitCount: count,
			Visited:    count > 0,
		}
		if cell.Visited {
			card.Achieved++
		}
		card.Cells = append(card.Cells, cell)
	}
	return card, nil
}
