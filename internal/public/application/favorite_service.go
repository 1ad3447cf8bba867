package application

import "context"

// favoriteService implements FavoriteService on top of the favorite slice.
type favoriteService struct {
	repo FavoriteRepository
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(repo FavoriteRepository) FavoriteService {
	return &favoriteService{repo: repo}
}

func (s *favoriteService) List(ctx context.Context) ([]string, error) {
	return s.repo.Read(ctx)
}

// Toggle flips membership for the store id in one read-modify-write round
// trip. Concurrent writers race last-write-wins; that is the accepted
// contract for the scalar slice, not an oversight.
func (s *favoriteService) Toggle(ctx context.Context, storeID string) (ToggleResult, error) {
	favorited, favorites, err := s.repo.Toggle(ctx, storeID)
	if err != nil {
		return ToggleResult{}, err
	}
	return ToggleResult{Favorited: favorited, Favorites: favorites}, nil
}
