package application

import "context"

// flagService implements FlagService on top of the flag slice.
type flagService struct {
	repo FlagRepository
}

// NewFlagService creates a new FlagService.
func NewFlagService(repo FlagRepository) FlagService {
	return &flagService{repo: repo}
}

func (s *flagService) Read(ctx context.Context, name string) (bool, error) {
	return s.repo.Read(ctx, name)
}

// Set marks the named flag; setting an already-set flag stays a no-op.
func (s *flagService) Set(ctx context.Context, name string) error {
	return s.repo.Set(ctx, name)
}
