// Package memory provides session-only implementations of the persistence
// ports. They back the degraded mode entered when the durable store cannot be
// opened: the API stays fully usable, state just does not survive the process.
package memory

import (
	"context"
	"sync"

	"github.com/jirodb/services/api/internal/public/application"
	"github.com/jirodb/services/api/internal/public/domain"
)

// FavoriteRepository keeps the favorite set in process memory.
type FavoriteRepository struct {
	notifier *Notifier

	mu  sync.Mutex
	ids []string
}

// NewFavoriteRepository creates an empty in-memory favorite set.
func NewFavoriteRepository(notifier *Notifier) *FavoriteRepository {
	return &FavoriteRepository{notifier: notifier}
}

// Read returns the current set.
func (r *FavoriteRepository) Read(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.ids...), nil
}

// Toggle flips membership for the store id.
func (r *FavoriteRepository) Toggle(_ context.Context, storeID string) (bool, []string, error) {
	r.mu.Lock()
	next := make([]string, 0, len(r.ids)+1)
	for _, id := range r.ids {
		if id != storeID {
			next = append(next, id)
		}
	}
	favorited := len(next) == len(r.ids)
	if favorited {
		next = append(next, storeID)
	}
	r.ids = next
	favorites := append([]string{}, next...)
	r.mu.Unlock()

	r.notifier.Publish(application.SliceFavorites)
	return favorited, favorites, nil
}

// VisitCountRepository keeps per-store counters in process memory.
type VisitCountRepository struct {
	notifier *Notifier

	mu     sync.Mutex
	counts map[string]int
}

// NewVisitCountRepository creates an empty in-memory counter map.
func NewVisitCountRepository(notifier *Notifier) *VisitCountRepository {
	return &VisitCountRepository{notifier: notifier, counts: make(map[string]int)}
}

// Read returns the counter for storeID, defaulting to 0.
func (r *VisitCountRepository) Read(_ context.Context, storeID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[storeID], nil
}

// Adjust adds delta with a floor of zero.
func (r *VisitCountRepository) Adjust(_ context.Context, storeID string, delta int) (int, error) {
	r.mu.Lock()
	count := r.counts[storeID] + delta
	if count < 0 {
		count = 0
	}
	r.counts[storeID] = count
	r.mu.Unlock()

	r.notifier.Publish(application.SliceVisits)
	return count, nil
}

// FlagRepository keeps one-time UI flags in process memory.
type FlagRepository struct {
	notifier *Notifier

	mu    sync.Mutex
	flags map[string]struct{}
}

// NewFlagRepository creates an empty in-memory flag set.
func NewFlagRepository(notifier *Notifier) *FlagRepository {
	return &FlagRepository{notifier: notifier, flags: make(map[string]struct{})}
}

// Read reports whether the named flag has been set this session.
func (r *FlagRepository) Read(_ context.Context, name string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, set := r.flags[name]
	return set, nil
}

// Set marks the named flag for the rest of the session.
func (r *FlagRepository) Set(_ context.Context, name string) error {
	r.mu.Lock()
	r.flags[name] = struct{}{}
	r.mu.Unlock()

	r.notifier.Publish(application.SliceFlags)
	return nil
}

// DiaryRepository keeps diary records in process memory with the same
// monotonic-id contract as the durable store.
type DiaryRepository struct {
	notifier *Notifier

	mu      sync.Mutex
	nextID  uint64
	order   []uint64
	records map[uint64]domain.DiaryRecord
}

// NewDiaryRepository creates an empty in-memory diary collection.
func NewDiaryRepository(notifier *Notifier) *DiaryRepository {
	return &DiaryRepository{notifier: notifier, records: make(map[uint64]domain.DiaryRecord)}
}

// GetAll returns every record in insertion order.
func (r *DiaryRepository) GetAll(_ context.Context) ([]domain.DiaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	records := make([]domain.DiaryRecord, 0, len(r.order))
	for _, id := range r.order {
		if record, ok := r.records[id]; ok {
			records = append(records, record)
		}
	}
	return records, nil
}

// Find returns one record by id.
func (r *DiaryRepository) Find(_ context.Context, id uint64) (*domain.DiaryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, application.ErrDiaryNotFound
	}
	return &record, nil
}

// Add assigns the next id and stores the record.
func (r *DiaryRepository) Add(_ context.Context, record *domain.DiaryRecord) (uint64, error) {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	stored := *record
	stored.ID = id
	r.records[id] = stored
	r.order = append(r.order, id)
	r.mu.Unlock()

	r.notifier.Publish(application.SliceDiary)
	return id, nil
}

// Delete removes one record; unknown ids are a no-op.
func (r *DiaryRepository) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	_, existed := r.records[id]
	delete(r.records, id)
	r.mu.Unlock()

	if existed {
		r.notifier.Publish(application.SliceDiary)
	}
	return nil
}
