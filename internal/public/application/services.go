package application

import (
	"context"
	"errors"

	"github.com/jirodb/services/api/internal/public/domain"
)

// Sentinel errors recovered at the interface boundary. Nothing below the
// HTTP layer is allowed to surface anything harsher than these.
var (
	// ErrStoreNotFound is returned for catalog lookups with no matching id.
	ErrStoreNotFound = errors.New("store not found")
	// ErrDiaryNotFound is returned when a diary record or photo id has no match.
	ErrDiaryNotFound = errors.New("diary record not found")
	// ErrValidation wraps user-input failures; the write is never attempted.
	ErrValidation = errors.New("validation failed")
)

// Slice names used by the change notifier. A view subscribes to the slices it
// renders and re-reads on notification; the notification itself carries no data.
const (
	SliceFavorites = "favorites"
	SliceVisits    = "visits"
	SliceDiary     = "diary"
	SliceFlags     = "flags"
)

// StoreRepository abstracts read access to the static catalog.
// StoreRepository は読み取り専用カタログへアクセスするためのポート。
type StoreRepository interface {
	List(ctx context.Context) ([]domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
}

// FavoriteRepository owns the favorite-set slice: one deduplicated id list
// stored as a whole value. Toggle is a single read-modify-write round trip.
type FavoriteRepository interface {
	Read(ctx context.Context) ([]string, error)
	Toggle(ctx context.Context, storeID string) (favorited bool, favorites []string, err error)
}

// VisitCountRepository owns one non-negative counter per store id.
// Adjust never lets the stored value go below zero.
type VisitCountRepository interface {
	Read(ctx context.Context, storeID string) (int, error)
	Adjust(ctx context.Context, storeID string, delta int) (int, error)
}

// FlagRepository owns one-time UI flags (shown-once banners and the like).
type FlagRepository interface {
	Read(ctx context.Context, name string) (bool, error)
	Set(ctx context.Context, name string) error
}

// DiaryRepository owns the structured diary collection. Add assigns a
// monotonic, collision-free identifier. Delete of an unknown id is a no-op.
type DiaryRepository interface {
	GetAll(ctx context.Context) ([]domain.DiaryRecord, error)
	Find(ctx context.Context, id uint64) (*domain.DiaryRecord, error)
	Add(ctx context.Context, record *domain.DiaryRecord) (uint64, error)
	Delete(ctx context.Context, id uint64) error
}

// ChangeNotifier lets a view learn that a slice it displays was changed by
// another writer. Firing never mutates state; it only signals "re-read".
// 返されたキャンセル関数を呼ぶと購読が解除されチャネルが閉じられる。
type ChangeNotifier interface {
	Subscribe(slices ...string) (<-chan string, func())
}

// StoreQueryService describes catalog read use-cases.
type StoreQueryService interface {
	List(ctx context.Context) ([]domain.Store, error)
	Detail(ctx context.Context, id string) (*domain.Store, error)
}

// FavoriteService toggles and reads the favorite set.
type FavoriteService interface {
	List(ctx context.Context) ([]string, error)
	Toggle(ctx context.Context, storeID string) (ToggleResult, error)
}

// ToggleResult carries the new membership after a toggle so the calling view
// can update its own state without a refetch.
type ToggleResult struct {
	Favorited bool
	Favorites []string
}

// VisitService reads and adjusts per-store visit counters and derives the
// stamp-rally card from them.
type VisitService interface {
	Count(ctx context.Context, storeID string) (int, error)
	Adjust(ctx context.Context, storeID string, delta int) (int, error)
	StampCard(ctx context.Context) (*domain.StampCard, error)
}

// FlagService reads and sets one-time UI flags.
type FlagService interface {
	Read(ctx context.Context, name string) (bool, error)
	Set(ctx context.Context, name string) error
}

// DiaryService handles diary read/write use-cases.
type DiaryService interface {
	List(ctx context.Context) ([]domain.DiaryRecord, error)
	Submit(ctx context.Context, cmd SubmitDiaryCommand) (*domain.DiaryRecord, error)
	Delete(ctx context.Context, id uint64) error
	Photo(ctx context.Context, recordID uint64, photoID string) (*domain.DiaryPhoto, error)
}

// SubmitDiaryCommand captures one diary draft before validation.
type SubmitDiaryCommand struct {
	Date      string
	StoreName string
	Menu      string
	Call      string
	Memo      string
	Photos    []domain.DiaryPhoto
}
