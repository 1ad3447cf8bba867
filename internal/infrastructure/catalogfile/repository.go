package catalogfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/jirodb/services/api/internal/public/application"
	"github.com/jirodb/services/api/internal/public/domain"
)

// StoreRepository implements application.StoreRepository over a static JSON
// catalog loaded once at startup. The catalog is immutable for the process
// lifetime; List always returns the original file order.
type StoreRepository struct {
	stores []domain.Store
	byID   map[string]int
}

// Load reads and decodes the catalog file. A missing or malformed catalog is
// a startup error, not a runtime condition.
func Load(path string) (*StoreRepository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("カタログファイルの読み込みに失敗: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a raw catalog document. Split out from Load for tests and for
// embedded catalogs.
func Parse(raw []byte) (*StoreRepository, error) {
	var docs []StoreDocument
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("カタログ JSON の解析に失敗: %w", err)
	}

	repo := &StoreRepository{
		stores: make([]domain.Store, 0, len(docs)),
		byID:   make(map[string]int, len(docs)),
	}
	for _, doc := range docs {
		id := strings.TrimSpace(doc.ID)
		if id == "" {
			return nil, fmt.Errorf("店舗 %q に id がありません", doc.Name)
		}
		if _, exists := repo.byID[id]; exists {
			return nil, fmt.Errorf("店舗 id %q が重複しています", id)
		}
		repo.byID[id] = len(repo.stores)
		repo.stores = append(repo.stores, mapStoreDocument(doc))
	}
	return repo, nil
}

// Len returns the catalog size.
func (r *StoreRepository) Len() int {
	return len(r.stores)
}

// List returns all stores in catalog order.
func (r *StoreRepository) List(_ context.Context) ([]domain.Store, error) {
	out := make([]domain.Store, len(r.stores))
	copy(out, r.stores)
	return out, nil
}

// FindByID returns a single store by its identifier.
func (r *StoreRepository) FindByID(_ context.Context, id string) (*domain.Store, error) {
	idx, ok := r.byID[strings.TrimSpace(id)]
	if !ok {
		return nil, application.ErrStoreNotFound
	}
	store := r.stores[idx]
	return &store, nil
}
