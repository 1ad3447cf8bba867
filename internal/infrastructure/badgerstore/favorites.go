package badgerstore

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// FavoriteRepository implements application.FavoriteRepository on BadgerDB.
// The whole set lives under one key as a JSON id array; every mutation is a
// whole-value read-modify-write inside a single transaction.
type FavoriteRepository struct {
	db *badger.DB
}

// NewFavoriteRepository creates a new badger-backed favorite repository.
func NewFavoriteRepository(db *badger.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Read returns the current favorite set. A missing or corrupted stored value
// reads as the empty set; corruption is never surfaced as an error.
func (r *FavoriteRepository) Read(_ context.Context) ([]string, error) {
	var favorites []string
	err := r.db.View(func(txn *badger.Txn) error {
		favorites = readFavorites(txn)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	return favorites, nil
}

// Toggle flips membership of storeID and writes the whole set back.
// 二重トグルで元の集合に戻ること、重複 id を含まないことが不変条件。
func (r *FavoriteRepository) Toggle(_ context.Context, storeID string) (bool, []string, error) {
	var (
		favorited bool
		favorites []string
	)
	err := r.db.Update(func(txn *badger.Txn) error {
		current := readFavorites(txn)

		next := make([]string, 0, len(current)+1)
		for _, id := range current {
			if id != storeID {
				next = append(next, id)
			}
		}
		if len(next) == len(current) {
			next = append(next, storeID)
			favorited = true
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal favorites: %w", err)
		}
		if err := txn.Set([]byte(favoritesKey), data); err != nil {
			return fmt.Errorf("set favorites: %w", err)
		}
		favorites = next
		return nil
	})
	if err != nil {
		return false, nil, err
	}
	return favorited, favorites, nil
}

// readFavorites decodes the stored set inside a transaction, deduplicating
// defensively in case an older writer stored duplicates.
func readFavorites(txn *badger.Txn) []string {
	item, err := txn.Get([]byte(favoritesKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return []string{}
	}
	if err != nil {
		return []string{}
	}

	var stored []string
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &stored)
	}); err != nil {
		// 壊れた JSON は未保存扱い。ユーザー端末ローカルの状態に復旧手段はない。
		return []string{}
	}

	seen := make(map[string]struct{}, len(stored))
	favorites := make([]string, 0, len(stored))
	for _, id := range stored {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		favorites = append(favorites, id)
	}
	return favorites
}
