package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// VisitCountRepository implements application.VisitCountRepository. Each
// store's counter is a decimal string under its own key.
type VisitCountRepository struct {
	db *badger.DB
}

// NewVisitCountRepository creates a new badger-backed visit counter repository.
func NewVisitCountRepository(db *badger.DB) *VisitCountRepository {
	return &VisitCountRepository{db: db}
}

// Read returns the counter for storeID; absent or unparseable values read as 0.
func (r *VisitCountRepository) Read(_ context.Context, storeID string) (int, error) {
	var count int
	err := r.db.View(func(txn *badger.Txn) error {
		count = readCount(txn, storeID)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("read visit count: %w", err)
	}
	return count, nil
}

// Adjust adds delta to the counter and writes it back, refusing to go below
// zero. The floor lives here and not only in the UI, so a racing second
// writer cannot push the stored value negative.
func (r *VisitCountRepository) Adjust(_ context.Context, storeID string, delta int) (int, error) {
	var count int
	err := r.db.Update(func(txn *badger.Txn) error {
		count = readCount(txn, storeID) + delta
		if count < 0 {
			count = 0
		}
		if err := txn.Set(visitCountKey(storeID), []byte(strconv.Itoa(count))); err != nil {
			return fmt.Errorf("set visit count: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func readCount(txn *badger.Txn, storeID string) int {
	item, err := txn.Get(visitCountKey(storeID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0
	}
	if err != nil {
		return 0
	}

	count := 0
	_ = item.Value(func(val []byte) error {
		parsed, err := strconv.Atoi(strings.TrimSpace(string(val)))
		if err == nil && parsed > 0 {
			count = parsed
		}
		return nil
	})
	return count
}
