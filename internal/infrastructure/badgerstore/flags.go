package badgerstore

import (
	"context"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

// FlagRepository implements application.FlagRepository. A flag is set-once:
// presence of the key is the whole state.
type FlagRepository struct {
	db *badger.DB
}

// NewFlagRepository creates a new badger-backed flag repository.
func NewFlagRepository(db *badger.DB) *FlagRepository {
	return &FlagRepository{db: db}
}

// Read reports whether the named flag has been set.
func (r *FlagRepository) Read(_ context.Context, name string) (bool, error) {
	var set bool
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(flagKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		set = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("read flag: %w", err)
	}
	return set, nil
}

// Set marks the named flag. Setting an already-set flag is a no-op.
func (r *FlagRepository) Set(_ context.Context, name string) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(flagKey(name), []byte("1"))
	})
	if err != nil {
		return fmt.Errorf("set flag: %w", err)
	}
	return nil
}
