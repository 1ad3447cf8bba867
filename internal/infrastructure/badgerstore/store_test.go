package badgerstore

import (
	"testing"

	badger "github.com/dgraph-io/badger/v4"
)

// openTestDB returns a throwaway in-memory database closed at test end.
func openTestDB(t *testing.T) *badger.DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open in-memory badger: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close badger: %v", err)
		}
	})
	return db
}
