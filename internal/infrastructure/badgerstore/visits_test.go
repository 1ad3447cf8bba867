package badgerstore

import (
	"context"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
)

func TestVisitCountRepositoryAdjust(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewVisitCountRepository(db)

	t.Run("absent_counter_reads_zero", func(t *testing.T) {
		count, err := repo.Read(ctx, "mita")
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if count != 0 {
			t.Fatalf("count = %d, want 0", count)
		}
	})

	t.Run("increment_accumulates", func(t *testing.T) {
		for want := 1; want <= 3; want++ {
			count, err := repo.Adjust(ctx, "mita", 1)
			if err != nil {
				t.Fatalf("Adjust: %v", err)
			}
			if count != want {
				t.Fatalf("count = %d, want %d", count, want)
			}
		}
	})

	t.Run("decrement_stops_at_zero", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			count, err := repo.Adjust(ctx, "mita", -1)
			if err != nil {
				t.Fatalf("Adjust: %v", err)
			}
			if count < 0 {
				t.Fatalf("count = %d, went negative", count)
			}
		}
		count, err := repo.Read(ctx, "mita")
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if count != 0 {
			t.Fatalf("count = %d, want 0 after over-decrement", count)
		}
	})

	t.Run("counters_are_per_store", func(t *testing.T) {
		if _, err := repo.Adjust(ctx, "kabukicho", 2); err != nil {
			t.Fatalf("Adjust: %v", err)
		}
		mita, err := repo.Read(ctx, "mita")
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if mita != 0 {
			t.Fatalf("mita count = %d, want 0", mita)
		}
	})
}

func TestVisitCountRepositoryUnparseableValue(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewVisitCountRepository(db)

	err := db.Update(func(txn *badger.Txn) error {
		return txn.Set(visitCountKey("mita"), []byte("not a number"))
	})
	if err != nil {
		t.Fatalf("seed unparseable value: %v", err)
	}

	count, err := repo.Read(ctx, "mita")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0 for unparseable value", count)
	}

	count, err = repo.Adjust(ctx, "mita", 1)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1 after adjust on garbage", count)
	}
}
