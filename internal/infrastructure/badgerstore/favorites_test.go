package badgerstore

import (
	"context"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
)

func TestFavoriteRepositoryToggle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)

	t.Run("empty_store_reads_empty_set", func(t *testing.T) {
		favorites, err := repo.Read(ctx)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		if len(favorites) != 0 {
			t.Fatalf("favorites = %v, want empty", favorites)
		}
	})

	t.Run("first_toggle_adds", func(t *testing.T) {
		favorited, favorites, err := repo.Toggle(ctx, "mita")
		if err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if !favorited {
			t.Error("favorited = false, want true")
		}
		if len(favorites) != 1 || favorites[0] != "mita" {
			t.Errorf("favorites = %v, want [mita]", favorites)
		}
	})

	t.Run("second_toggle_removes", func(t *testing.T) {
		favorited, favorites, err := repo.Toggle(ctx, "mita")
		if err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if favorited {
			t.Error("favorited = true, want false")
		}
		if len(favorites) != 0 {
			t.Errorf("favorites = %v, want empty", favorites)
		}
	})

	t.Run("double_toggle_restores_other_members", func(t *testing.T) {
		for _, id := range []string{"mita", "kabukicho", "sapporo"} {
			if _, _, err := repo.Toggle(ctx, id); err != nil {
				t.Fatalf("Toggle(%s): %v", id, err)
			}
		}
		if _, _, err := repo.Toggle(ctx, "kabukicho"); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
		if _, _, err := repo.Toggle(ctx, "kabukicho"); err != nil {
			t.Fatalf("Toggle: %v", err)
		}

		favorites, err := repo.Read(ctx)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		want := []string{"mita", "sapporo", "kabukicho"}
		if len(favorites) != len(want) {
			t.Fatalf("favorites = %v, want %v", favorites, want)
		}
		for i, id := range want {
			if favorites[i] != id {
				t.Errorf("favorites[%d] = %s, want %s", i, favorites[i], id)
			}
		}
	})

	t.Run("never_contains_duplicates", func(t *testing.T) {
		favorites, err := repo.Read(ctx)
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		seen := make(map[string]struct{})
		for _, id := range favorites {
			if _, dup := seen[id]; dup {
				t.Errorf("duplicate id %s in %v", id, favorites)
			}
			seen[id] = struct{}{}
		}
	})
}

func TestFavoriteRepositoryCorruptedValue(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewFavoriteRepository(db)

	err := db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(favoritesKey), []byte("{not json"))
	})
	if err != nil {
		t.Fatalf("seed corrupted value: %v", err)
	}

	favorites, err := repo.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(favorites) != 0 {
		t.Fatalf("favorites = %v, want empty after corruption", favorites)
	}

	// A toggle on top of garbage starts from the empty set.
	favorited, favorites, err := repo.Toggle(ctx, "mita")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !favorited || len(favorites) != 1 {
		t.Fatalf("favorited = %v, favorites = %v, want fresh single-member set", favorited, favorites)
	}
}
