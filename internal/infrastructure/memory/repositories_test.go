package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/jirodb/services/api/internal/public/application"
	"github.com/jirodb/services/api/internal/public/domain"
)

func TestFavoriteRepositoryToggle(t *testing.T) {
	ctx := context.Background()
	repo := NewFavoriteRepository(NewNotifier())

	favorited, favorites, err := repo.Toggle(ctx, "mita")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !favorited || len(favorites) != 1 {
		t.Fatalf("favorited = %v, favorites = %v", favorited, favorites)
	}

	favorited, favorites, err = repo.Toggle(ctx, "mita")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if favorited || len(favorites) != 0 {
		t.Fatalf("double toggle did not restore empty set: %v, %v", favorited, favorites)
	}
}

func TestVisitCountRepositoryFloor(t *testing.T) {
	ctx := context.Background()
	repo := NewVisitCountRepository(NewNotifier())

	if _, err := repo.Adjust(ctx, "mita", 2); err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	count, err := repo.Adjust(ctx, "mita", -5)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}

func TestDiaryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDiaryRepository(NewNotifier())

	first, err := repo.Add(ctx, &domain.DiaryRecord{Date: "2025-06-02", StoreName: "三田本店"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	second, err := repo.Add(ctx, &domain.DiaryRecord{Date: "2025-06-03", StoreName: "歌舞伎町店"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if second <= first {
		t.Fatalf("ids not monotonic: %d then %d", first, second)
	}

	if err := repo.Delete(ctx, first); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, first); err != nil {
		t.Fatalf("Delete again: %v", err)
	}
	if _, err := repo.Find(ctx, first); !errors.Is(err, application.ErrDiaryNotFound) {
		t.Fatalf("Find after delete: %v, want ErrDiaryNotFound", err)
	}

	records, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(records) != 1 || records[0].ID != second {
		t.Fatalf("records = %+v, want only id %d", records, second)
	}
}

func TestNotifierPublish(t *testing.T) {
	notifier := NewNotifier()
	ch, cancel := notifier.Subscribe(application.SliceFavorites)
	defer cancel()

	notifier.Publish(application.SliceFavorites)
	notifier.Publish(application.SliceVisits)

	select {
	case slice := <-ch:
		if slice != application.SliceFavorites {
			t.Fatalf("slice = %q, want favorites", slice)
		}
	default:
		t.Fatal("no signal delivered")
	}

	select {
	case slice := <-ch:
		t.Fatalf("unexpected extra signal %q", slice)
	default:
	}
}
