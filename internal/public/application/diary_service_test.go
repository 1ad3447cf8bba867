package application

import (
	"context"
	"errors"
	"testing"

	"github.com/jirodb/services/api/internal/public/domain"
)

// stubDiaryRepository records calls without touching any storage.
type stubDiaryRepository struct {
	records []domain.DiaryRecord
	nextID  uint64
	added   int
}

func (s *stubDiaryRepository) GetAll(context.Context) ([]domain.DiaryRecord, error) {
	return s.records, nil
}

func (s *stubDiaryRepository) Find(_ context.Context, id uint64) (*domain.DiaryRecord, error) {
	for i := range s.records {
		if s.records[i].ID == id {
			return &s.records[i], nil
		}
	}
	return nil, ErrDiaryNotFound
}

func (s *stubDiaryRepository) Add(_ context.Context, record *domain.DiaryRecord) (uint64, error) {
	s.nextID++
	s.added++
	stored := *record
	stored.ID = s.nextID
	s.records = append(s.records, stored)
	return s.nextID, nil
}

func (s *stubDiaryRepository) Delete(_ context.Context, id uint64) error {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return nil
}

func TestDiaryServiceSubmitValidation(t *testing.T) {
	ctx := context.Background()

	photo := domain.DiaryPhoto{ContentType: "image/jpeg", Data: []byte{0x01}}
	cases := []struct {
		name string
		cmd  SubmitDiaryCommand
	}{
		{"missing_date", SubmitDiaryCommand{StoreName: "三田本店"}},
		{"blank_date", SubmitDiaryCommand{Date: "   ", StoreName: "三田本店"}},
		{"malformed_date", SubmitDiaryCommand{Date: "2025/06/02", StoreName: "三田本店"}},
		{"missing_store_name", SubmitDiaryCommand{Date: "2025-06-02"}},
		{"too_many_photos", SubmitDiaryCommand{
			Date: "2025-06-02", StoreName: "三田本店",
			Photos: []domain.DiaryPhoto{photo, photo, photo, photo},
		}},
		{"empty_photo_data", SubmitDiaryCommand{
			Date: "2025-06-02", StoreName: "三田本店",
			Photos: []domain.DiaryPhoto{{ContentType: "image/jpeg"}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubDiaryRepository{}
			svc := NewDiaryService(repo)

			_, err := svc.Submit(ctx, tc.cmd)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Submit: %v, want ErrValidation", err)
			}
			if repo.added != 0 {
				t.Fatal("rejected draft reached the repository")
			}
		})
	}
}

func TestDiaryServiceSubmit(t *testing.T) {
	ctx := context.Background()
	repo := &stubDiaryRepository{}
	svc := NewDiaryService(repo)

	record, err := svc.Submit(ctx, SubmitDiaryCommand{
		Date:      " 2025-06-02 ",
		StoreName: " ラーメン二郎 三田本店 ",
		Menu:      "小豚",
		Call:      "ヤサイマシマシ",
		Photos: []domain.DiaryPhoto{
			{Data: []byte{0x01}},
			{ContentType: "image/png", Data: []byte{0x02}},
		},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if record.ID != 1 {
		t.Errorf("id = %d, want 1", record.ID)
	}
	if record.Date != "2025-06-02" || record.StoreName != "ラーメン二郎 三田本店" {
		t.Errorf("fields not trimmed: %q, %q", record.Date, record.StoreName)
	}
	if record.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}

	if len(record.Photos) != 2 {
		t.Fatalf("photos = %d, want 2", len(record.Photos))
	}
	if record.Photos[0].ID == "" || record.Photos[0].ID == record.Photos[1].ID {
		t.Error("photo ids missing or not unique")
	}
	if record.Photos[0].ContentType != "application/octet-stream" {
		t.Errorf("default content type = %q", record.Photos[0].ContentType)
	}
	if record.Photos[1].ContentType != "image/png" {
		t.Errorf("content type = %q, want image/png", record.Photos[1].ContentType)
	}
}

func TestDiaryServicePhoto(t *testing.T) {
	ctx := context.Background()
	repo := &stubDiaryRepository{}
	svc := NewDiaryService(repo)

	record, err := svc.Submit(ctx, SubmitDiaryCommand{
		Date:      "2025-06-02",
		StoreName: "三田本店",
		Photos:    []domain.DiaryPhoto{{ContentType: "image/jpeg", Data: []byte{0xaa, 0xbb}}},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	photo, err := svc.Photo(ctx, record.ID, record.Photos[0].ID)
	if err != nil {
		t.Fatalf("Photo: %v", err)
	}
	if photo.ContentType != "image/jpeg" || len(photo.Data) != 2 {
		t.Errorf("photo = %+v", photo)
	}

	if _, err := svc.Photo(ctx, record.ID, "no-such-photo"); !errors.Is(err, ErrDiaryNotFound) {
		t.Fatalf("Photo(unknown photo): %v, want ErrDiaryNotFound", err)
	}
	if _, err := svc.Photo(ctx, 999, record.Photos[0].ID); !errors.Is(err, ErrDiaryNotFound) {
		t.Fatalf("Photo(unknown record): %v, want ErrDiaryNotFound", err)
	}
}
