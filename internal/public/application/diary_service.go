package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jirodb/services/api/internal/public/domain"
)

// MaxDiaryPhotos is the attachment limit for one diary record.
const MaxDiaryPhotos = 3

// diaryService implements DiaryService.
type diaryService struct {
	repo DiaryRepository
}

// NewDiaryService creates a new DiaryService.
func NewDiaryService(repo DiaryRepository) DiaryService {
	return &diaryService{repo: repo}
}

func (s *diaryService) List(ctx context.Context) ([]domain.DiaryRecord, error) {
	return s.repo.GetAll(ctx)
}

// Submit validates the draft and persists it as one unit. Validation failures
// are reported before any write; a rejected draft leaves the collection
// untouched.
func (s *diaryService) Submit(ctx context.Context, cmd SubmitDiaryCommand) (*domain.DiaryRecord, error) {
	record, err := buildDiaryRecord(cmd)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Add(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = id
	return record, nil
}

func (s *diaryService) Delete(ctx context.Context, id uint64) error {
	return s.repo.Delete(ctx, id)
}

func (s *diaryService) Photo(ctx context.Context, recordID uint64, photoID string) (*domain.DiaryPhoto, error) {
	record, err := s.repo.Find(ctx, recordID)
	if err != nil {
		return nil, err
	}
	for i := range record.Photos {
		if record.Photos[i].ID == photoID {
			return &record.Photos[i], nil
		}
	}
	return nil, ErrDiaryNotFound
}

// buildDiaryRecord normalizes and validates a draft into a persistable record.
// buildDiaryRecord は下書きを検証し、写真へ識別子を採番して保存可能な形に整える。
func buildDiaryRecord(cmd SubmitDiaryCommand) (*domain.DiaryRecord, error) {
	date := strings.TrimSpace(cmd.Date)
	if date == "" {
		return nil, fmt.Errorf("%w: 日付は必須です", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: 日付は YYYY-MM-DD 形式で入力してください", ErrValidation)
	}

	storeName := strings.TrimSpace(cmd.StoreName)
	if storeName == "" {
		return nil, fmt.Errorf("%w: 店舗名は必須です", ErrValidation)
	}

	if len(cmd.Photos) > MaxDiaryPhotos {
		return nil, fmt.Errorf("%w: 写真は最大%d枚までです", ErrValidation, MaxDiaryPhotos)
	}

	photos := make([]domain.DiaryPhoto, 0, len(cmd.Photos))
	for _, photo := range cmd.Photos {
		if len(photo.Data) == 0 {
			return nil, fmt.Errorf("%w: 写真データが空です", ErrValidation)
		}
		contentType := strings.TrimSpace(photo.ContentType)
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		photos = append(photos, domain.DiaryPhoto{
			ID:          uuid.NewString(),
			ContentType: contentType,
			Data:        photo.Data,
		})
	}

	return &domain.DiaryRecord{
		Date:      date,
		StoreName: storeName,
		Menu:      strings.TrimSpace(cmd.Menu),
		Call:      strings.TrimSpace(cmd.Call),
		Memo:      strings.TrimSpace(cmd.Memo),
		Photos:    photos,
		CreatedAt: time.Now().UTC(),
	}, nil
}
