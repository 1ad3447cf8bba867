package badgerstore

import (
	"time"

	"github.com/jirodb/services/api/internal/public/domain"
)

// DiaryRecordDocument は BadgerDB 上での訪問日記スキーマを表す。フィールド名は
// 元の端末ストレージが使っていたレコード形に合わせている。
type DiaryRecordDocument struct {
	ID        uint64               `json:"id"`
	Date      string               `json:"date"`
	Store     string               `json:"store"`
	Menu      string               `json:"menu,omitempty"`
	Call      string               `json:"call,omitempty"`
	Memo      string               `json:"memo,omitempty"`
	Photos    []DiaryPhotoDocument `json:"photos,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}

// DiaryPhotoDocument は写真 1 枚分のバイナリを埋め込んだドキュメント。
// Data は JSON 化の際に base64 で表現される不透明な blob。
type DiaryPhotoDocument struct {
	ID          string `json:"id"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

func toDiaryDocument(record domain.DiaryRecord) DiaryRecordDocument {
	photos := make([]DiaryPhotoDocument, 0, len(record.Photos))
	for _, photo := range record.Photos {
		photos = append(photos, DiaryPhotoDocument{
			ID:          photo.ID,
			ContentType: photo.ContentType,
			Data:        photo.Data,
		})
	}
	return DiaryRecordDocument{
		ID:        record.ID,
		Date:      record.Date,
		Store:     record.StoreName,
		Menu:      record.Menu,
		Call:      record.Call,
		Memo:      record.Memo,
		Photos:    photos,
		CreatedAt: record.CreatedAt,
	}
}

func mapDiaryDocument(doc DiaryRecordDocument) domain.DiaryRecord {
	photos := make([]domain.DiaryPhoto, 0, len(doc.Photos))
	for _, photo := range doc.Photos {
		photos = append(photos, domain.DiaryPhoto{
			ID:          photo.ID,
			ContentType: photo.ContentType,
			Data:        photo.Data,
		})
	}
	return domain.DiaryRecord{
		ID:        doc.ID,
		Date:      doc.Date,
		StoreName: doc.Store,
		Menu:      doc.Menu,
		Call:      doc.Call,
		Memo:      doc.Memo,
		Photos:    photos,
		CreatedAt: doc.CreatedAt,
	}
}
