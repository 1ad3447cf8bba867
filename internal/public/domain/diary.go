package domain

import "time"

// DiaryRecord is one saved visit diary entry. Records are immutable once
// saved: the lifecycle is create and delete only, no partial update.
type DiaryRecord struct {
	ID        uint64
	Date      string
	StoreName string
	Menu      string
	Call      string
	Memo      string
	Photos    []DiaryPhoto
	CreatedAt time.Time
}

// DiaryPhoto keeps one photo attachment as an opaque binary blob.
// DiaryPhoto は日記 1 件に添付された写真 1 枚分のバイナリとメタデータ。
type DiaryPhoto struct {
	ID          string
	ContentType string
	Data        []byte
}
