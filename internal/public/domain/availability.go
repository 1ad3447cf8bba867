package domain

import (
	"strings"
	"time"
)

// AvailabilityState is the three-way operating state of a store at a moment.
type AvailabilityState string

const (
	// StateOpen indicates the evaluated moment falls inside an open range.
	StateOpen AvailabilityState = "open"
	// StateBreak indicates the day has hours but the moment falls between ranges.
	StateBreak AvailabilityState = "break"
	// StateClosed indicates the day has no hours at all.
	StateClosed AvailabilityState = "closed"
)

// Availability carries the evaluated state plus the day's hours text for display.
// Hours is empty when State is StateClosed.
type Availability struct {
	State AvailabilityState
	Hours string
}

// EvaluateAvailability classifies a store's operating state at the given moment.
// EvaluateAvailability は店舗の週間スケジュールと時刻から営業状態を判定する純粋関数。
//
// 曜日は月曜=1〜日曜=7 に正規化し、時刻は at 自身のロケーションのまま
// "HH:MM" に整形してレンジ境界と辞書順で比較する。ゼロ詰め固定幅なので
// 辞書順比較がそのまま時刻順になるが、"22:00-02:00" のような日跨ぎレンジは
// 決してマッチしない。
func EvaluateAvailability(store Store, at time.Time) Availability {
	day := int(at.Weekday())
	if day == 0 {
		day = 7
	}

	if !containsDay(store.OpenDays, day) {
		return Availability{State: StateClosed}
	}

	hours := store.BusinessHours[day]
	if strings.TrimSpace(hours) == "" {
		return Availability{State: StateClosed}
	}

	now := at.Format("15:04")
	for _, r := range strings.Split(hours, ",") {
		r = strings.TrimSpace(r)
		start, end, ok := strings.Cut(r, "-")
		if !ok {
			continue
		}
		start = strings.TrimSpace(start)
		end = strings.TrimSpace(end)
		if start <= now && now <= end {
			return Availability{State: StateOpen, Hours: hours}
		}
	}

	return Availability{State: StateBreak, Hours: hours}
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
