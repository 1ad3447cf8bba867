package public

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	publicdomain "github.com/jirodb/services/api/internal/public/domain"
)

// atLayouts は ?at= で受け付ける時刻表記。秒やタイムゾーンを省いた
// "2006-01-02T15:04" はカレンダー UI からの値をそのまま受けるための形。
var atLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// resolveAt parses the optional ?at= override, defaulting to now in the
// configured timezone. Evaluation always happens in the viewer's local time;
// no timezone conversion is applied to an explicit override.
func (h *Handler) resolveAt(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("at"))
	if raw == "" {
		return time.Now().In(h.location), nil
	}
	for _, layout := range atLayouts {
		if t, err := time.ParseInLocation(layout, raw, h.location); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("時刻 %q を解釈できません", raw)
}

func availabilityLabel(state publicdomain.AvailabilityState) string {
	switch state {
	case publicdomain.StateOpen:
		return "営業中"
	case publicdomain.StateBreak:
		return "休憩中"
	default:
		return "定休日"
	}
}
