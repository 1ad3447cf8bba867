package public

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	publicapp "github.com/jirodb/services/api/internal/public/application"
)

// heartbeatInterval keeps idle SSE connections from being reaped by proxies.
const heartbeatInterval = 30 * time.Second

// eventsHandler streams change notifications as server-sent events. Each
// event names the slice that changed and nothing else; clients re-read the
// slices they display. Disconnecting simply abandons the subscription.
// eventsHandler は別ビュー・別クライアントの書き込みを「どのスライスが
// 変わったか」だけの通知として配信する。通知自体は状態を一切変更しない。
func (h *Handler) eventsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		slices := parseSliceFilter(r.URL.Query().Get("slices"))
		ch, cancel := h.notifier.Subscribe(slices...)
		defer cancel()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, ": connected\n\n")
		flusher.Flush()

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case slice, open := <-ch:
				if !open {
					return
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", slice)
				flusher.Flush()
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}

// parseSliceFilter narrows the subscription to known slice names; an empty or
// all-unknown filter subscribes to everything.
func parseSliceFilter(raw string) []string {
	known := map[string]struct{}{
		publicapp.SliceFavorites: {},
		publicapp.SliceVisits:    {},
		publicapp.SliceDiary:     {},
		publicapp.SliceFlags:     {},
	}

	slices := make([]string, 0, len(known))
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if _, ok := known[part]; ok {
			slices = append(slices, part)
		}
	}
	if len(slices) == 0 {
		return []string{
			publicapp.SliceFavorites,
			publicapp.SliceVisits,
			publicapp.SliceDiary,
			publicapp.SliceFlags,
		}
	}
	return slices
}
