package public

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jirodb/services/api/internal/interfaces/http/common"
)

func (h *Handler) flagReadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(chi.URLParam(r, "name"))
		if name == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "フラグ名が指定されていません"})
			return
		}

		set, err := h.flags.Read(r.Context(), name)
		if err != nil {
			h.logger.Printf("flag read failed name=%q err=%v", name, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "フラグの取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, flagResponse{Name: name, Set: set})
	}
}

func (h *Handler) flagSetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(chi.URLParam(r, "name"))
		if name == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "フラグ名が指定されていません"})
			return
		}

		if err := h.flags.Set(r.Context(), name); err != nil {
			h.logger.Printf("flag set failed name=%q err=%v", name, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "フラグの保存に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, flagResponse{Name: name, Set: true})
	}
}
