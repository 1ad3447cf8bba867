package public

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jirodb/services/api/internal/interfaces/http/common"
	publicapp "github.com/jirodb/services/api/internal/public/application"
)

func (h *Handler) storeListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		at, err := h.resolveAt(r)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		stores, err := h.stores.List(r.Context())
		if err != nil {
			h.logger.Printf("store list fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗一覧の取得に失敗しました"})
			return
		}

		items := make([]storeSummaryResponse, 0, len(stores))
		for _, store := range stores {
			items = append(items, buildStoreSummaryResponse(store, at))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, storeListResponse{
			Items:       items,
			Total:       len(items),
			EvaluatedAt: at.Format(time.RFC3339),
		})
	}
}

func (h *Handler) storeDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "店舗IDが指定されていません"})
			return
		}

		at, err := h.resolveAt(r)
		if err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		store, err := h.stores.Detail(r.Context(), idParam)
		if err != nil {
			if errors.Is(err, publicapp.ErrStoreNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "店舗が見つかりませんでした"})
				return
			}
			h.logger.Printf("store detail fetch failed id=%q err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗情報の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildStoreDetailResponse(*store, at))
	}
}
