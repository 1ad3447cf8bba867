package public

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/jirodb/services/api/internal/interfaces/http/common"
	publicapp "github.com/jirodb/services/api/internal/public/application"
)

func (h *Handler) visitCountHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam, ok := h.resolveStoreID(w, r)
		if !ok {
			return
		}

		count, err := h.visits.Count(r.Context(), idParam)
		if err != nil {
			h.logger.Printf("visit count fetch failed id=%q err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "訪問回数の取得に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, visitCountResponse{StoreID: idParam, Count: count})
	}
}

// visitAdjustHandler はカウンタを delta 分だけ進める。0 を下回る書き込みは
// 永続層側で拒否され、結果の値がそのまま応答になる。
func (h *Handler) visitAdjustHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam, ok := h.resolveStoreID(w, r)
		if !ok {
			return
		}

		var req adjustVisitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストボディを解釈できません"})
			return
		}
		if req.Delta == 0 {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "delta には 0 以外を指定してください"})
			return
		}

		count, err := h.visits.Adjust(r.Context(), idParam, req.Delta)
		if err != nil {
			h.logger.Printf("visit adjust failed id=%q delta=%d err=%v", idParam, req.Delta, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "訪問回数の更新に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, visitCountResponse{StoreID: idParam, Count: count})
	}
}

func (h *Handler) stampCardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		card, err := h.visits.StampCard(r.Context())
		if err != nil {
			h.logger.Printf("stamp card build failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "スタンプカードの取得に失敗しました"})
			return
		}

		cells := make([]stampCellPayload, 0, len(card.Cells))
		for _, cell := range card.Cells {
			cells = append(cells, stampCellPayload{
				StoreID:    cell.StoreID,
				StoreName:  cell.StoreName,
				Area:       cell.Area,
				VisitCount: cell.VisitCount,
				Visited:    cell.Visited,
			})
		}

		common.WriteJSON(h.logger, w, http.StatusOK, stampCardResponse{
			Achieved: card.Achieved,
			Total:    card.Total,
			Cells:    cells,
		})
	}
}

// resolveStoreID validates the {id} route param against the catalog.
func (h *Handler) resolveStoreID(w http.ResponseWriter, r *http.Request) (string, bool) {
	idParam := strings.TrimSpace(chi.URLParam(r, "id"))
	if idParam == "" {
		common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "店舗IDが指定されていません"})
		return "", false
	}
	if _, err := h.stores.Detail(r.Context(), idParam); err != nil {
		if errors.Is(err, publicapp.ErrStoreNotFound) {
			common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "店舗が見つかりませんでした"})
			return "", false
		}
		h.logger.Printf("store lookup failed id=%q err=%v", idParam, err)
		common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "店舗情報の取得に失敗しました"})
		return "", false
	}
	return idParam, true
}
