package public

import (
	"net/http"

	"github.com/jirodb/services/api/internal/interfaces/http/common"
)

func (h *Handler) favoriteListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		favorites, err := h.favorites.List(r.Context())
		if err != nil {
			h.logger.Printf("favorite list fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "お気に入りの取得に失敗しました"})
			return
		}
		common.WriteJSON(h.logger, w, http.StatusOK, favoriteListResponse{Favorites: favorites})
	}
}

// favoriteToggleHandler は 1 回のリクエストで読み出し・反転・書き戻しまで
// 完了する。レスポンスが新しい集合を運ぶので、呼び出し側は再取得なしで
// 自身の表示を確定できる。
func (h *Handler) favoriteToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam, ok := h.resolveStoreID(w, r)
		if !ok {
			return
		}

		result, err := h.favorites.Toggle(r.Context(), idParam)
		if err != nil {
			h.logger.Printf("favorite toggle failed id=%q err=%v", idParam, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "お気に入りの更新に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, favoriteToggleResponse{
			StoreID:   idParam,
			Favorited: result.Favorited,
			Favorites: result.Favorites,
		})
	}
}
