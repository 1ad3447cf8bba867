package public

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/jirodb/services/api/internal/interfaces/http/common"
	publicapp "github.com/jirodb/services/api/internal/public/application"
	publicdomain "github.com/jirodb/services/api/internal/public/domain"
)

// maxDiaryBodyBytes bounds one create request: up to 3 photos plus base64
// overhead and the text fields.
const maxDiaryBodyBytes = 24 << 20

func (h *Handler) diaryListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.diary.List(r.Context())
		if err != nil {
			h.logger.Printf("diary list fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "訪問記録の取得に失敗しました"})
			return
		}

		items := make([]diaryRecordResponse, 0, len(records))
		for _, record := range records {
			items = append(items, buildDiaryRecordResponse(record))
		}

		common.WriteJSON(h.logger, w, http.StatusOK, diaryListResponse{Items: items, Total: len(items)})
	}
}

// diaryCreateHandler は下書きを検証して 1 レコードとして保存する。検証に
// 落ちた場合は書き込み前に 400 で返し、コレクションには何も起こらない。
func (h *Handler) diaryCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxDiaryBodyBytes)

		var req createDiaryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストボディを解釈できません"})
			return
		}

		photos := make([]publicdomain.DiaryPhoto, 0, len(req.Photos))
		for _, photo := range req.Photos {
			photos = append(photos, publicdomain.DiaryPhoto{
				ContentType: photo.ContentType,
				Data:        photo.Data,
			})
		}

		record, err := h.diary.Submit(r.Context(), publicapp.SubmitDiaryCommand{
			Date:      req.Date,
			StoreName: req.Store,
			Menu:      req.Menu,
			Call:      req.Call,
			Memo:      req.Memo,
			Photos:    photos,
		})
		if err != nil {
			if errors.Is(err, publicapp.ErrValidation) {
				common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": validationMessage(err)})
				return
			}
			h.logger.Printf("diary create failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "訪問記録の保存に失敗しました"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, createDiaryResponse{
			Status: "ok",
			Record: buildDiaryRecordResponse(*record),
		})
	}
}

func (h *Handler) diaryDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseDiaryID(chi.URLParam(r, "id"))
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "記録IDの形式が不正です"})
			return
		}

		if err := h.diary.Delete(r.Context(), id); err != nil {
			h.logger.Printf("diary delete failed id=%d err=%v", id, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "訪問記録の削除に失敗しました"})
			return
		}

		// 存在しない id の削除も no-op として成功扱い。
		w.WriteHeader(http.StatusNoContent)
	}
}

// diaryPhotoHandler serves one photo blob with its stored content type. The
// URL is only meaningful against the live process; nothing durable points at it.
func (h *Handler) diaryPhotoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseDiaryID(chi.URLParam(r, "id"))
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "記録IDの形式が不正です"})
			return
		}
		photoID := strings.TrimSpace(chi.URLParam(r, "photoID"))

		photo, err := h.diary.Photo(r.Context(), id, photoID)
		if err != nil {
			if errors.Is(err, publicapp.ErrDiaryNotFound) {
				common.WriteJSON(h.logger, w, http.StatusNotFound, map[string]string{"error": "写真が見つかりませんでした"})
				return
			}
			h.logger.Printf("diary photo fetch failed id=%d photo=%q err=%v", id, photoID, err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "写真の取得に失敗しました"})
			return
		}

		w.Header().Set("Content-Type", photo.ContentType)
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(photo.Data)
	}
}

func parseDiaryID(raw string) (uint64, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// validationMessage strips the sentinel prefix, leaving the user-facing text.
func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
