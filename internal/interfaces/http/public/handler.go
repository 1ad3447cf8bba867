package public

import (
	"log"
	"time"

	"github.com/go-chi/chi/v5"

	publicapp "github.com/jirodb/services/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger    *log.Logger
	stores    publicapp.StoreQueryService
	favorites publicapp.FavoriteService
	visits    publicapp.VisitService
	diary     publicapp.DiaryService
	flags     publicapp.FlagService
	notifier  publicapp.ChangeNotifier
	location  *time.Location
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger    *log.Logger
	Stores    publicapp.StoreQueryService
	Favorites publicapp.FavoriteService
	Visits    publicapp.VisitService
	Diary     publicapp.DiaryService
	Flags     publicapp.FlagService
	Notifier  publicapp.ChangeNotifier
	Location  *time.Location
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:    cfg.Logger,
		stores:    cfg.Stores,
		favorites: cfg.Favorites,
		visits:    cfg.Visits,
		diary:     cfg.Diary,
		flags:     cfg.Flags,
		notifier:  cfg.Notifier,
		location:  cfg.Location,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/stores", h.storeListHandler())
	r.Get("/stores/{id}", h.storeDetailHandler())
	r.Get("/stores/{id}/visits", h.visitCountHandler())
	r.Post("/stores/{id}/visits", h.visitAdjustHandler())
	r.Get("/favorites", h.favoriteListHandler())
	r.Post("/favorites/{id}/toggle", h.favoriteToggleHandler())
	r.Get("/stamp-card", h.stampCardHandler())
	r.Get("/diary", h.diaryListHandler())
	r.Post("/diary", h.diaryCreateHandler())
	r.Delete("/diary/{id}", h.diaryDeleteHandler())
	r.Get("/diary/{id}/photos/{photoID}", h.diaryPhotoHandler())
	r.Get("/flags/{name}", h.flagReadHandler())
	r.Put("/flags/{name}", h.flagSetHandler())
	r.Get("/events", h.eventsHandler())
}
