package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jirodb/services/api/internal/config"
	"github.com/jirodb/services/api/internal/infrastructure/badgerstore"
	"github.com/jirodb/services/api/internal/infrastructure/catalogfile"
	"github.com/jirodb/services/api/internal/infrastructure/memory"
	publichttp "github.com/jirodb/services/api/internal/interfaces/http/public"
	publicapp "github.com/jirodb/services/api/internal/public/application"
)

// Server は HTTP サーバーのライフサイクルを管理し、各ハンドラへ依存注入するコンポジションルート。
// 永続層の実体（badger か、開けなかった場合のメモリ代替）を選ぶ責務もここに置く。
type Server struct {
	logger         *log.Logger
	db             *badger.DB
	catalog        *catalogfile.StoreRepository
	storeQueries   publicapp.StoreQueryService
	favorites      publicapp.FavoriteService
	visits         publicapp.VisitService
	diary          publicapp.DiaryService
	flags          publicapp.FlagService
	notifier       publicapp.ChangeNotifier
	location       *time.Location
	addr           string
	allowedOrigins []string
	degraded       bool
	closers        []func()
}

// Run はHTTPサーバーを起動し、ルーティングやミドルウェアを組み立てる。
// インフラ初期化に限定し、ドメインロジックをここに書かないことで層の責務を守る。
func (s *Server) Run() error {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:    s.logger,
		Stores:    s.storeQueries,
		Favorites: s.favorites,
		Visits:    s.visits,
		Diary:     s.diary,
		Flags:     s.flags,
		Notifier:  s.notifier,
		Location:  s.location,
	})
	publicHandler.Register(router)

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP サーバー起動: http://%s", s.addr)
		errChan <- httpServer.ListenAndServe()
	}()

	waitForShutdown(httpServer, errChan, s)
	return nil
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && len(allowed) > 0 && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed は指定された Origin が許可リストに含まれるか判定する。
func originAllowed(origin string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[origin]
	return ok
}

// healthHandler はストレージの状態を返す。縮退モード（メモリのみ）でも
// サービス自体は継続しているため 200 で degraded を報告する。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		status := "ok"
		storage := "badger"
		if s.degraded {
			status = "degraded"
			storage = "memory"
		}

		s.writeJSON(w, http.StatusOK, map[string]any{
			"status":  status,
			"storage": storage,
			"stores":  s.catalog.Len(),
			"time":    time.Now().In(s.location).Format(time.RFC3339),
		})
	}
}

// writeJSON は JSON レスポンスの共通書き込み処理。
func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// shutdown は通知購読とシーケンス、badger ハンドルを順に閉じてリソースリークを防ぐ。
func (s *Server) shutdown() {
	for _, closeFn := range s.closers {
		closeFn()
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Printf("ストレージ停止時にエラー: %v", err)
		}
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
// アプリケーションの外側で扱うべき OS 依存の関心事をここへ閉じ込める。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Fatalf("サーバーが異常終了: %v", err)
		}
	case sig := <-sigChan:
		srv.logger.Printf("シグナル %s を受信。サーバー停止処理を開始します。", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Printf("サーバー停止時にエラー: %v", err)
		}
	}

	srv.shutdown()
}

// New は Config・カタログ・badger ハンドルを受け取り、サービスとハンドラを組み立てた Server を返す。
// db が nil の場合（ストレージを開けなかった場合）はメモリ実装へ縮退し、
// 状態はセッション限りになるがサービスは全機能を提供し続ける。
func New(cfg config.Config, catalog *catalogfile.StoreRepository, db *badger.DB) *Server {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.FixedZone("JST", 9*60*60)
		cfg.ServerLog.Printf("タイムゾーン %s の読み込みに失敗: %v, JST を使用します", cfg.Timezone, err)
	}

	s := &Server{
		logger:         cfg.ServerLog,
		catalog:        catalog,
		location:       loc,
		addr:           cfg.Addr,
		allowedOrigins: cfg.AllowedOrigins,
	}

	var (
		favoriteRepo publicapp.FavoriteRepository
		visitRepo    publicapp.VisitCountRepository
		diaryRepo    publicapp.DiaryRepository
		flagRepo     publicapp.FlagRepository
	)

	if db != nil {
		badgerDiary, err := badgerstore.NewDiaryRepository(db, cfg.DiarySequenceBandwidth)
		if err != nil {
			cfg.ServerLog.Printf("日記ストアの初期化に失敗: %v, メモリのみで継続します", err)
			if closeErr := db.Close(); closeErr != nil {
				cfg.ServerLog.Printf("ストレージ停止時にエラー: %v", closeErr)
			}
			db = nil
		} else {
			notifier := badgerstore.NewNotifier(db, cfg.ServerLog)
			s.db = db
			s.notifier = notifier
			s.closers = append(s.closers,
				notifier.Close,
				func() {
					if err := badgerDiary.Close(); err != nil {
						cfg.ServerLog.Printf("日記シーケンス解放時にエラー: %v", err)
					}
				},
			)
			favoriteRepo = badgerstore.NewFavoriteRepository(db)
			visitRepo = badgerstore.NewVisitCountRepository(db)
			diaryRepo = badgerDiary
			flagRepo = badgerstore.NewFlagRepository(db)
		}
	}

	if db == nil {
		s.degraded = true
		notifier := memory.NewNotifier()
		s.notifier = notifier
		favoriteRepo = memory.NewFavoriteRepository(notifier)
		visitRepo = memory.NewVisitCountRepository(notifier)
		diaryRepo = memory.NewDiaryRepository(notifier)
		flagRepo = memory.NewFlagRepository(notifier)
	}

	s.storeQueries = publicapp.NewStoreQueryService(catalog)
	s.favorites = publicapp.NewFavoriteService(favoriteRepo)
	s.visits = publicapp.NewVisitService(visitRepo, catalog)
	s.diary = publicapp.NewDiaryService(diaryRepo)
	s.flags = publicapp.NewFlagService(flagRepo)

	return s
}
