package main

import (
	"log"

	"github.com/jirodb/services/api/internal/config"
	"github.com/jirodb/services/api/internal/infrastructure/badgerstore"
	"github.com/jirodb/services/api/internal/infrastructure/catalogfile"
	"github.com/jirodb/services/api/internal/server"
)

func main() {
	cfg := config.Load()

	catalog, err := catalogfile.Load(cfg.CatalogPath)
	if err != nil {
		cfg.ServerLog.Fatalf("カタログの読み込みに失敗しました: %v", err)
	}
	cfg.ServerLog.Printf("カタログ読み込み完了: %d 店舗", catalog.Len())

	db, err := badgerstore.Open(cfg.DataDir)
	if err != nil {
		// ストレージを開けなくてもクラッシュさせない。状態はセッション限りになる。
		cfg.ServerLog.Printf("ストレージを開けませんでした: %v, メモリのみで継続します", err)
		db = nil
	}

	app := server.New(cfg, catalog, db)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
