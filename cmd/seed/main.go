// seed はカタログファイルを整備するためのコマンド。生の店舗 JSON を読み込み、
// フィールドの正規化・営業時間表記の検証・地図 URL からの緯度経度抽出・
// 住所ジオコーディング（任意）を行って正準カタログを書き出す。
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/jirodb/services/api/internal/config"
	"github.com/jirodb/services/api/internal/infrastructure/catalogfile"
)

type seedOptions struct {
	inPath   string
	outPath  string
	geocode  bool
	sample   bool
	waitStep time.Duration
}

// mapURLPattern は Google マップ形式の URL に埋め込まれた "@lat,lng" を拾う。
var mapURLPattern = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)

var hoursRangePattern = regexp.MustCompile(`^\d{2}:\d{2}-\d{2}:\d{2}$`)

func main() {
	opts := seedOptions{}
	flag.StringVar(&opts.inPath, "in", "", "入力となる生の店舗 JSON ファイル")
	flag.StringVar(&opts.outPath, "out", "./data/stores.json", "書き出し先のカタログファイル")
	flag.BoolVar(&opts.geocode, "geocode", false, "緯度経度が無い店舗を住所からジオコーディングする")
	flag.BoolVar(&opts.sample, "sample", false, "入力の代わりに開発用サンプルカタログを書き出す")
	flag.DurationVar(&opts.waitStep, "wait", time.Second, "ジオコーディング API 呼び出しの間隔")
	flag.Parse()

	logger := log.New(os.Stdout, "[jirodb-seed] ", log.LstdFlags)
	cfg := config.Load()

	var docs []catalogfile.StoreDocument
	switch {
	case opts.sample:
		docs = sampleStores()
	case opts.inPath != "":
		raw, err := os.ReadFile(opts.inPath)
		if err != nil {
			logger.Fatalf("入力ファイルの読み込みに失敗: %v", err)
		}
		if err := json.Unmarshal(raw, &docs); err != nil {
			logger.Fatalf("入力 JSON の解析に失敗: %v", err)
		}
	default:
		logger.Fatal("-in か -sample のどちらかを指定してください")
	}

	docs, warnings := normalizeStores(docs)
	for _, warning := range warnings {
		logger.Printf("警告: %s", warning)
	}

	if opts.geocode {
		geocoder := &geocoderClient{
			endpoint: cfg.GeocoderEndpoint,
			client:   &http.Client{Timeout: cfg.GeocoderTimeout},
		}
		fillCoordinates(logger, geocoder, docs, opts.waitStep)
	}

	// 正準カタログとしてもう一度パースできることを保証してから書き出す。
	encoded, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		logger.Fatalf("カタログのエンコードに失敗: %v", err)
	}
	if _, err := catalogfile.Parse(encoded); err != nil {
		logger.Fatalf("生成したカタログが不正です: %v", err)
	}

	if err := os.WriteFile(opts.outPath, encoded, 0o644); err != nil {
		logger.Fatalf("カタログの書き出しに失敗: %v", err)
	}
	logger.Printf("カタログを書き出しました: %s (%d 店舗)", opts.outPath, len(docs))
}

// normalizeStores は文字列のトリムと必須項目・営業時間表記の検査を行う。
// 致命的でない問題は警告として返し、店舗自体は残す。
func normalizeStores(docs []catalogfile.StoreDocument) ([]catalogfile.StoreDocument, []string) {
	warnings := make([]string, 0)
	out := make([]catalogfile.StoreDocument, 0, len(docs))

	for _, doc := range docs {
		doc.ID = strings.TrimSpace(doc.ID)
		doc.Name = strings.TrimSpace(doc.Name)
		doc.Area = strings.TrimSpace(doc.Area)
		doc.Address = strings.TrimSpace(doc.Address)

		if doc.ID == "" || doc.Name == "" {
			warnings = append(warnings, fmt.Sprintf("id か name が空の店舗をスキップしました: %+q", doc.Name))
			continue
		}

		for _, day := range doc.OpenDays {
			if day < 1 || day > 7 {
				warnings = append(warnings, fmt.Sprintf("店舗 %s: openDays に範囲外の曜日 %d", doc.ID, day))
			}
		}

		for day, hours := range doc.BusinessHours {
			for _, r := range strings.Split(hours, ",") {
				if !hoursRangePattern.MatchString(strings.TrimSpace(r)) {
					warnings = append(warnings, fmt.Sprintf("店舗 %s: %d 曜日の営業時間表記が不正: %q", doc.ID, day, r))
				}
			}
		}

		if doc.Lat == nil || doc.Lng == nil {
			if lat, lng, ok := extractLatLng(doc.MapURL); ok {
				doc.Lat = &lat
				doc.Lng = &lng
			}
		}

		out = append(out, doc)
	}
	return out, warnings
}

// extractLatLng は地図 URL に埋め込まれた座標を取り出す。
func extractLatLng(mapURL string) (float64, float64, bool) {
	match := mapURLPattern.FindStringSubmatch(mapURL)
	if match == nil {
		return 0, 0, false
	}
	lat, err1 := strconv.ParseFloat(match[1], 64)
	lng, err2 := strconv.ParseFloat(match[2], 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return lat, lng, true
}

// fillCoordinates は座標が埋まらなかった店舗を住所から検索する。失敗しても
// 店舗は座標なしのまま残す（地図に出ないだけでカタログとしては有効）。
func fillCoordinates(logger *log.Logger, geocoder *geocoderClient, docs []catalogfile.StoreDocument, waitStep time.Duration) {
	for i := range docs {
		if docs[i].Lat != nil && docs[i].Lng != nil {
			continue
		}
		if docs[i].Address == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		lat, lng, err := geocoder.search(ctx, docs[i].Address)
		cancel()
		if err != nil {
			logger.Printf("店舗 %s のジオコーディングに失敗: %v", docs[i].ID, err)
			continue
		}
		docs[i].Lat = &lat
		docs[i].Lng = &lng
		logger.Printf("店舗 %s: %f,%f", docs[i].ID, lat, lng)

		time.Sleep(waitStep)
	}
}

// geocoderClient は Nominatim 互換エンドポイントへの薄いクライアント。
type geocoderClient struct {
	endpoint string
	client   *http.Client
}

type geocoderResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (g *geocoderClient) search(ctx context.Context, address string) (float64, float64, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("User-Agent", "jirodb-seed/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("ジオコーダーが %d を返しました", resp.StatusCode)
	}

	var results []geocoderResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("住所 %q に一致する座標がありません", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, err
	}
	return lat, lng, nil
}

// sampleStores は開発用の最小カタログ。
func sampleStores() []catalogfile.StoreDocument {
	lat := 35.700466
	lng := 139.738554
	return []catalogfile.StoreDocument{
		{
			ID:      "mita",
			Name:    "ラーメン二郎 三田本店",
			Area:    "東京",
			Address: "東京都港区三田2-16-4",
			Access:  "都営三田線 三田駅から徒歩5分",
			OpenDays: []int{1, 2, 3, 4, 5, 6},
			BusinessHours: map[int]string{
				1: "08:30-15:00,17:00-20:00",
				2: "08:30-15:00,17:00-20:00",
				3: "08:30-15:00,17:00-20:00",
				4: "08:30-15:00,17:00-20:00",
				5: "08:30-15:00,17:00-20:00",
				6: "08:30-15:00",
			},
			HolidayNote: "日曜・祝日休み",
			Menu: []catalogfile.MenuItemDocument{
				{Name: "小ラーメン", Price: 600},
				{Name: "小豚", Price: 700},
				{Name: "大ラーメン", Price: 650},
			},
			Seasonings:  []string{"ニンニク", "ヤサイ", "アブラ", "カラメ"},
			ParkingInfo: "なし",
		},
		{
			ID:      "kabukicho",
			Name:    "ラーメン二郎 歌舞伎町店",
			Area:    "東京",
			Address: "東京都新宿区歌舞伎町2-37-5",
			Lat:     &lat,
			Lng:     &lng,
			OpenDays: []int{1, 2, 3, 4, 5, 6, 7},
			BusinessHours: map[int]string{
				1: "11:30-23:00", 2: "11:30-23:00", 3: "11:30-23:00",
				4: "11:30-23:00", 5: "11:30-23:00", 6: "11:30-23:00",
				7: "11:30-22:00",
			},
			Menu: []catalogfile.MenuItemDocument{
				{Name: "小ラーメン", Price: 750},
				{Name: "豚入り", Price: 850},
			},
			Seasonings: []string{"ニンニク", "ヤサイ", "アブラ"},
			HasRenge:   true,
		},
		{
			ID:      "sapporo",
			Name:    "ラーメン二郎 札幌店",
			Area:    "北海道",
			Address: "北海道札幌市中央区南6条西8-8-4",
			OpenDays: []int{2, 3, 4, 5, 6, 7},
			BusinessHours: map[int]string{
				2: "11:00-15:00,17:00-21:00",
				3: "11:00-15:00,17:00-21:00",
				4: "11:00-15:00,17:00-21:00",
				5: "11:00-15:00,17:00-21:00",
				6: "11:00-15:00,17:00-21:00",
				7: "11:00-15:00",
			},
			HolidayNote:    "月曜休み",
			Menu:           []catalogfile.MenuItemDocument{{Name: "小ラーメン", Price: 800}},
			Seasonings:     []string{"ニンニク", "ヤサイ", "アブラ", "カラメ"},
			BoilAdjustable: true,
			ParkingInfo:    "近隣にコインパーキングあり",
		},
	}
}
