package public

import (
	"fmt"
	"time"

	publicdomain "github.com/jirodb/services/api/internal/public/domain"
)

// availabilityPayload は営業状態の三値とその日の営業時間文字列を運ぶ。
// Label は代表的な表示名で、ビュー側が独自に畳み込んでも構わない。
type availabilityPayload struct {
	State string `json:"state"`
	Label string `json:"label"`
	Hours string `json:"hours,omitempty"`
}

type storeSummaryResponse struct {
	ID           string              `json:"id"`
	StoreName    string              `json:"storeName"`
	Area         string              `json:"area,omitempty"`
	ImageURL     string              `json:"imageUrl,omitempty"`
	Availability availabilityPayload `json:"availability"`
}

type storeListResponse struct {
	Items       []storeSummaryResponse `json:"items"`
	Total       int                    `json:"total"`
	EvaluatedAt string                 `json:"evaluatedAt"`
}

type storeDetailResponse struct {
	ID             string                  `json:"id"`
	StoreName      string                  `json:"storeName"`
	Area           string                  `json:"area,omitempty"`
	Address        string                  `json:"address,omitempty"`
	Access         string                  `json:"access,omitempty"`
	URL            string                  `json:"url,omitempty"`
	ImageURL       string                  `json:"imageUrl,omitempty"`
	MapURL         string                  `json:"mapUrl,omitempty"`
	Lat            *float64                `json:"lat,omitempty"`
	Lng            *float64                `json:"lng,omitempty"`
	OpenDays       []int                   `json:"openDays,omitempty"`
	BusinessHours  publicdomain.WeekSchedule `json:"businessHours,omitempty"`
	HolidayNote    string                  `json:"holidayNote,omitempty"`
	SNS            storeSNSPayload         `json:"sns"`
	Menu           []menuItemPayload       `json:"menu,omitempty"`
	Seasonings     []string                `json:"seasonings,omitempty"`
	HasRenge       bool                    `json:"hasRenge"`
	BoilAdjustable bool                    `json:"boilAdjustable"`
	ParkingInfo    string                  `json:"parkingInfo,omitempty"`
	Memo           string                  `json:"memo,omitempty"`
	Availability   availabilityPayload     `json:"availability"`
	EvaluatedAt    string                  `json:"evaluatedAt"`
}

type storeSNSPayload struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Official  string `json:"official,omitempty"`
}

type menuItemPayload struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

type favoriteListResponse struct {
	Favorites []string `json:"favorites"`
}

type favoriteToggleResponse struct {
	StoreID   string   `json:"storeId"`
	Favorited bool     `json:"favorited"`
	Favorites []string `json:"favorites"`
}

type visitCountResponse struct {
	StoreID string `json:"storeId"`
	Count   int    `json:"count"`
}

type adjustVisitRequest struct {
	Delta int `json:"delta"`
}

type stampCellPayload struct {
	StoreID    string `json:"storeId"`
	StoreName  string `json:"storeName"`
	Area       string `json:"area,omitempty"`
	VisitCount int    `json:"visitCount"`
	Visited    bool   `json:"visited"`
}

type stampCardResponse struct {
	Achieved int                `json:"achieved"`
	Total    int                `json:"total"`
	Cells    []stampCellPayload `json:"cells"`
}

type diaryPhotoMetaPayload struct {
	ID          string `json:"id"`
	ContentType string `json:"contentType"`
	URL         string `json:"url"`
}

type diaryRecordResponse struct {
	ID        uint64                  `json:"id"`
	Date      string                  `json:"date"`
	Store     string                  `json:"store"`
	Menu      string                  `json:"menu,omitempty"`
	Call      string                  `json:"call,omitempty"`
	Memo      string                  `json:"memo,omitempty"`
	Photos    []diaryPhotoMetaPayload `json:"photos,omitempty"`
	CreatedAt string                  `json:"createdAt"`
}

type diaryListResponse struct {
	Items []diaryRecordResponse `json:"items"`
	Total int                   `json:"total"`
}

type createDiaryRequest struct {
	Date   string              `json:"date"`
	Store  string              `json:"store"`
	Menu   string              `json:"menu"`
	Call   string              `json:"call"`
	Memo   string              `json:"memo"`
	Photos []diaryPhotoPayload `json:"photos"`
}

type diaryPhotoPayload struct {
	ContentType string `json:"contentType"`
	Data        []byte `json:"data"`
}

type createDiaryResponse struct {
	Status string              `json:"status"`
	Record diaryRecordResponse `json:"record"`
}

type flagResponse struct {
	Name string `json:"name"`
	Set  bool   `json:"set"`
}

// buildStoreSummaryResponse は Store ドメインモデルを一覧表示用 DTO に変換する。
func buildStoreSummaryResponse(store publicdomain.Store, at time.Time) storeSummaryResponse {
	return storeSummaryResponse{
		ID:           store.ID,
		StoreName:    store.Name,
		Area:         store.Area,
		ImageURL:     store.ImageURL,
		Availability: buildAvailabilityPayload(store, at),
	}
}

// buildStoreDetailResponse は Store ドメインモデルを詳細表示用 DTO に変換する。
func buildStoreDetailResponse(store publicdomain.Store, at time.Time) storeDetailResponse {
	menu := make([]menuItemPayload, 0, len(store.Menu))
	for _, item := range store.Menu {
		menu = append(menu, menuItemPayload{Name: item.Name, Price: item.Price})
	}

	return storeDetailResponse{
		ID:             store.ID,
		StoreName:      store.Name,
		Area:           store.Area,
		Address:        store.Address,
		Access:         store.Access,
		URL:            store.URL,
		ImageURL:       store.ImageURL,
		MapURL:         store.MapURL,
		Lat:            store.Lat,
		Lng:            store.Lng,
		OpenDays:       append([]int{}, store.OpenDays...),
		BusinessHours:  store.BusinessHours,
		HolidayNote:    store.HolidayNote,
		SNS: storeSNSPayload{
			Twitter:   store.SNS.Twitter,
			Instagram: store.SNS.Instagram,
			Official:  store.SNS.Official,
		},
		Menu:           menu,
		Seasonings:     append([]string{}, store.Seasonings...),
		HasRenge:       store.HasRenge,
		BoilAdjustable: store.BoilAdjustable,
		ParkingInfo:    store.ParkingInfo,
		Memo:           store.Memo,
		Availability:   buildAvailabilityPayload(store, at),
		EvaluatedAt:    at.Format(time.RFC3339),
	}
}

func buildAvailabilityPayload(store publicdomain.Store, at time.Time) availabilityPayload {
	availability := publicdomain.EvaluateAvailability(store, at)
	return availabilityPayload{
		State: string(availability.State),
		Label: availabilityLabel(availability.State),
		Hours: availability.Hours,
	}
}

// buildDiaryRecordResponse はレコードを DTO へ変換する。写真バイナリ本体は含めず、
// このプロセスに対してのみ解決できる表示用 URL を都度組み立てる。
func buildDiaryRecordResponse(record publicdomain.DiaryRecord) diaryRecordResponse {
	photos := make([]diaryPhotoMetaPayload, 0, len(record.Photos))
	for _, photo := range record.Photos {
		photos = append(photos, diaryPhotoMetaPayload{
			ID:          photo.ID,
			ContentType: photo.ContentType,
			URL:         fmt.Sprintf("/diary/%d/photos/%s", record.ID, photo.ID),
		})
	}

	createdAt := ""
	if !record.CreatedAt.IsZero() {
		createdAt = record.CreatedAt.Format(time.RFC3339)
	}

	return diaryRecordResponse{
		ID:        record.ID,
		Date:      record.Date,
		Store:     record.StoreName,
		Menu:      record.Menu,
		Call:      record.Call,
		Memo:      record.Memo,
		Photos:    photos,
		CreatedAt: createdAt,
	}
}
