package catalogfile

import "github.com/jirodb/services/api/internal/public/domain"

// StoreDocument はカタログ JSON 上での店舗スキーマを Go 構造体として表現したもの。
type StoreDocument struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Area           string            `json:"area,omitempty"`
	Address        string            `json:"address,omitempty"`
	Access         string            `json:"access,omitempty"`
	URL            string            `json:"url,omitempty"`
	Image          string            `json:"image,omitempty"`
	MapURL         string            `json:"map_url,omitempty"`
	Lat            *float64          `json:"lat,omitempty"`
	Lng            *float64          `json:"lng,omitempty"`
	OpenDays       []int             `json:"openDays,omitempty"`
	BusinessHours  map[int]string    `json:"business_hours,omitempty"`
	HolidayNote    string            `json:"holidayNote,omitempty"`
	SNS            StoreSNSDocument  `json:"sns,omitempty"`
	Menu           []MenuItemDocument `json:"menu,omitempty"`
	Seasonings     []string          `json:"seasonings,omitempty"`
	HasRenge       bool              `json:"hasRenge,omitempty"`
	BoilAdjustable bool              `json:"boilAdjustable,omitempty"`
	ParkingInfo    string            `json:"parkingInfo,omitempty"`
	Memo           string            `json:"memo,omitempty"`
}

// StoreSNSDocument は SNS リンクを保持する埋め込みドキュメント。
type StoreSNSDocument struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Official  string `json:"official,omitempty"`
}

// MenuItemDocument はメニュー 1 品分の埋め込みドキュメント。
type MenuItemDocument struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

func mapStoreDocument(doc StoreDocument) domain.Store {
	menu := make([]domain.MenuItem, 0, len(doc.Menu))
	for _, item := range doc.Menu {
		menu = append(menu, domain.MenuItem{Name: item.Name, Price: item.Price})
	}

	schedule := make(domain.WeekSchedule, len(doc.BusinessHours))
	for day, hours := range doc.BusinessHours {
		schedule[day] = hours
	}

	return domain.Store{
		ID:             doc.ID,
		Name:           doc.Name,
		Area:           doc.Area,
		Address:        doc.Address,
		Access:         doc.Access,
		URL:            doc.URL,
		ImageURL:       doc.Image,
		MapURL:         doc.MapURL,
		Lat:            doc.Lat,
		Lng:            doc.Lng,
		OpenDays:       append([]int{}, doc.OpenDays...),
		BusinessHours:  schedule,
		HolidayNote:    doc.HolidayNote,
		SNS: domain.SNSLinks{
			Twitter:   doc.SNS.Twitter,
			Instagram: doc.SNS.Instagram,
			Official:  doc.SNS.Official,
		},
		Menu:           menu,
		Seasonings:     append([]string{}, doc.Seasonings...),
		HasRenge:       doc.HasRenge,
		BoilAdjustable: doc.BoilAdjustable,
		ParkingInfo:    doc.ParkingInfo,
		Memo:           doc.Memo,
	}
}
