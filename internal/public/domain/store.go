package domain

// Store represents a publicly visible store entity.
// Store はカタログ上の店舗 1 件を表す読み取り専用エンティティ。
type Store struct {
	ID             string
	Name           string
	Area           string
	Address        string
	Access         string
	URL            string
	ImageURL       string
	MapURL         string
	Lat            *float64
	Lng            *float64
	OpenDays       []int
	BusinessHours  WeekSchedule
	HolidayNote    string
	SNS            SNSLinks
	Menu           []MenuItem
	Seasonings     []string
	HasRenge       bool
	BoilAdjustable bool
	ParkingInfo    string
	Memo           string
}

// WeekSchedule maps weekday numbers (Monday=1 .. Sunday=7) to an hours string
// such as "11:00-15:00,17:00-20:00". Days absent from the map are closed days.
type WeekSchedule map[int]string

// SNSLinks defines structured SNS URLs for a store.
type SNSLinks struct {
	Twitter   string
	Instagram string
	Official  string
}

// MenuItem is one menu entry with its price in yen.
type MenuItem struct {
	Name  string
	Price int
}
