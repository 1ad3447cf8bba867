package domain

// StampCell is one store's cell on the stamp-rally card.
type StampCell struct {
	StoreID    string
	StoreName  string
	Area       string
	VisitCount int
	Visited    bool
}

// StampCard aggregates visit counts over the whole catalog.
// StampCard はスタンプラリーカード 1 枚分の描画データ。画像化は外部の
// キャプチャ側の責務であり、ここでは同期的に揃うデータのみを持つ。
type StampCard struct {
	Achieved int
	Total    int
	Cells    []StampCell
}
