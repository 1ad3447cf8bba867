package main

import (
	"strings"
	"testing"

	"github.com/jirodb/services/api/internal/infrastructure/catalogfile"
)

func TestExtractLatLng(t *testing.T) {
	cases := []struct {
		name   string
		mapURL string
		lat    float64
		lng    float64
		ok     bool
	}{
		{"google_maps_url", "https://www.google.com/maps/place/x/@35.648482,139.742166,17z", 35.648482, 139.742166, true},
		{"negative_coordinates", "https://maps.example.com/@-33.868820,151.209290,12z", -33.868820, 151.209290, true},
		{"no_coordinates", "https://example.com/map", 0, 0, false},
		{"empty", "", 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lat, lng, ok := extractLatLng(tc.mapURL)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && (lat != tc.lat || lng != tc.lng) {
				t.Errorf("got %f,%f, want %f,%f", lat, lng, tc.lat, tc.lng)
			}
		})
	}
}

func TestNormalizeStores(t *testing.T) {
	docs := []catalogfile.StoreDocument{
		{ID: " mita ", Name: " ラーメン二郎 三田本店 ", MapURL: "https://maps.example.com/@35.648482,139.742166,17z"},
		{ID: "", Name: "名無し店"},
		{ID: "bad-hours", Name: "検証用", OpenDays: []int{0, 8}, BusinessHours: map[int]string{1: "11時-15時"}},
	}

	out, warnings := normalizeStores(docs)

	if len(out) != 2 {
		t.Fatalf("kept %d stores, want 2", len(out))
	}
	if out[0].ID != "mita" || out[0].Name != "ラーメン二郎 三田本店" {
		t.Errorf("fields not trimmed: %+v", out[0])
	}
	if out[0].Lat == nil || out[0].Lng == nil {
		t.Error("coordinates not extracted from map url")
	}

	// One warning for the skipped store, two for the out-of-range days, one
	// for the malformed hours range.
	if len(warnings) != 4 {
		t.Fatalf("warnings = %d: %v", len(warnings), warnings)
	}
	joined := strings.Join(warnings, "\n")
	for _, want := range []string{"スキップ", "範囲外の曜日", "営業時間表記が不正"} {
		if !strings.Contains(joined, want) {
			t.Errorf("warnings missing %q: %v", want, warnings)
		}
	}
}

func TestSampleStoresParse(t *testing.T) {
	docs, warnings := normalizeStores(sampleStores())
	if len(warnings) != 0 {
		t.Fatalf("sample catalog produced warnings: %v", warnings)
	}
	if len(docs) != 3 {
		t.Fatalf("sample stores = %d, want 3", len(docs))
	}
}
