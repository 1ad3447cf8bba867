package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                   string
	DataDir                string
	CatalogPath            string
	Timezone               string
	ServerLog              *log.Logger
	AllowedOrigins         []string
	DiarySequenceBandwidth uint64
	GeocoderEndpoint       string
	GeocoderTimeout        time.Duration
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	bandwidth := uint64(16)
	if raw := strings.TrimSpace(os.Getenv("DIARY_SEQUENCE_BANDWIDTH")); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil && parsed > 0 {
			bandwidth = parsed
		}
	}

	geocoderEndpoint := strings.TrimSpace(os.Getenv("GEOCODER_URL"))
	if geocoderEndpoint == "" {
		geocoderEndpoint = "https://nominatim.openstreetmap.org/search"
	}

	geocoderTimeout := 5 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GEOCODER_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			geocoderTimeout = parsed
		}
	}

	return Config{
		Addr:                   envOrDefault("HTTP_ADDR", ":8080"),
		DataDir:                envOrDefault("DATA_DIR", "./data"),
		CatalogPath:            envOrDefault("CATALOG_PATH", "./data/stores.json"),
		Timezone:               envOrDefault("TIMEZONE", "Asia/Tokyo"),
		ServerLog:              log.New(os.Stdout, "[jirodb-api] ", log.LstdFlags|log.Lshortfile),
		AllowedOrigins:         parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		DiarySequenceBandwidth: bandwidth,
		GeocoderEndpoint:       geocoderEndpoint,
		GeocoderTimeout:        geocoderTimeout,
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
