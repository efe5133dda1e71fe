// Package config centralizes environment-driven settings and the pinned
// heuristic constants the routing and data layers share.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/caponcito/Plantaciones-agronomas/models"
)

// Config is assembled once at startup from the environment (after a
// best-effort .env load) and passed down read-only.
type Config struct {
	Port string

	// DataDir points at CSV exports of the network. Empty means the
	// built-in synthetic Yuma dataset is generated instead.
	DataDir  string
	DataSeed int64

	Region    models.Region
	CenterLat float64
	CenterLon float64

	RoadNetworkDir     string
	RoadNetworkRegion  string
	RoadNetworkURL     string
	RoadNetworkTimeout time.Duration

	ForecastBaseURL string
	ForecastTimeout time.Duration

	Routing RoutingParams
	Model   ModelParams
}

// RoutingParams pins the synthetic-estimation heuristics. Tests assert
// against these values instead of re-deriving them.
type RoutingParams struct {
	// Distance brackets that pick speed, road kind and accessibility
	// when no road network data is available.
	ShortKm  float64
	MediumKm float64

	PavedSpeedKmh  float64
	GravelSpeedKmh float64
	DirtSpeedKmh   float64

	PavedAccessibility  float64
	GravelAccessibility float64
	DirtAccessibility   float64

	// CostPerKm is the fuel cost basis applied to resolved distances.
	CostPerKm float64

	// SyntheticWaypoints is how many intermediate points a synthetic
	// geometry gets between its endpoints.
	SyntheticWaypoints int

	// AccessCutoffM: a node further than this from its nearest road
	// vertex gets an explicit synthetic access segment.
	AccessCutoffM  float64
	AccessSpeedKmh float64
}

// ModelParams configures the yield regression ensemble.
type ModelParams struct {
	Trees    int
	MaxDepth int
	Seed     int64
}

// SpeedFor returns the assumed travel speed for a road kind.
func (p RoutingParams) SpeedFor(kind models.RoadKind) float64 {
	switch kind {
	case models.RoadPaved:
		return p.PavedSpeedKmh
	case models.RoadGravel:
		return p.GravelSpeedKmh
	default:
		return p.DirtSpeedKmh
	}
}

// AccessibilityFor returns the conservative rain accessibility assumed for
// a road kind when no measured value exists.
func (p RoutingParams) AccessibilityFor(kind models.RoadKind) float64 {
	switch kind {
	case models.RoadPaved:
		return p.PavedAccessibility
	case models.RoadGravel:
		return p.GravelAccessibility
	default:
		return p.DirtAccessibility
	}
}

// KindForDistance picks the assumed road kind for a synthetic route.
func (p RoutingParams) KindForDistance(km float64) models.RoadKind {
	switch {
	case km < p.ShortKm:
		return models.RoadPaved
	case km < p.MediumKm:
		return models.RoadGravel
	default:
		return models.RoadDirt
	}
}

// Load reads the environment and fills in defaults for everything unset.
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		DataDir:  getEnv("DATA_DIR", ""),
		DataSeed: getEnvInt64("DATA_SEED", 42),

		// Yuma County growing region.
		Region: models.Region{
			MinLat: getEnvFloat("REGION_MIN_LAT", 32.3),
			MaxLat: getEnvFloat("REGION_MAX_LAT", 33.0),
			MinLon: getEnvFloat("REGION_MIN_LON", -115.0),
			MaxLon: getEnvFloat("REGION_MAX_LON", -114.2),
		},
		CenterLat: getEnvFloat("REGION_CENTER_LAT", 32.6927),
		CenterLon: getEnvFloat("REGION_CENTER_LON", -114.6277),

		RoadNetworkDir:     getEnv("ROADNET_DIR", "data/roadnet"),
		RoadNetworkRegion:  getEnv("ROADNET_REGION", "yuma"),
		RoadNetworkURL:     getEnv("ROADNET_URL", ""),
		RoadNetworkTimeout: getEnvDuration("ROADNET_TIMEOUT", 10*time.Second),

		ForecastBaseURL: getEnv("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		ForecastTimeout: getEnvDuration("FORECAST_TIMEOUT", 10*time.Second),

		Routing: RoutingParams{
			ShortKm:  5,
			MediumKm: 15,

			PavedSpeedKmh:  50,
			GravelSpeedKmh: 45,
			DirtSpeedKmh:   40,

			PavedAccessibility:  0.9,
			GravelAccessibility: 0.7,
			DirtAccessibility:   0.5,

			CostPerKm:          0.15,
			SyntheticWaypoints: 5,
			AccessCutoffM:      10,
			AccessSpeedKmh:     40,
		},

		Model: ModelParams{
			Trees:    getEnvInt("MODEL_TREES", 100),
			MaxDepth: getEnvInt("MODEL_MAX_DEPTH", 10),
			Seed:     getEnvInt64("MODEL_SEED", 42),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
