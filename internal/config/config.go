// README: Config loader with env defaults for HTTP, Redis, collaborators, and scoring weights.
package config

import (
	"os"
	"strconv"
	"strings"
)

// ScoringConfig holds the multi-objective weights used when combining
// candidate and venue metrics. Kept as configuration so the weighting can be
// tuned without touching selection or refinement logic.
type ScoringConfig struct {
	// Candidate combined score: w·(1−normVariance) + w·(1−normTotal) + w·(1−normMax).
	VarianceWeight  float64
	TotalTimeWeight float64
	MaxTimeWeight   float64

	// Final venue ordering: fairness, inverse-hours total time, relevance.
	VenueFairnessWeight  float64
	VenueTotalTimeWeight float64
	VenueRelevanceWeight float64
}

type HTTPConfig struct {
	Addr           string
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type Config struct {
	HTTP  HTTPConfig
	Redis struct {
		Addr string
	}
	RateLimit RateLimitConfig
	Geocode   struct {
		BaseURL     string
		MinInterval float64 // seconds between upstream requests
	}
	Routing struct {
		ORSKey     string
		ORSBaseURL string
	}
	Google struct {
		MapsKey string
	}
	Foursquare struct {
		APIKey string
	}
	AI struct {
		GeminiKey string
	}
	Scoring ScoringConfig
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("MIDWAY_HTTP_ADDR", ":8080")
	cfg.HTTP.AllowedOrigins = strings.Split(envOrDefault("MIDWAY_ALLOWED_ORIGINS", "http://localhost:5173"), ",")
	cfg.Redis.Addr = envOrDefault("MIDWAY_REDIS_ADDR", "localhost:6379")
	cfg.RateLimit.RPS = envOrDefaultFloat("MIDWAY_RATE_LIMIT_RPS", 2)
	cfg.RateLimit.Burst = envOrDefaultInt("MIDWAY_RATE_LIMIT_BURST", 10)
	cfg.Geocode.BaseURL = envOrDefault("MIDWAY_NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	cfg.Geocode.MinInterval = envOrDefaultFloat("MIDWAY_GEOCODE_MIN_INTERVAL", 1.1)
	cfg.Routing.ORSKey = os.Getenv("ORS_API_KEY")
	cfg.Routing.ORSBaseURL = envOrDefault("MIDWAY_ORS_URL", "https://api.openrouteservice.org")
	cfg.Google.MapsKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Foursquare.APIKey = os.Getenv("FOURSQUARE_API_KEY")
	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.Scoring = ScoringConfig{
		VarianceWeight:       envOrDefaultFloat("MIDWAY_WEIGHT_VARIANCE", 0.5),
		TotalTimeWeight:      envOrDefaultFloat("MIDWAY_WEIGHT_TOTAL", 0.3),
		MaxTimeWeight:        envOrDefaultFloat("MIDWAY_WEIGHT_MAX", 0.2),
		VenueFairnessWeight:  envOrDefaultFloat("MIDWAY_WEIGHT_VENUE_FAIRNESS", 0.5),
		VenueTotalTimeWeight: envOrDefaultFloat("MIDWAY_WEIGHT_VENUE_TOTAL", 0.3),
		VenueRelevanceWeight: envOrDefaultFloat("MIDWAY_WEIGHT_VENUE_RELEVANCE", 0.2),
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
