package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
)

const (
	DefaultRoutePort   = "8080"
	DefaultMapDataPort = "8081"

	DefaultOverpassURL          = "https://overpass-api.de/api/interpreter"
	DefaultElevationURLTemplate = "https://api.opentopodata.org/v1/aster30m?locations={locations}"
)

// Config holds the settings shared by the route and map data servers.
type Config struct {
	Address string
	Port    string

	// Base URL of a remote map data service, empty to query Overpass in process
	MapDataURL  string
	OverpassURL string

	ElevationURLTemplate string
	ElevationCachePath   string
	ElevationBatchSize   int
	ElevationPause       time.Duration

	RouteTimeout time.Duration
	HillyMode    string
	SnapDistance float64

	LogLevel string
}

// Load reads an optional .env file, then the environment.
// Values already set in the environment win over the file.
func Load(defaultPort string, files ...string) Config {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}

	return Config{
		Address: envString("ADDRESS", "127.0.0.1"),
		Port:    envString("PORT", defaultPort),

		MapDataURL:  envString("MAP_DATA_URL", ""),
		OverpassURL: envString("OVERPASS_URL", DefaultOverpassURL),

		ElevationURLTemplate: envString("ELEVATION_URL_TEMPLATE", DefaultElevationURLTemplate),
		ElevationCachePath:   envString("ELEVATION_CACHE_PATH", "elevation.db"),
		ElevationBatchSize:   envInt("ELEVATION_BATCH_SIZE", 100),
		ElevationPause:       envDuration("ELEVATION_PAUSE", time.Second),

		RouteTimeout: envDuration("ROUTE_TIMEOUT", 60*time.Second),
		HillyMode:    envString("HILLY_MODE", "observed"),
		SnapDistance: envFloat("SNAP_DISTANCE", 1000),

		LogLevel: envString("LOG_LEVEL", "info"),
	}
}

// LevelFilter returns the log level filter for LogLevel, info if it is not recognized.
func (c Config) LevelFilter() level.Option {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}

func envString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func envFloat(key string, defaultValue float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func envDuration(key string, defaultValue time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
