package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abdimannabov/CoinFlip/internal/adapters/pets/dogceo"
	"github.com/abdimannabov/CoinFlip/internal/adapters/pets/thecatapi"
)

type Config struct {
	HTTPAddr     string
	LogLevel     slog.Level
	LogFile      string
	DogAPIURL    string
	CatAPIURL    string
	CatAPIKey    string
	FetchTimeout time.Duration // zero means lookups never time out
	ImageProbe   bool
}

func Load() (Config, error) {
	c := Config{
		HTTPAddr:  envOr("HTTP_ADDR", ":8080"),
		LogFile:   os.Getenv("LOG_FILE"),
		DogAPIURL: envOr("DOG_API_URL", dogceo.DefaultURL),
		CatAPIURL: envOr("CAT_API_URL", thecatapi.DefaultURL),
		CatAPIKey: os.Getenv("CAT_API_KEY"),
	}

	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid FETCH_TIMEOUT %q: %w", v, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("invalid FETCH_TIMEOUT %q: must not be negative", v)
		}
		c.FetchTimeout = d
	}

	probe, err := strconv.ParseBool(envOr("IMAGE_PROBE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid IMAGE_PROBE %q: %w", os.Getenv("IMAGE_PROBE"), err)
	}
	c.ImageProbe = probe

	level, err := parseLogLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
