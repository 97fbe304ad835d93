package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdimannabov/CoinFlip/internal/adapters/pets/dogceo"
	"github.com/abdimannabov/CoinFlip/internal/adapters/pets/thecatapi"
	"github.com/abdimannabov/CoinFlip/internal/config"
	"github.com/abdimannabov/CoinFlip/internal/domain"
	"github.com/abdimannabov/CoinFlip/internal/metrics"
	"github.com/abdimannabov/CoinFlip/internal/ports"
)

// stdRNG delegates to math/rand/v2 (auto-seeded).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

var rootCmd = &cobra.Command{
	Use:   "petflip",
	Short: "Flip a coin, get a dog or a cat",
	Long: `petflip flips a coin and fetches a random pet picture for the result:
heads shows a dog from dog.ceo, tails a cat from TheCatAPI.

Run "petflip play" for the terminal UI or "petflip serve" for the HTTP API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, playCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the JSON logger. With LOG_FILE unset the fallback
// writer is used.
func newLogger(cfg config.Config, fallback io.Writer) (*slog.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, func() { _ = f.Close() }
	}
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// newSources builds the instrumented dog and cat image sources.
func newSources(cfg config.Config, logger *slog.Logger) (dogs, cats ports.ImageSource) {
	httpClient := &http.Client{Timeout: cfg.FetchTimeout}
	dogs = metrics.InstrumentSource(domain.Dog, dogceo.NewClient(httpClient, cfg.DogAPIURL, logger))
	cats = metrics.InstrumentSource(domain.Cat, thecatapi.NewClient(httpClient, cfg.CatAPIURL, cfg.CatAPIKey, logger))
	return dogs, cats
}
