package main

import (
	"context"
	"io"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/abdimannabov/CoinFlip/internal/adapters/pets/probe"
	"github.com/abdimannabov/CoinFlip/internal/adapters/tui"
	"github.com/abdimannabov/CoinFlip/internal/app"
	"github.com/abdimannabov/CoinFlip/internal/config"
	"github.com/abdimannabov/CoinFlip/internal/metrics"
	"github.com/abdimannabov/CoinFlip/internal/ports"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Flip the coin in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return runPlay(cmd.Context(), cfg)
	},
}

func runPlay(parent context.Context, cfg config.Config) error {
	// The terminal belongs to the UI; logs only go to LOG_FILE.
	logger, closeLog, err := newLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	listener := tui.NewListener(16)
	dogs, cats := newSources(cfg, logger)
	seq := app.NewFlipSequencer(dogs, cats, stdRNG{},
		app.WithObserver(metrics.NewObserver(listener)),
		app.WithLogger(logger),
		app.WithContext(ctx),
	)

	var imageProbe ports.ImageProbe
	if cfg.ImageProbe {
		imageProbe = probe.NewHTTPProbe(&http.Client{Timeout: cfg.FetchTimeout}, logger)
	}

	p := tea.NewProgram(tui.NewModel(seq, listener, imageProbe), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()

	listener.Close()
	cancel()
	seq.Wait()
	return err
}
