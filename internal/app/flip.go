package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/abdimannabov/CoinFlip/internal/domain"
	"github.com/abdimannabov/CoinFlip/internal/ports"
)

// FlipSequencer runs coin flip cycles: spin, reveal, pause, then one image
// lookup for the drawn outcome. Only one cycle is live at a time.
type FlipSequencer struct {
	dogs     ports.ImageSource
	cats     ports.ImageSource
	rng      domain.RNG
	clock    clockwork.Clock
	observer ports.Observer
	logger   *slog.Logger
	ctx      context.Context
	newID    func() string

	mu    sync.Mutex
	state domain.Snapshot
	wg    sync.WaitGroup
}

// Option configures a FlipSequencer.
type Option func(*FlipSequencer)

// WithClock replaces the real clock, mostly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(s *FlipSequencer) { s.clock = c }
}

// WithObserver sets the single subscriber notified on every transition.
func WithObserver(o ports.Observer) Option {
	return func(s *FlipSequencer) { s.observer = o }
}

// WithLogger sets the logger; slog.Default() otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(s *FlipSequencer) { s.logger = l }
}

// WithContext bounds running cycles by ctx. Cancelling it aborts a cycle
// into the failed phase, and no new cycle starts afterwards.
func WithContext(ctx context.Context) Option {
	return func(s *FlipSequencer) { s.ctx = ctx }
}

// NewFlipSequencer builds an idle sequencer fetching dogs on heads and cats
// on tails.
func NewFlipSequencer(dogs, cats ports.ImageSource, rng domain.RNG, opts ...Option) *FlipSequencer {
	s := &FlipSequencer{
		dogs:     dogs,
		cats:     cats,
		rng:      rng,
		clock:    clockwork.NewRealClock(),
		observer: ports.ObserverFunc(func(domain.Snapshot) {}),
		logger:   slog.Default(),
		ctx:      context.Background(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = domain.Snapshot{Phase: domain.PhaseIdle, UpdatedAt: s.clock.Now()}
	return s
}

// StartFlip begins a new cycle and reports whether it did. While a cycle is
// running, or once the sequencer's context is done, it does nothing and
// returns false.
func (s *FlipSequencer) StartFlip() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase.Busy() || s.ctx.Err() != nil {
		return false
	}

	outcome := domain.DrawOutcome(s.rng)
	cycle := s.newID()

	s.state.CycleID = cycle
	s.state.Outcome = nil
	s.state.Image = nil
	s.state.Error = ""
	s.state.Rotation = domain.NextRotation(s.state.Rotation, outcome)
	s.enterLocked(domain.PhaseFlipping)

	s.logger.Debug("flip started", "cycle_id", cycle, "rotation", s.state.Rotation)

	s.wg.Add(1)
	go s.run(cycle, outcome)
	return true
}

// ReportImageError marks a settled cycle as failed because its image could
// not be displayed. It returns false if cycleID is not the settled cycle.
func (s *FlipSequencer) ReportImageError(cycleID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CycleID != cycleID || s.state.Phase != domain.PhaseSettled {
		return false
	}

	category := s.state.Image.Outcome.Category()
	s.state.Image = nil
	s.state.Error = domain.NewImageUnavailable(category, domain.ReasonDecode, nil).Message()
	s.enterLocked(domain.PhaseFailed)

	s.logger.Warn("image could not be displayed", "cycle_id", cycleID, "category", category)
	return true
}

// Snapshot returns a copy of the current state.
func (s *FlipSequencer) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Wait blocks until the running cycle, if any, has finished. Call it only
// after the sequencer's context is cancelled or when no StartFlip can run
// concurrently.
func (s *FlipSequencer) Wait() {
	s.wg.Wait()
}

func (s *FlipSequencer) run(cycle string, outcome domain.Outcome) {
	defer s.wg.Done()

	if err := s.sleep(domain.SpinDuration); err != nil {
		s.abort(cycle, err)
		return
	}

	s.mu.Lock()
	revealed := outcome
	s.state.Outcome = &revealed
	s.enterLocked(domain.PhaseRevealed)
	s.mu.Unlock()

	if err := s.sleep(domain.RevealPause); err != nil {
		s.abort(cycle, err)
		return
	}

	s.mu.Lock()
	s.enterLocked(domain.PhaseLoading)
	s.mu.Unlock()

	start := s.clock.Now()
	url, err := s.source(outcome).RandomImage(s.ctx)
	if err == nil && url == "" {
		err = errors.New("empty image url")
	}
	if err != nil {
		s.fail(cycle, outcome, err)
		return
	}

	s.mu.Lock()
	s.state.Image = &domain.PetImage{URL: url, Outcome: outcome}
	s.state.Error = ""
	s.enterLocked(domain.PhaseSettled)
	s.mu.Unlock()

	s.logger.Info("flip settled",
		"cycle_id", cycle,
		"outcome", outcome,
		"latency_ms", s.clock.Since(start).Milliseconds(),
	)
}

func (s *FlipSequencer) source(o domain.Outcome) ports.ImageSource {
	if o.Category() == domain.Dog {
		return s.dogs
	}
	return s.cats
}

func (s *FlipSequencer) sleep(d time.Duration) error {
	select {
	case <-s.clock.After(d):
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	}
}

func (s *FlipSequencer) fail(cycle string, outcome domain.Outcome, err error) {
	var unavailable *domain.ImageUnavailableError
	if !errors.As(err, &unavailable) {
		unavailable = domain.NewImageUnavailable(outcome.Category(), domain.ReasonFetch, err)
	}

	s.logger.Warn("image lookup failed",
		"cycle_id", cycle,
		"category", outcome.Category(),
		"error", err,
	)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Image = nil
	s.state.Error = unavailable.Message()
	s.enterLocked(domain.PhaseFailed)
}

// abort ends a cycle interrupted before its lookup. The message names no
// category, so an unrevealed outcome stays hidden.
func (s *FlipSequencer) abort(cycle string, err error) {
	s.logger.Warn("flip interrupted", "cycle_id", cycle, "error", err)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Image = nil
	s.state.Error = domain.MsgFlipInterrupted
	s.enterLocked(domain.PhaseFailed)
}

// enterLocked moves to p and notifies the observer. s.mu must be held.
func (s *FlipSequencer) enterLocked(p domain.Phase) {
	if !s.state.Phase.CanTransitionTo(p) {
		s.logger.Error("invalid phase transition", "from", s.state.Phase, "to", p)
		return
	}
	s.state.Phase = p
	s.state.UpdatedAt = s.clock.Now()
	s.observer.Publish(s.snapshotLocked())
}

func (s *FlipSequencer) snapshotLocked() domain.Snapshot {
	snap := s.state
	if s.state.Outcome != nil {
		o := *s.state.Outcome
		snap.Outcome = &o
	}
	if s.state.Image != nil {
		img := *s.state.Image
		snap.Image = &img
	}
	return snap
}
