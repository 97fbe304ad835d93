// Package metrics exposes Prometheus counters for flip cycles and image
// lookups.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abdimannabov/CoinFlip/internal/domain"
	"github.com/abdimannabov/CoinFlip/internal/ports"
)

var (
	flipsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petflip_flips_total",
		Help: "Total number of revealed coin flips by outcome",
	}, []string{"outcome"})

	cyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petflip_cycles_total",
		Help: "Total number of finished flip cycles by terminal phase",
	}, []string{"phase"})

	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petflip_image_lookups_total",
		Help: "Total number of pet image lookups by category and result",
	}, []string{"category", "result"})

	decodeFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "petflip_image_decode_failures_total",
		Help: "Total number of settled images a viewer could not display, by category",
	}, []string{"category"})

	lookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "petflip_image_lookup_duration_seconds",
		Help:    "Latency of pet image lookups",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"category"})
)

// RecordLookup records one image lookup outcome.
func RecordLookup(category domain.Category, err error, elapsed time.Duration) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	lookupsTotal.WithLabelValues(normalizeCategory(category), result).Inc()
	lookupDuration.WithLabelValues(normalizeCategory(category)).Observe(elapsed.Seconds())
}

func normalizeCategory(c domain.Category) string {
	switch c {
	case domain.Dog, domain.Cat:
		return string(c)
	default:
		return "unknown"
	}
}

// instrumentedSource times every lookup of the wrapped source.
type instrumentedSource struct {
	category domain.Category
	next     ports.ImageSource
}

// InstrumentSource wraps src so each RandomImage call is counted and timed.
func InstrumentSource(category domain.Category, src ports.ImageSource) ports.ImageSource {
	return &instrumentedSource{category: category, next: src}
}

func (s *instrumentedSource) RandomImage(ctx context.Context) (string, error) {
	start := time.Now()
	url, err := s.next.RandomImage(ctx)
	RecordLookup(s.category, err, time.Since(start))
	return url, err
}

// Observer counts reveals and cycle endings, then forwards to next.
// Each cycle ends once; a settled cycle later failed by the viewer counts
// as a decode failure instead.
type Observer struct {
	next ports.Observer

	mu        sync.Mutex
	lastCycle string
	lastPhase domain.Phase
}

// NewObserver wraps next, which may be nil.
func NewObserver(next ports.Observer) *Observer {
	return &Observer{next: next}
}

func (o *Observer) Publish(s domain.Snapshot) {
	switch s.Phase {
	case domain.PhaseRevealed:
		if s.Outcome != nil {
			flipsTotal.WithLabelValues(string(*s.Outcome)).Inc()
		}
	case domain.PhaseSettled:
		cyclesTotal.WithLabelValues(string(s.Phase)).Inc()
	case domain.PhaseFailed:
		if o.settled(s.CycleID) {
			category := "unknown"
			if s.Outcome != nil {
				category = normalizeCategory(s.Outcome.Category())
			}
			decodeFailuresTotal.WithLabelValues(category).Inc()
		} else {
			cyclesTotal.WithLabelValues(string(s.Phase)).Inc()
		}
	}
	o.remember(s)

	if o.next != nil {
		o.next.Publish(s)
	}
}

func (o *Observer) settled(cycleID string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastCycle == cycleID && o.lastPhase == domain.PhaseSettled
}

func (o *Observer) remember(s domain.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastCycle = s.CycleID
	o.lastPhase = s.Phase
}
