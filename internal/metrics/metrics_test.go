package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/abdimannabov/CoinFlip/internal/domain"
	"github.com/abdimannabov/CoinFlip/internal/ports"
)

type stubSource struct {
	url string
	err error
}

func (s stubSource) RandomImage(context.Context) (string, error) { return s.url, s.err }

func TestInstrumentSource(t *testing.T) {
	okBefore := testutil.ToFloat64(lookupsTotal.WithLabelValues("dog", "success"))
	failBefore := testutil.ToFloat64(lookupsTotal.WithLabelValues("cat", "failure"))

	dogs := InstrumentSource(domain.Dog, stubSource{url: "https://images.dog.ceo/a.jpg"})
	if url, err := dogs.RandomImage(context.Background()); err != nil || url != "https://images.dog.ceo/a.jpg" {
		t.Fatalf("unexpected result: %q, %v", url, err)
	}

	cats := InstrumentSource(domain.Cat, stubSource{err: errors.New("boom")})
	if _, err := cats.RandomImage(context.Background()); err == nil {
		t.Fatal("expected error to pass through")
	}

	if got := testutil.ToFloat64(lookupsTotal.WithLabelValues("dog", "success")) - okBefore; got != 1 {
		t.Errorf("dog success delta: expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(lookupsTotal.WithLabelValues("cat", "failure")) - failBefore; got != 1 {
		t.Errorf("cat failure delta: expected 1, got %v", got)
	}
}

func TestObserver(t *testing.T) {
	headsBefore := testutil.ToFloat64(flipsTotal.WithLabelValues("heads"))
	failedBefore := testutil.ToFloat64(cyclesTotal.WithLabelValues("failed"))

	var forwarded []domain.Phase
	obs := NewObserver(ports.ObserverFunc(func(s domain.Snapshot) {
		forwarded = append(forwarded, s.Phase)
	}))

	heads := domain.Heads
	obs.Publish(domain.Snapshot{Phase: domain.PhaseFlipping})
	obs.Publish(domain.Snapshot{Phase: domain.PhaseRevealed, Outcome: &heads})
	obs.Publish(domain.Snapshot{Phase: domain.PhaseLoading, Outcome: &heads})
	obs.Publish(domain.Snapshot{Phase: domain.PhaseFailed, Outcome: &heads, Error: "x"})

	if got := testutil.ToFloat64(flipsTotal.WithLabelValues("heads")) - headsBefore; got != 1 {
		t.Errorf("heads delta: expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(cyclesTotal.WithLabelValues("failed")) - failedBefore; got != 1 {
		t.Errorf("failed delta: expected 1, got %v", got)
	}
	if len(forwarded) != 4 {
		t.Errorf("expected 4 forwarded snapshots, got %d", len(forwarded))
	}

	// A nil next observer is allowed.
	NewObserver(nil).Publish(domain.Snapshot{Phase: domain.PhaseSettled})
}

func TestPromhttpExposure(t *testing.T) {
	RecordLookup(domain.Dog, nil, 0)

	rec := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(rec.Body.String(), "petflip_image_lookups_total") {
		t.Errorf("expected lookup counter in exposition")
	}
}

func TestObserver_DecodeFailureCountsCycleOnce(t *testing.T) {
	settledBefore := testutil.ToFloat64(cyclesTotal.WithLabelValues("settled"))
	failedBefore := testutil.ToFloat64(cyclesTotal.WithLabelValues("failed"))
	decodeBefore := testutil.ToFloat64(decodeFailuresTotal.WithLabelValues("cat"))

	tails := domain.Tails
	obs := NewObserver(nil)
	obs.Publish(domain.Snapshot{CycleID: "c1", Phase: domain.PhaseLoading, Outcome: &tails})
	obs.Publish(domain.Snapshot{
		CycleID: "c1",
		Phase:   domain.PhaseSettled,
		Outcome: &tails,
		Image:   &domain.PetImage{URL: "https://cdn2.thecatapi.com/x.jpg", Outcome: tails},
	})
	obs.Publish(domain.Snapshot{CycleID: "c1", Phase: domain.PhaseFailed, Outcome: &tails, Error: "x"})

	if got := testutil.ToFloat64(cyclesTotal.WithLabelValues("settled")) - settledBefore; got != 1 {
		t.Errorf("settled delta: expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(cyclesTotal.WithLabelValues("failed")) - failedBefore; got != 0 {
		t.Errorf("failed delta: expected 0, got %v", got)
	}
	if got := testutil.ToFloat64(decodeFailuresTotal.WithLabelValues("cat")) - decodeBefore; got != 1 {
		t.Errorf("decode failure delta: expected 1, got %v", got)
	}

	// A failure of the next cycle is a new cycle ending.
	obs.Publish(domain.Snapshot{CycleID: "c2", Phase: domain.PhaseFailed, Outcome: &tails, Error: "x"})
	if got := testutil.ToFloat64(cyclesTotal.WithLabelValues("failed")) - failedBefore; got != 1 {
		t.Errorf("failed delta after c2: expected 1, got %v", got)
	}
}
