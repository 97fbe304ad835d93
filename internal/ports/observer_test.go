package ports_test

import (
	"testing"

	"github.com/abdimannabov/CoinFlip/internal/domain"
	"github.com/abdimannabov/CoinFlip/internal/ports"
)

func TestObserverFunc(t *testing.T) {
	var got domain.Phase
	var obs ports.Observer = ports.ObserverFunc(func(s domain.Snapshot) { got = s.Phase })

	obs.Publish(domain.Snapshot{Phase: domain.PhaseLoading})
	if got != domain.PhaseLoading {
		t.Errorf("expected %s, got %s", domain.PhaseLoading, got)
	}
}
