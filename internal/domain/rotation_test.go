package domain_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/abdimannabov/CoinFlip/internal/domain"
)

func TestNextRotation_FromZero(t *testing.T) {
	if got := domain.NextRotation(0, domain.Heads); got != 1800 {
		t.Errorf("heads from 0: expected 1800, got %v", got)
	}
	if got := domain.NextRotation(0, domain.Tails); got != 1980 {
		t.Errorf("tails from 0: expected 1980, got %v", got)
	}
}

func TestNextRotation_Sequence(t *testing.T) {
	steps := []struct {
		outcome domain.Outcome
		want    float64
	}{
		{domain.Tails, 1980},
		{domain.Heads, 3960},
		{domain.Heads, 5760},
		{domain.Tails, 7740},
		{domain.Tails, 9540},
	}

	angle := 0.0
	for i, s := range steps {
		angle = domain.NextRotation(angle, s.outcome)
		if angle != s.want {
			t.Fatalf("step %d (%s): expected %v, got %v", i, s.outcome, s.want, angle)
		}
		if domain.FaceAt(angle) != s.outcome {
			t.Errorf("step %d: angle %v shows %s, drew %s", i, angle, domain.FaceAt(angle), s.outcome)
		}
	}
}

func outcomeGen() gopter.Gen {
	return gen.Bool().Map(func(heads bool) domain.Outcome {
		if heads {
			return domain.Heads
		}
		return domain.Tails
	})
}

func TestNextRotation_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("lands on the drawn face", prop.ForAll(
		func(prev float64, o domain.Outcome) bool {
			next := domain.NextRotation(prev, o)
			want := 0.0
			if o == domain.Tails {
				want = 180
			}
			return math.Mod(next, 360) == want && domain.FaceAt(next) == o
		},
		gen.Float64Range(0, 1e9),
		outcomeGen(),
	))

	properties.Property("spins at least five turns forward and no further than needed", prop.ForAll(
		func(prev float64, o domain.Outcome) bool {
			next := domain.NextRotation(prev, o)
			floor := prev + domain.SpinRevolutions*360
			return next >= floor && next-360 < floor
		},
		gen.Float64Range(0, 1e9),
		outcomeGen(),
	))

	properties.Property("strictly increases across cycles", prop.ForAll(
		func(outcomes []domain.Outcome) bool {
			angle := 0.0
			for _, o := range outcomes {
				next := domain.NextRotation(angle, o)
				if next <= angle {
					return false
				}
				angle = next
			}
			return true
		},
		gen.SliceOf(outcomeGen()),
	))

	properties.TestingRun(t)
}

func TestFaceAt(t *testing.T) {
	cases := map[float64]domain.Outcome{
		0:    domain.Heads,
		180:  domain.Tails,
		360:  domain.Heads,
		540:  domain.Tails,
		1845: domain.Heads,
		-180: domain.Tails,
	}
	for angle, want := range cases {
		if got := domain.FaceAt(angle); got != want {
			t.Errorf("FaceAt(%v): expected %s, got %s", angle, want, got)
		}
	}
}
