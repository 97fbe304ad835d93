package domain

import "time"

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Outcome is the face a coin lands on.
type Outcome string

const (
	Heads Outcome = "heads"
	Tails Outcome = "tails"
)

// DrawOutcome picks Heads or Tails with equal probability.
func DrawOutcome(rng RNG) Outcome {
	if rng.Intn(2) == 0 {
		return Heads
	}
	return Tails
}

// Category is the kind of pet image an outcome selects.
type Category string

const (
	Dog Category = "dog"
	Cat Category = "cat"
)

// Category maps Heads to dogs and Tails to cats.
func (o Outcome) Category() Category {
	if o == Heads {
		return Dog
	}
	return Cat
}

func (o Outcome) Label() string {
	if o == Heads {
		return "Heads (Dog)"
	}
	return "Tails (Cat)"
}

func (o Outcome) Greeting() string {
	if o == Heads {
		return "Woof! Woof!"
	}
	return "Meow! Meow!"
}

// PetImage is a fetched image reference and the outcome it was fetched for.
type PetImage struct {
	URL     string  `json:"url"`
	Outcome Outcome `json:"outcome"`
}

// Snapshot is the state a presentation layer renders.
// Image and Error are never both set.
type Snapshot struct {
	CycleID   string    `json:"cycle_id,omitempty"`
	Phase     Phase     `json:"phase"`
	Outcome   *Outcome  `json:"outcome,omitempty"`
	Image     *PetImage `json:"image,omitempty"`
	Error     string    `json:"error,omitempty"`
	Rotation  float64   `json:"rotation"`
	UpdatedAt time.Time `json:"updated_at"`
}
