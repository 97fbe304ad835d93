package domain

// Phase is a step of a flip cycle.
type Phase string

const (
	PhaseIdle     Phase = "idle"     // nothing flipped yet
	PhaseFlipping Phase = "flipping" // coin spinning, outcome hidden
	PhaseRevealed Phase = "revealed" // outcome shown, image not requested yet
	PhaseLoading  Phase = "loading"  // image lookup in flight
	PhaseSettled  Phase = "settled"  // image shown
	PhaseFailed   Phase = "failed"   // image unavailable
)

func (p Phase) String() string {
	return string(p)
}

// Busy reports whether a cycle is still running in this phase.
func (p Phase) Busy() bool {
	switch p {
	case PhaseFlipping, PhaseRevealed, PhaseLoading:
		return true
	default:
		return false
	}
}

// Terminal reports whether p ends a cycle.
func (p Phase) Terminal() bool {
	return p == PhaseSettled || p == PhaseFailed
}

var validTransitions = map[Phase][]Phase{
	PhaseIdle:     {PhaseFlipping},
	PhaseFlipping: {PhaseRevealed, PhaseFailed},
	PhaseRevealed: {PhaseLoading, PhaseFailed},
	PhaseLoading:  {PhaseSettled, PhaseFailed},
	PhaseSettled:  {PhaseFlipping, PhaseFailed}, // Failed: image decode reported by the viewer
	PhaseFailed:   {PhaseFlipping},
}

// CanTransitionTo checks if moving from p to target is allowed.
func (p Phase) CanTransitionTo(target Phase) bool {
	for _, next := range validTransitions[p] {
		if next == target {
			return true
		}
	}
	return false
}
