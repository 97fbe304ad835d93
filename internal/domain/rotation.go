package domain

import (
	"math"
	"time"
)

const (
	// SpinRevolutions is the number of full turns every flip adds.
	SpinRevolutions = 5
	// SpinDuration is how long the coin spins before the outcome is shown.
	SpinDuration = 1500 * time.Millisecond
	// RevealPause separates the reveal from the image lookup.
	RevealPause = 300 * time.Millisecond
)

// NextRotation returns the angle, in degrees, the coin spins to from prev.
// The result is the smallest angle >= prev + SpinRevolutions*360 that shows
// the outcome's face: a multiple of 360 for Heads, 180 mod 360 for Tails.
func NextRotation(prev float64, o Outcome) float64 {
	base := prev + SpinRevolutions*360
	offset := 0.0
	if o == Tails {
		offset = 180
	}
	next := math.Ceil((base-offset)/360)*360 + offset
	// The division can round down across a turn boundary for huge angles.
	if next < base {
		next += 360
	}
	return next
}

// FaceAt reports which face a coin rotated by angle degrees shows.
// Angles inside the edge-on quarter turns count toward the nearer face.
func FaceAt(angle float64) Outcome {
	a := math.Mod(angle, 360)
	if a < 0 {
		a += 360
	}
	if a < 90 || a >= 270 {
		return Heads
	}
	return Tails
}
