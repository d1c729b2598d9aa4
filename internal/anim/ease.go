// Package anim provides the tick-driven tween scheduler that replaces
// engine-native animation players. One Scheduler advances every in-flight
// tween per simulation tick and fires completions at duration boundaries.
package anim

import "math"

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// EaseOutQuad provides smooth deceleration.
func EaseOutQuad(t float64) float64 {
	return t * (2 - t)
}

// EaseInOutSine accelerates then decelerates along a sine curve.
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Bounce maps progress onto a 0 -> 1 -> 0 arc. Used for pose offsets that
// must end where they started.
func Bounce(t float64) float64 {
	return math.Sin(math.Pi * t)
}
