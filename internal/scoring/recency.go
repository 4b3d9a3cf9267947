package scoring

import (
	"math"
	"time"
)

// HalfLife is the default recency half-life: the weight of an anchor halves
// every 12 hours.
const HalfLife = 12 * time.Hour

// Clamp01 clamps into [0,1]; non-finite inputs coerce to 0 before
// composition.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// RecencyWeight is the exponential half-life decay w(Δ) = 0.5^(Δ/halfLife)
// of an anchor instant evaluated at now: 1.0 at Δ=0, 0.5 after one half-
// life, approaching 0 and never negative. Anchors in the future count as
// Δ=0. A non-positive halfLife falls back to the default.
func RecencyWeight(anchor, now time.Time, halfLife time.Duration) float64 {
	if halfLife <= 0 {
		halfLife = HalfLife
	}
	dt := now.Sub(anchor)
	if dt < 0 {
		dt = 0
	}
	return Clamp01(math.Pow(0.5, dt.Hours()/halfLife.Hours()))
}
