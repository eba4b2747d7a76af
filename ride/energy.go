package ride

import "math"

// SpeedModel is the physics contract for moving a rider along the track.
// Speeds are in curve parameter units per tick.
type SpeedModel interface {
	// Speed returns the rider's speed at a given height, relative to the
	// highest and the lowest point of the track. If the energy available at
	// this height is not positive, ok is false and the caller has to decide
	// what to do; the ride reverses its direction and keeps its speed.
	Speed(height, maxHeight, minHeight float64) (speed float64, ok bool)
}

// PotentialEnergy derives speed from the height below the highest point of
// the track, following v = √(2gΔh) up to scaling:
//
//	speed = √(Gravity · (maxHeight + Slack - height)) / Scale
//
// Heights below minHeight count as minHeight. Slack keeps the speed above 0
// at the apex itself.
type PotentialEnergy struct {
	Gravity float64 // gravity-like constant
	Scale   float64 // tuning divisor, maps world speed to curve parameter speed
	Slack   float64 // energy headroom above the highest point
}

// Default tuning of the classic ride, calibrated for a track of radius ≈11.
const (
	DefaultGravity = 10.0
	DefaultScale   = 1500.0
	DefaultSlack   = 0.2
)

// DefaultEnergy returns the speed model with the default tuning.
func DefaultEnergy() PotentialEnergy {
	return PotentialEnergy{Gravity: DefaultGravity, Scale: DefaultScale, Slack: DefaultSlack}
}

// Speed implements SpeedModel.
func (pe PotentialEnergy) Speed(height, maxHeight, minHeight float64) (float64, bool) {
	if height <= minHeight {
		height = minHeight
	}
	delta := maxHeight + pe.Slack - height
	if !(delta > 0) { // catches NaN as well
		return 0, false
	}
	speed := math.Sqrt(pe.Gravity*delta) / pe.Scale
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 0, false
	}
	return speed, true
}
