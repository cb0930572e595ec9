package sim

import (
	"math"
)

// Reward shaping.
const (
	CollisionPenalty = -100.0
	ApproachFactor   = 10.0
	ParkedBonus      = 1000.0
	TimePenalty      = -0.1
)

// reward scores one step and adds it to the episode fitness. The approach term
// only pays for a new best distance; the best distance never grows back.
func (w *World) reward(obs Observation) float64 {
	reward := 0.0
	if obs.Collision {
		reward += CollisionPenalty
	}
	if d := obs.DistanceToParking; d < w.bestDistance {
		reward += (w.bestDistance - d) * ApproachFactor
		w.bestDistance = d
	}
	if w.Parked() {
		reward += ParkedBonus
	}
	reward += TimePenalty

	w.fitness += reward
	return reward
}

// Parked reports whether the car currently satisfies IsParked.
func (w *World) Parked() bool {
	return IsParked(w.body, w.state.Rotation)
}

// IsParked reports whether body lies fully inside the parking spot with a
// heading within HeadingTolerance of TargetHeading.
func IsParked(body Rect, rotation float64) bool {
	if !ParkingSpot.Intersects(body) || !ParkingSpot.Contains(body) {
		return false
	}
	current := math.Mod(rotation, 360)
	diff := math.Min(math.Abs(current-TargetHeading), math.Abs(current-(TargetHeading+360)))
	return diff <= HeadingTolerance
}
