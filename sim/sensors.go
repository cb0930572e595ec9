package sim

import (
	"math"
)

const (
	SensorCount = 8
	SensorRange = 150
)

// SensorAngles are relative to the car heading, in degrees.
var SensorAngles = [SensorCount]float64{0, 45, 90, 135, 180, 225, 270, 315}

// updateSensors casts all rays from the car position and refreshes the
// distances to the parking spot.
func (w *World) updateSensors() {
	start := Point{X: w.state.X, Y: w.state.Y}
	for i, angle := range SensorAngles {
		w.sensors[i] = math.Round(w.rayDistance(start, angle+w.state.Rotation))
	}
	w.updateParkingDistance()
}

// rayDistance walks a ray in unit steps and returns the index of the first
// sample inside a barrier or obstacle, or outside the arena.
func (w *World) rayDistance(start Point, angle float64) float64 {
	rad := angle * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	p := start
	for i := 0; i < SensorRange; i++ {
		p.X += dx
		p.Y += dy
		if w.blocked(p) {
			return float64(i)
		}
		if p.X < 0 || p.X > Width || p.Y < 0 || p.Y > Height {
			return float64(i)
		}
	}
	return SensorRange
}

func (w *World) blocked(p Point) bool {
	for _, b := range w.barriers {
		if b.ContainsPoint(p) {
			return true
		}
	}
	for _, o := range w.obstacles {
		if o.ContainsPoint(p) {
			return true
		}
	}
	return false
}

func (w *World) updateParkingDistance() {
	w.centerDistance = ParkingSpot.DistanceTo(w.body.Center())
	sum := 0.0
	for _, c := range w.body.Corners() {
		sum += ParkingSpot.DistanceTo(c)
	}
	w.avgDistance = sum / 4
}

// Sensors returns the latest ray distances.
func (w *World) Sensors() [SensorCount]float64 {
	return w.sensors
}
