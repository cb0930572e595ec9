package sim

import (
	"time"
)

// Snapshot is everything a renderer needs to draw one frame.
type Snapshot struct {
	X, Y              float64
	Rotation          float64
	Speed             float64
	Collisions        int
	Steps             int
	Elapsed           time.Duration // Steps at FramesPerSecond
	Sensors           [SensorCount]float64
	DistanceToParking float64
	Body              Rect
	Obstacles         []Rect
	Barriers          []Rect
	ParkingSpot       Rect
	Parked            bool
	Finished          bool
	Fitness           float64
}

// Snapshot captures the current state for rendering. The slices are copies.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		X:                 w.state.X,
		Y:                 w.state.Y,
		Rotation:          w.state.Rotation,
		Speed:             w.state.Speed,
		Collisions:        w.state.Collisions,
		Steps:             w.state.Steps,
		Elapsed:           time.Duration(w.state.Steps) * time.Second / FramesPerSecond,
		Sensors:           w.sensors,
		DistanceToParking: w.avgDistance,
		Body:              w.body,
		Obstacles:         w.Obstacles(),
		Barriers:          w.Barriers(),
		ParkingSpot:       ParkingSpot,
		Parked:            w.Parked(),
		Finished:          w.finished,
		Fitness:           w.fitness,
	}
}
