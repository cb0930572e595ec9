// Package sim is the parking lot simulation: car kinematics, collisions,
// ray sensors and the per-step reward.
package sim

import (
	"math"
	"slices"
)

// Arena and car constants.
const (
	Width            = 800
	Height           = 600
	BarrierThickness = 4

	// Car body at heading 0: long side along the x axis.
	BodyLength = 44
	BodyWidth  = 30

	MaxSpeed         = 2.5
	MaxSpeedBackward = MaxSpeed / 2
	Acceleration     = 0.025
	Deceleration     = 0.025
	MinTurnSpeed     = 0.1

	MaxEpisodeSteps = 1000
	FramesPerSecond = 60
)

// ParkingSpot is the goal rectangle. The car must face TargetHeading within
// HeadingTolerance degrees.
var ParkingSpot = Rect{X: 600, Y: 200, W: 66, H: 44}

const (
	TargetHeading    = 0.0
	HeadingTolerance = 10.0
)

var initialState = CarState{X: 100, Y: 300}

// CarState is the mutable kinematic state of the car.
type CarState struct {
	X, Y       float64
	Rotation   float64 // degrees in [0, 360)
	Speed      float64 // negative when reversing
	Collisions int
	Steps      int
}

// Action is one control decision. Engine: +1 accelerate, -1 brake/reverse,
// 0 coast. Wheels: degrees added to the heading, normally -1, 0 or +1.
type Action struct {
	Engine int `json:"engine"`
	Wheels int `json:"wheels"`
}

// Observation is what a controller sees after a step.
type Observation struct {
	Sensors           [SensorCount]float64
	DistanceToParking float64 // mean corner distance to the parking spot
	Collision         bool
	X, Y              float64
	Rotation          float64
	Speed             float64
}

// StepResult is returned by Step.
type StepResult struct {
	Observation Observation
	Reward      float64
	Done        bool
}

// World owns one episode of the simulation. It is not safe for concurrent use;
// give every rollout its own World.
type World struct {
	state     CarState
	body      Rect // bounding box of the last pose tested for collisions
	barriers  [4]Rect
	obstacles []Rect

	sensors        [SensorCount]float64
	centerDistance float64
	avgDistance    float64
	bestDistance   float64
	fitness        float64
	finished       bool
}

// New creates a world with the car at its initial pose.
func New() *World {
	w := &World{barriers: createBarriers()}
	w.Reset()
	return w
}

func createBarriers() [4]Rect {
	return [4]Rect{
		{X: 0, Y: 0, W: Width, H: BarrierThickness},                         // top
		{X: 0, Y: 0, W: BarrierThickness, H: Height},                        // left
		{X: 0, Y: Height - BarrierThickness, W: Width, H: BarrierThickness}, // bottom
		{X: Width - BarrierThickness, Y: 0, W: BarrierThickness, H: Height}, // right
	}
}

// Reset restores the initial pose and clears the episode. Obstacles are kept.
func (w *World) Reset() Observation {
	w.state = initialState
	w.finished = false
	w.fitness = 0
	w.body = carBody(w.state.X, w.state.Y, w.state.Rotation)
	w.updateSensors()
	w.bestDistance = w.avgDistance
	return w.Observation()
}

// SetPose moves the car without simulating and refreshes sensors and distances.
// Counters and the episode state are left alone.
func (w *World) SetPose(x, y, rotation float64) {
	w.state.X, w.state.Y = x, y
	w.state.Rotation = wrapDegrees(rotation)
	w.body = carBody(x, y, w.state.Rotation)
	w.updateSensors()
}

// Step advances the simulation by one tick. Once the episode has finished it
// returns the current observation, zero reward and done until Reset is called.
func (w *World) Step(action Action) StepResult {
	if w.finished {
		return StepResult{Observation: w.Observation(), Reward: 0, Done: true}
	}

	w.applyAction(action)
	w.state.Steps++
	w.updateSensors()

	obs := w.Observation()
	reward := w.reward(obs)
	done := w.checkEpisodeEnd(obs)
	return StepResult{Observation: obs, Reward: reward, Done: done}
}

func (w *World) applyAction(action Action) {
	switch action.Engine {
	case 1:
		w.state.Speed = math.Min(w.state.Speed+Acceleration, MaxSpeed)
	case -1:
		w.state.Speed = math.Max(w.state.Speed-Deceleration, -MaxSpeedBackward)
	}

	if math.Abs(w.state.Speed) >= MinTurnSpeed {
		w.state.Rotation = wrapDegrees(w.state.Rotation + float64(action.Wheels))
	}

	w.updatePosition()
}

func (w *World) updatePosition() {
	rad := w.state.Rotation * math.Pi / 180
	newX := w.state.X + w.state.Speed*math.Cos(rad)
	newY := w.state.Y + w.state.Speed*math.Sin(rad)

	w.body = carBody(newX, newY, w.state.Rotation)
	if !w.checkCollisions() && w.state.Speed != 0 {
		w.state.X, w.state.Y = newX, newY
	}
}

// checkCollisions tests the current body against barriers, obstacles and the
// arena edges. A hit stops the car and counts one collision.
func (w *World) checkCollisions() bool {
	hit := false
	for _, b := range w.barriers {
		if w.body.Intersects(b) {
			hit = true
			break
		}
	}
	if !hit {
		for _, o := range w.obstacles {
			if w.body.Intersects(o) {
				hit = true
				break
			}
		}
	}
	if w.body.Left() < 0 || w.body.Right() > Width || w.body.Top() < 0 || w.body.Bottom() > Height {
		hit = true
	}
	if hit {
		w.state.Speed = 0
		w.state.Collisions++
	}
	return hit
}

func (w *World) checkEpisodeEnd(obs Observation) bool {
	if obs.Collision || w.state.Steps >= MaxEpisodeSteps || w.Parked() {
		w.finished = true
	}
	return w.finished
}

// carBody is the axis-aligned box of the rotated car centered on the truncated position.
func carBody(x, y, rotation float64) Rect {
	bw, bh := RotatedSize(BodyLength, BodyWidth, -rotation)
	return RectAround(int(x), int(y), bw, bh)
}

func wrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Observation returns the current observation without stepping.
func (w *World) Observation() Observation {
	return Observation{
		Sensors:           w.sensors,
		DistanceToParking: w.avgDistance,
		Collision:         w.state.Collisions > 0,
		X:                 w.state.X,
		Y:                 w.state.Y,
		Rotation:          w.state.Rotation,
		Speed:             w.state.Speed,
	}
}

// State returns a copy of the car state.
func (w *World) State() CarState { return w.state }

// Body is the car's bounding box at the last pose tested for collisions.
func (w *World) Body() Rect { return w.body }

func (w *World) Barriers() []Rect { return slices.Clone(w.barriers[:]) }

// Fitness is the reward accumulated since the last Reset.
func (w *World) Fitness() float64 { return w.fitness }

func (w *World) Finished() bool { return w.finished }

// CenterDistance is the distance from the body center to the parking spot.
func (w *World) CenterDistance() float64 { return w.centerDistance }

// AverageDistance is the mean distance of the four body corners to the parking spot.
func (w *World) AverageDistance() float64 { return w.avgDistance }

// AddObstacle registers a rectangle the car must avoid.
func (w *World) AddObstacle(r Rect) {
	w.obstacles = append(w.obstacles, r)
}

// RemoveObstacle removes the first obstacle equal to r.
func (w *World) RemoveObstacle(r Rect) bool {
	i := slices.Index(w.obstacles, r)
	if i < 0 {
		return false
	}
	w.obstacles = slices.Delete(w.obstacles, i, i+1)
	return true
}

// RotateObstacle swaps the width and height of the first obstacle equal to r,
// keeping its top-left corner. The rotated obstacle moves to the end of the list.
func (w *World) RotateObstacle(r Rect) (Rect, bool) {
	if !w.RemoveObstacle(r) {
		return Rect{}, false
	}
	rotated := Rect{X: r.X, Y: r.Y, W: r.H, H: r.W}
	w.AddObstacle(rotated)
	return rotated, true
}

// ObstacleAt returns the first obstacle covering the given cell.
func (w *World) ObstacleAt(x, y int) (Rect, bool) {
	for _, o := range w.obstacles {
		if o.Hit(x, y) {
			return o, true
		}
	}
	return Rect{}, false
}

// Obstacles returns a copy of the registered obstacles.
func (w *World) Obstacles() []Rect {
	return slices.Clone(w.obstacles)
}

// ObstacleAround returns a car-sized obstacle centered on (x, y), standing upright.
func ObstacleAround(x, y int) Rect {
	return RectAround(x, y, BodyWidth, BodyLength)
}
