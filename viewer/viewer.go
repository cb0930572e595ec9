// Package viewer draws the parking lot in a terminal and lets a person drive
// the car or watch a trained genome do it.
package viewer

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/baldhumanity/autopark/evo/brain"
	"github.com/baldhumanity/autopark/sim"
)

const (
	frameInterval = time.Second / sim.FramesPerSecond
	// Terminals report key presses only, so a pressed key stays active
	// for holdFrames frames.
	holdFrames = 8
)

var (
	styleBarrier  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	styleSpot     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleParked   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleCar      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleCrashed  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleSensor   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// Sounds is notified about episode events. Implementations must not block.
type Sounds interface {
	Parked()
	Collision()
}

// App is the viewer state. It is driven from a single goroutine.
type App struct {
	screen tcell.Screen
	world  *sim.World
	pilot  *brain.Brain // nil for manual driving
	sounds Sounds

	engine, wheels      int
	engineTTL, wheelTTL int
	buttons             tcell.ButtonMask

	lastCollisions int
	wasParked      bool
}

// New creates a viewer on an initialized screen. pilot and sounds may be nil.
func New(screen tcell.Screen, world *sim.World, pilot *brain.Brain, sounds Sounds) *App {
	screen.EnableMouse()
	return &App{
		screen: screen,
		world:  world,
		pilot:  pilot,
		sounds: sounds,
	}
}

// Run polls input and advances the simulation one step per frame until Esc is
// pressed or ctx is done.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go a.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Tick()
			a.Draw()
		}
	}
}

// HandleEvent applies one input event. It returns false when the viewer should exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.engine, a.engineTTL = 1, holdFrames
	case tcell.KeyDown:
		a.engine, a.engineTTL = -1, holdFrames
	case tcell.KeyLeft:
		a.wheels, a.wheelTTL = -1, holdFrames
	case tcell.KeyRight:
		a.wheels, a.wheelTTL = 1, holdFrames
	case tcell.KeyRune:
		switch ev.Rune() {
		case '0':
			a.Reset()
		case ' ':
			a.engine, a.engineTTL = 0, 0
		}
	}
	return true
}

// handleMouse acts on button presses only; drags and releases are ignored.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ a.buttons
	a.buttons = buttons

	col, row := ev.Position()
	x, y, ok := a.toArena(col, row)
	if !ok {
		return
	}

	switch {
	case pressed&tcell.ButtonPrimary != 0:
		if o, hit := a.world.ObstacleAt(x, y); hit {
			a.world.RemoveObstacle(o)
		} else {
			a.world.AddObstacle(sim.ObstacleAround(x, y))
		}
	case pressed&tcell.ButtonSecondary != 0:
		if o, hit := a.world.ObstacleAt(x, y); hit {
			a.world.RotateObstacle(o)
		}
	}
}

// Reset restarts the episode and keeps the placed obstacles.
func (a *App) Reset() {
	a.world.Reset()
	a.engine, a.wheels, a.engineTTL, a.wheelTTL = 0, 0, 0, 0
	a.lastCollisions, a.wasParked = 0, false
}

// Action is what the car does on the next tick.
func (a *App) Action() sim.Action {
	if a.pilot != nil {
		return a.pilot.Decide(a.world.Sensors())
	}
	return sim.Action{Engine: a.engine, Wheels: a.wheels}
}

// Tick advances the world by one step and fires sounds for new events.
func (a *App) Tick() {
	if a.world.Finished() {
		return
	}
	a.world.Step(a.Action())

	if a.engineTTL > 0 {
		if a.engineTTL--; a.engineTTL == 0 {
			a.engine = 0
		}
	}
	if a.wheelTTL > 0 {
		if a.wheelTTL--; a.wheelTTL == 0 {
			a.wheels = 0
		}
	}

	state := a.world.State()
	parked := a.world.Parked()
	if a.sounds != nil {
		if state.Collisions > a.lastCollisions {
			a.sounds.Collision()
		}
		if parked && !a.wasParked {
			a.sounds.Parked()
		}
	}
	a.lastCollisions = state.Collisions
	a.wasParked = parked
}

// arenaSize is the cell area used for the lot; the last row is the status line.
func (a *App) arenaSize() (int, int) {
	cols, rows := a.screen.Size()
	return cols, max(rows-1, 1)
}

// toArena maps a cell to the arena point at its center.
func (a *App) toArena(col, row int) (int, int, bool) {
	cols, rows := a.arenaSize()
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return 0, 0, false
	}
	x := (2*col + 1) * sim.Width / (2 * cols)
	y := (2*row + 1) * sim.Height / (2 * rows)
	return x, y, true
}

// toCell is the inverse of toArena.
func (a *App) toCell(x, y float64) (int, int) {
	cols, rows := a.arenaSize()
	col := int(math.Floor(x * float64(cols) / sim.Width))
	row := int(math.Floor(y * float64(rows) / sim.Height))
	return col, row
}

// Draw renders the current snapshot.
func (a *App) Draw() {
	snap := a.world.Snapshot()
	a.screen.Clear()

	spotStyle := styleSpot
	if snap.Parked {
		spotStyle = styleParked
	}
	a.fillRect(snap.ParkingSpot, '░', spotStyle)
	for _, b := range snap.Barriers {
		a.fillRect(b, '█', styleBarrier)
	}
	for _, o := range snap.Obstacles {
		a.fillRect(o, '▓', styleObstacle)
	}

	for i, d := range snap.Sensors {
		rad := (sim.SensorAngles[i] + snap.Rotation) * math.Pi / 180
		col, row := a.toCell(snap.X+d*math.Cos(rad), snap.Y+d*math.Sin(rad))
		a.screen.SetContent(col, row, '·', nil, styleSensor)
	}

	carStyle := styleCar
	if snap.Collisions > 0 {
		carStyle = styleCrashed
	}
	a.fillRect(snap.Body, '#', carStyle)
	col, row := a.toCell(snap.X, snap.Y)
	a.screen.SetContent(col, row, headingRune(snap.Rotation), nil, carStyle)

	a.drawStatus(snap)
	a.screen.Show()
}

func (a *App) fillRect(r sim.Rect, ch rune, style tcell.Style) {
	c0, r0 := a.toCell(float64(r.Left()), float64(r.Top()))
	c1, r1 := a.toCell(float64(r.Right()-1), float64(r.Bottom()-1))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			a.screen.SetContent(col, row, ch, nil, style)
		}
	}
}

func (a *App) drawStatus(snap sim.Snapshot) {
	cols, rows := a.screen.Size()
	mode := "manual"
	if a.pilot != nil {
		mode = "genome"
	}
	status := fmt.Sprintf(" %s | t=%.1fs steps=%d speed=%.2f rot=%.0f dist=%.1f collisions=%d fitness=%.1f",
		mode, snap.Elapsed.Seconds(), snap.Steps, snap.Speed, snap.Rotation, snap.DistanceToParking, snap.Collisions, snap.Fitness)
	switch {
	case snap.Parked:
		status += " | PARKED"
	case snap.Finished:
		status += " | press 0 to restart"
	}

	row := rows - 1
	col := 0
	for _, ch := range status {
		if col >= cols {
			break
		}
		a.screen.SetContent(col, row, ch, nil, styleStatus)
		col++
	}
	for ; col < cols; col++ {
		a.screen.SetContent(col, row, ' ', nil, styleStatus)
	}
}

// headingRune picks an arrow for the nearest of eight directions.
func headingRune(rotation float64) rune {
	arrows := [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	i := int(math.Round(rotation/45)) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}
