package main

import "math"

// The movement law below is applied verbatim on both sides of the
// prediction contract: the tick engine uses it to advance tanks and the
// client mirror replays unconfirmed commands through it. Constants here
// must never fork between the two.
const (
	WorldWidth  = 2000.0
	WorldHeight = 2000.0
	TankRadius  = 20.0
	TankSpeed   = 3.0 // units per applied command
	TurnStep    = 0.1 // radians per applied command
)

// Command is one sequence-numbered client intent
type Command struct {
	Seq   uint32
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Shoot bool
}

// TankState is the minimal state the movement law operates on
type TankState struct {
	X        float64
	Y        float64
	Rotation float64
}

// Heading returns the unit vector for a rotation. Rotation 0 points up
// (negative Y), increasing clockwise.
func Heading(rotation float64) (float64, float64) {
	return math.Sin(rotation), -math.Cos(rotation)
}

// AdvanceTank applies one command to a tank state: rotation first, then
// the movement intent. The proposed position is clamped to world bounds
// and reverted if it lands in blocking terrain. Returns the new state
// and whether the move was rejected.
func AdvanceTank(s TankState, cmd Command, m *WorldMap) (TankState, bool) {
	if cmd.Left {
		s.Rotation -= TurnStep
	}
	if cmd.Right {
		s.Rotation += TurnStep
	}
	s.Rotation = NormalizeAngle(s.Rotation)

	dir := 0.0
	if cmd.Up && !cmd.Down {
		dir = 1.0
	} else if cmd.Down && !cmd.Up {
		dir = -1.0
	}
	if dir == 0 {
		return s, false
	}

	hx, hy := Heading(s.Rotation)
	nx := Clamp(s.X+hx*TankSpeed*dir, TankRadius, WorldWidth-TankRadius)
	ny := Clamp(s.Y+hy*TankSpeed*dir, TankRadius, WorldHeight-TankRadius)

	if m != nil && m.BlocksTankAt(nx, ny, TankRadius) {
		return s, true
	}
	s.X = nx
	s.Y = ny
	return s, false
}
