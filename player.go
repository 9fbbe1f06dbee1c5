package main

import "math"

const (
	PlayerMaxHP  = 100
	RegenPerTick = 0.125 // HP per tick; empty to full in ~40s at 20Hz
)

var tankColors = []string{"#4caf50", "#2196f3", "#ff9800", "#e91e63", "#9c27b0", "#00bcd4"}

// Player represents one connected tank
type Player struct {
	ID       string
	X, Y     float64
	Rotation float64
	HP       float64
	Score    int
	Color    string

	// LastSeq is the highest input sequence fully applied. It advances
	// before the command's movement effect so snapshots never confirm
	// more than was simulated.
	LastSeq uint32

	// LastShotTick gates the fire cooldown
	LastShotTick uint64
	HasShot      bool

	// ForceCorrect marks the next snapshot as an authoritative
	// correction after a rejected move
	ForceCorrect bool

	queue CommandQueue
}

// NewPlayer creates a player at the given spawn position
func NewPlayer(id string, x, y float64, color string) *Player {
	return &Player{
		ID:    id,
		X:     x,
		Y:     y,
		HP:    PlayerMaxHP,
		Color: color,
	}
}

// State returns the movement-law view of the player
func (p *Player) State() TankState {
	return TankState{X: p.X, Y: p.Y, Rotation: p.Rotation}
}

// SetState writes a movement-law state back to the player
func (p *Player) SetState(s TankState) {
	p.X = s.X
	p.Y = s.Y
	p.Rotation = s.Rotation
}

// TakeDamage reduces HP and returns true if the player died
func (p *Player) TakeDamage(dmg float64) bool {
	p.HP -= dmg
	if p.HP <= 0 {
		p.HP = 0
		return true
	}
	return false
}

// Regenerate heals one tick worth of HP. Returns true when the rounded
// integer value changed, which is when a health-update is worth sending.
func (p *Player) Regenerate() bool {
	if p.HP <= 0 || p.HP >= PlayerMaxHP {
		return false
	}
	before := int(math.Round(p.HP))
	p.HP = math.Min(p.HP+RegenPerTick, PlayerMaxHP)
	return int(math.Round(p.HP)) != before
}

// HealthInt returns HP rounded for the wire
func (p *Player) HealthInt() int {
	return int(math.Round(p.HP))
}
