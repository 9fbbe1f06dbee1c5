package main

import "fmt"

const (
	BulletSpeed  = 10.0 // units per tick
	BulletDamage = 20.0
)

// Bullet is an ephemeral projectile
type Bullet struct {
	ID      string
	OwnerID string
	X, Y    float64
	DX, DY  float64 // unit direction
}

// NewBullet spawns a bullet at the owner's position along its heading
func NewBullet(owner *Player, counter uint64) *Bullet {
	dx, dy := Heading(owner.Rotation)
	return &Bullet{
		ID:      fmt.Sprintf("%s-%d", owner.ID, counter),
		OwnerID: owner.ID,
		X:       owner.X,
		Y:       owner.Y,
		DX:      dx,
		DY:      dy,
	}
}

// Advance moves the bullet one tick
func (b *Bullet) Advance() {
	b.X += b.DX * BulletSpeed
	b.Y += b.DY * BulletSpeed
}

// OutOfBounds reports whether the bullet has left the world
func (b *Bullet) OutOfBounds() bool {
	return b.X < 0 || b.X >= WorldWidth || b.Y < 0 || b.Y >= WorldHeight
}
