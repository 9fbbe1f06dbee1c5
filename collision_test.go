package main

import "testing"

func TestCheckCollision(t *testing.T) {
	// Overlapping circles
	if !CheckCollision(0, 0, 10, 15, 0, 10) {
		t.Error("circles should collide (overlapping)")
	}

	// Touching circles
	if !CheckCollision(0, 0, 10, 20, 0, 10) {
		t.Error("circles should collide (touching)")
	}

	// Non-overlapping circles
	if CheckCollision(0, 0, 10, 25, 0, 10) {
		t.Error("circles should not collide")
	}
}

func TestPointInObjectHalfOpenBounds(t *testing.T) {
	obj := &MapObject{ID: "w1", Type: ObjSolidWall, X: 100, Y: 100, W: 40, H: 40}

	if !PointInObject(100, 100, obj) {
		t.Error("lower bound should be inclusive")
	}
	if !PointInObject(139.9, 139.9, obj) {
		t.Error("interior point should be contained")
	}
	if PointInObject(140, 120, obj) {
		t.Error("upper X bound should be exclusive")
	}
	if PointInObject(120, 140, obj) {
		t.Error("upper Y bound should be exclusive")
	}
	if PointInObject(99.9, 120, obj) {
		t.Error("point left of object should not be contained")
	}
}

func TestCircleCollidesWithObject(t *testing.T) {
	wall := &MapObject{ID: "w", Type: ObjSolidWall, X: 100, Y: 100, W: 40, H: 40}

	// Circle center inside
	if !CircleCollidesWithObject(120, 120, 5, wall) {
		t.Error("circle inside rect should collide")
	}
	// Circle touching edge from outside
	if !CircleCollidesWithObject(95, 120, 5, wall) {
		t.Error("circle touching left edge should collide")
	}
	// Circle near corner, within radius of closest point
	if !CircleCollidesWithObject(97, 97, 5, wall) {
		t.Error("circle near corner should collide")
	}
	// Circle clear of the rect
	if CircleCollidesWithObject(80, 80, 5, wall) {
		t.Error("distant circle should not collide")
	}
}

func TestTreeNeverCollides(t *testing.T) {
	tree := &MapObject{ID: "t", Type: ObjTree, X: 100, Y: 100, W: 40, H: 40}
	if CircleCollidesWithObject(120, 120, 50, tree) {
		t.Error("trees are visual only and must never collide")
	}
	if BlocksMovement(tree) {
		t.Error("trees must not block movement")
	}
	if StopsBullet(tree) {
		t.Error("trees must be transparent to bullets")
	}
}

func TestDestroyedWallIsTransparent(t *testing.T) {
	wall := &MapObject{ID: "d", Type: ObjDestructibleWall, X: 0, Y: 0, W: 40, H: 40}

	if !BlocksMovement(wall) || !StopsBullet(wall) {
		t.Error("intact destructible wall should block movement and bullets")
	}
	if !CircleCollidesWithObject(20, 20, 5, wall) {
		t.Error("intact destructible wall should collide")
	}

	wall.Destroyed = true
	if BlocksMovement(wall) || StopsBullet(wall) {
		t.Error("destroyed wall should stop blocking")
	}
	if CircleCollidesWithObject(20, 20, 5, wall) {
		t.Error("destroyed wall should not collide")
	}
}

func TestBlockingPolicy(t *testing.T) {
	water := &MapObject{Type: ObjWater}
	solid := &MapObject{Type: ObjSolidWall}

	if !BlocksMovement(water) {
		t.Error("water should block tank movement")
	}
	if StopsBullet(water) {
		t.Error("water should be transparent to bullets")
	}
	if !BlocksMovement(solid) || !StopsBullet(solid) {
		t.Error("solid walls should block both movement and bullets")
	}
}
