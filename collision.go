package main

// CheckCollision checks if two circles overlap
func CheckCollision(x1, y1, r1, x2, y2, r2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	dist2 := dx*dx + dy*dy
	radSum := r1 + r2
	return dist2 <= radSum*radSum
}

// PointInObject checks axis-aligned containment with half-open bounds
// [x, x+w) × [y, y+h)
func PointInObject(x, y float64, obj *MapObject) bool {
	return x >= obj.X && x < obj.X+obj.W && y >= obj.Y && y < obj.Y+obj.H
}

// CircleCollidesWithObject runs a closest-point-on-rectangle distance
// test. Trees never collide, nor do destroyed destructible walls.
func CircleCollidesWithObject(cx, cy, r float64, obj *MapObject) bool {
	if obj.Type == ObjTree {
		return false
	}
	if obj.Type == ObjDestructibleWall && obj.Destroyed {
		return false
	}
	nearX := Clamp(cx, obj.X, obj.X+obj.W)
	nearY := Clamp(cy, obj.Y, obj.Y+obj.H)
	dx := cx - nearX
	dy := cy - nearY
	return dx*dx+dy*dy <= r*r
}

// BlocksMovement reports whether an object blocks tank movement.
// Water, solid walls and intact destructible walls block; trees never do.
func BlocksMovement(obj *MapObject) bool {
	switch obj.Type {
	case ObjWater, ObjSolidWall:
		return true
	case ObjDestructibleWall:
		return !obj.Destroyed
	}
	return false
}

// StopsBullet reports whether an object absorbs a bullet. Water and
// trees are transparent; destroyed walls are transparent too.
func StopsBullet(obj *MapObject) bool {
	switch obj.Type {
	case ObjSolidWall:
		return true
	case ObjDestructibleWall:
		return !obj.Destroyed
	}
	return false
}
