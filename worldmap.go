package main

import (
	"math/rand"
)

// Map object types
const (
	ObjDestructibleWall = "destructibleWall"
	ObjSolidWall        = "solidWall"
	ObjWater            = "water"
	ObjTree             = "tree"
)

const (
	TileSize            = 40.0
	destructibleCount   = 48
	solidCount          = 24
	waterCount          = 16
	treeCount           = 28
	spawnSearchAttempts = 64
)

// MapObject is one terrain cell. Only destructible walls ever mutate,
// and only by flipping Destroyed forward.
type MapObject struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Destroyed bool    `json:"destroyed"`
}

// WorldMap holds the static terrain for one arena
type WorldMap struct {
	Objects []*MapObject
	byID    map[string]*MapObject
}

// NewWorldMap generates terrain from the given seed
func NewWorldMap(seed int64) *WorldMap {
	rng := rand.New(rand.NewSource(seed))
	m := &WorldMap{byID: make(map[string]*MapObject)}

	place := func(objType string, count int) {
		for i := 0; i < count; i++ {
			obj := &MapObject{
				ID:   GenerateID(3),
				Type: objType,
				X:    float64(rng.Intn(int(WorldWidth/TileSize))) * TileSize,
				Y:    float64(rng.Intn(int(WorldHeight/TileSize))) * TileSize,
				W:    TileSize,
				H:    TileSize,
			}
			m.Objects = append(m.Objects, obj)
			m.byID[obj.ID] = obj
		}
	}

	place(ObjDestructibleWall, destructibleCount)
	place(ObjSolidWall, solidCount)
	place(ObjWater, waterCount)
	place(ObjTree, treeCount)
	return m
}

// Get returns the object with the given id, or nil
func (m *WorldMap) Get(id string) *MapObject {
	return m.byID[id]
}

// Destroy flips a destructible wall to destroyed. Returns true only on
// the first hit; later calls are no-ops.
func (m *WorldMap) Destroy(id string) bool {
	obj := m.byID[id]
	if obj == nil || obj.Type != ObjDestructibleWall || obj.Destroyed {
		return false
	}
	obj.Destroyed = true
	return true
}

// BlocksTankAt reports whether any terrain blocks a tank circle at (x, y)
func (m *WorldMap) BlocksTankAt(x, y, radius float64) bool {
	for _, obj := range m.Objects {
		if BlocksMovement(obj) && CircleCollidesWithObject(x, y, radius, obj) {
			return true
		}
	}
	return false
}

// SpawnPosition picks a random position clear of blocking terrain.
// Falls back to the world center if no clear spot is found.
func (m *WorldMap) SpawnPosition(rng *rand.Rand, radius float64) (float64, float64) {
	for i := 0; i < spawnSearchAttempts; i++ {
		x := radius + rng.Float64()*(WorldWidth-2*radius)
		y := radius + rng.Float64()*(WorldHeight-2*radius)
		if !m.BlocksTankAt(x, y, radius) {
			return x, y
		}
	}
	return WorldWidth / 2, WorldHeight / 2
}
