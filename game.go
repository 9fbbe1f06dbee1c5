package main

import (
	"math/rand"
	"sync"
	"time"
)

const (
	TickRate     = 20 // authoritative simulation ticks per second
	TickDuration = time.Second / TickRate

	FireCooldownTicks = TickRate / 2 // 500ms between shots
	KillBonus         = 10

	maxPlayersPerArena = 16
	maxBulletsPerArena = 256
)

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// ScoreStore persists score changes. Save must never block the tick
// loop; failures stay inside the store.
type ScoreStore interface {
	Save(playerID string, score int)
}

// Game owns the authoritative state of one arena. All entity mutation
// happens inside the tick loop under the write lock; everything external
// only enqueues.
type Game struct {
	mu      sync.RWMutex
	world   *WorldMap
	players map[string]*Player
	bullets map[string]*Bullet

	// Insertion-ordered id lists keep per-tick iteration stable so
	// simultaneous-collision tie-breaks are deterministic within a tick.
	playerOrder []string
	bulletOrder []string

	clients map[string]Broadcaster
	events  *EventQueue
	scores  ScoreStore
	rng     *rand.Rand

	// departed ids stay in clients until the tick's events flush, so a
	// killed player still receives its own player-leave and the final
	// snapshot before the link drops.
	departed []string

	tick          uint64
	bulletCounter uint64
	nextColor     int
	running       bool
	stop          chan struct{}
}

// NewGame creates a new arena with generated terrain
func NewGame(scores ScoreStore) *Game {
	seed := time.Now().UnixNano()
	return &Game{
		world:   NewWorldMap(seed),
		players: make(map[string]*Player),
		bullets: make(map[string]*Bullet),
		clients: make(map[string]Broadcaster),
		events:  &EventQueue{},
		scores:  scores,
		rng:     rand.New(rand.NewSource(seed + 1)),
		stop:    make(chan struct{}),
	}
}

// Run starts the fixed-rate simulation loop
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.Update()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the simulation loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

// World returns the arena's terrain
func (g *Game) World() *WorldMap {
	return g.world
}

// MapObjects returns a copy of the terrain state for the join handshake
func (g *Game) MapObjects() []MapObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]MapObject, 0, len(g.world.Objects))
	for _, obj := range g.world.Objects {
		out = append(out, *obj)
	}
	return out
}

// AddPlayer spawns a new tank at a random clear position. Returns nil
// when the arena is full.
func (g *Game) AddPlayer() *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.players) >= maxPlayersPerArena {
		return nil
	}

	id := GenerateID(4)
	x, y := g.world.SpawnPosition(g.rng, TankRadius)
	color := tankColors[g.nextColor%len(tankColors)]
	g.nextColor++

	p := NewPlayer(id, x, y, color)
	g.players[id] = p
	g.playerOrder = append(g.playerOrder, id)

	g.events.Emit(MsgPlayerJoin, PlayerJoinMsg{
		ID:       p.ID,
		X:        p.X,
		Y:        p.Y,
		Rotation: p.Rotation,
		Color:    p.Color,
		Health:   p.HealthInt(),
		Score:    p.Score,
	})
	return p
}

// RemovePlayer drops a tank and its pending commands immediately. Any
// in-flight input for the id becomes a no-op.
func (g *Game) RemovePlayer(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removePlayerLocked(id)
}

func (g *Game) removePlayerLocked(id string) {
	if _, ok := g.players[id]; !ok {
		return
	}
	delete(g.players, id)
	for i, pid := range g.playerOrder {
		if pid == id {
			g.playerOrder = append(g.playerOrder[:i], g.playerOrder[i+1:]...)
			break
		}
	}
	g.departed = append(g.departed, id)
	g.events.Emit(MsgPlayerLeave, PlayerLeaveMsg{ID: id})
}

// SetClient associates a broadcaster with a player
func (g *Game) SetClient(playerID string, client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[playerID] = client
}

// HasPlayer reports whether the id is a live tank
func (g *Game) HasPlayer(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.players[id]
	return ok
}

// PlayerCount returns the number of tanks
func (g *Game) PlayerCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.players)
}

// SubmitInput enqueues a sequenced command for the next tick. Unknown
// ids and stale or duplicate sequences are dropped silently.
func (g *Game) SubmitInput(playerID string, in ClientInput) {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.players[playerID]
	if !ok {
		return
	}
	p.queue.Submit(in.Command(), p.LastSeq)
}

// Update runs one authoritative tick
func (g *Game) Update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.tick++
	g.applyInputs()
	g.advanceBullets()
	g.resolveBulletTerrain()
	g.resolveBulletPlayers()
	g.regenerate()
	g.flush()
}

// applyInputs drains each player's ordered commands and applies
// rotation, movement and shoot intents. One player's input never
// affects another's processing.
func (g *Game) applyInputs() {
	for _, id := range append([]string(nil), g.playerOrder...) {
		p, ok := g.players[id]
		if !ok {
			continue
		}
		p.LastSeq = p.queue.SkipFloor(p.LastSeq)
		for _, cmd := range p.queue.DrainInOrder(p.LastSeq) {
			// Confirmation precedes the effect so the sequence sent
			// back to the client always matches what was simulated.
			p.LastSeq = cmd.Seq
			g.applyCommand(p, cmd)
		}
	}
}

// applyCommand applies one drained command to a tank
func (g *Game) applyCommand(p *Player, cmd Command) {
	next, blocked := AdvanceTank(p.State(), cmd, g.world)
	if !blocked && g.tankOverlaps(p.ID, next.X, next.Y) {
		// Keep the rotation, revert the position
		next.X = p.X
		next.Y = p.Y
		blocked = true
	}
	p.SetState(next)
	if blocked {
		// A rejected move forces an authoritative correction on the
		// next snapshot so the client re-converges.
		p.ForceCorrect = true
	}

	if cmd.Shoot {
		g.tryShoot(p)
	}
}

// tankOverlaps checks a proposed position against all other tanks
func (g *Game) tankOverlaps(selfID string, x, y float64) bool {
	for _, id := range g.playerOrder {
		if id == selfID {
			continue
		}
		other := g.players[id]
		if CheckCollision(x, y, TankRadius, other.X, other.Y, TankRadius) {
			return true
		}
	}
	return false
}

// tryShoot spawns a bullet if the cooldown has elapsed. Rejected shoot
// intents are dropped without feedback.
func (g *Game) tryShoot(p *Player) {
	if p.HasShot && g.tick-p.LastShotTick < FireCooldownTicks {
		return
	}
	if len(g.bullets) >= maxBulletsPerArena {
		return
	}
	g.bulletCounter++
	b := NewBullet(p, g.bulletCounter)
	g.bullets[b.ID] = b
	g.bulletOrder = append(g.bulletOrder, b.ID)
	p.LastShotTick = g.tick
	p.HasShot = true
}

// advanceBullets moves every bullet and culls the ones leaving the world
func (g *Game) advanceBullets() {
	for _, id := range append([]string(nil), g.bulletOrder...) {
		b := g.bullets[id]
		b.Advance()
		if b.OutOfBounds() {
			g.removeBullet(id)
		}
	}
}

// resolveBulletTerrain despawns bullets on absorbing terrain and flips
// destructible walls on their first hit
func (g *Game) resolveBulletTerrain() {
	for _, id := range append([]string(nil), g.bulletOrder...) {
		b, ok := g.bullets[id]
		if !ok {
			continue
		}
		for _, obj := range g.world.Objects {
			if !StopsBullet(obj) || !PointInObject(b.X, b.Y, obj) {
				continue
			}
			if g.world.Destroy(obj.ID) {
				g.events.Emit(MsgMapUpdate, MapUpdateMsg{ObjectID: obj.ID, Destroyed: true})
			}
			g.removeBullet(id)
			break
		}
	}
}

// resolveBulletPlayers applies bullet damage. At most one bullet
// resolves against a given tank per pass; candidates resolve in bullet
// insertion order.
func (g *Game) resolveBulletPlayers() {
	hit := make(map[string]bool)
	for _, bid := range append([]string(nil), g.bulletOrder...) {
		b, ok := g.bullets[bid]
		if !ok {
			continue
		}
		for _, pid := range append([]string(nil), g.playerOrder...) {
			p, ok := g.players[pid]
			if !ok || pid == b.OwnerID || hit[pid] {
				continue
			}
			if !CheckCollision(b.X, b.Y, 0, p.X, p.Y, TankRadius) {
				continue
			}
			hit[pid] = true
			g.removeBullet(bid)
			if p.TakeDamage(BulletDamage) {
				g.creditKill(b.OwnerID, pid)
				g.removePlayerLocked(pid)
			} else {
				g.events.Emit(MsgHealthUpdate, HealthUpdateMsg{ID: pid, Health: p.HealthInt()})
			}
			break
		}
	}
}

// creditKill awards the kill bonus and persists the new score.
// Persistence is fire-and-forget; a store failure never rolls back the
// in-memory score.
func (g *Game) creditKill(killerID, victimID string) {
	g.events.Emit(MsgKill, KillMsg{KillerID: killerID, VictimID: victimID})
	killer, ok := g.players[killerID]
	if !ok {
		return // shooter already left or died
	}
	killer.Score += KillBonus
	g.events.Emit(MsgScoreUpdate, ScoreUpdateMsg{ID: killerID, Score: killer.Score})
	if g.scores != nil {
		g.scores.Save(killerID, killer.Score)
	}
}

// regenerate heals living tanks toward full health, emitting an update
// only when the rounded value changes to bound event volume
func (g *Game) regenerate() {
	for _, id := range g.playerOrder {
		p := g.players[id]
		if p.Regenerate() {
			g.events.Emit(MsgHealthUpdate, HealthUpdateMsg{ID: id, Health: p.HealthInt()})
		}
	}
}

func (g *Game) removeBullet(id string) {
	if _, ok := g.bullets[id]; !ok {
		return
	}
	delete(g.bullets, id)
	for i, bid := range g.bulletOrder {
		if bid == id {
			g.bulletOrder = append(g.bulletOrder[:i], g.bulletOrder[i+1:]...)
			break
		}
	}
}

// flush drains the tick's discrete events, then broadcasts the snapshot.
// Event-before-snapshot ordering is part of the protocol contract.
func (g *Game) flush() {
	for _, evt := range g.events.Drain() {
		g.broadcastJSON(Envelope{T: evt.T, Data: evt.Data})
	}

	snap := g.buildSnapshot()
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return
	}
	for _, client := range g.clients {
		client.SendBinary(data)
	}

	for _, id := range g.departed {
		delete(g.clients, id)
	}
	g.departed = nil
}

// buildSnapshot serializes the entity store in iteration order and
// clears the per-player correction flags it reported
func (g *Game) buildSnapshot() Snapshot {
	snap := Snapshot{
		Tick:    g.tick,
		Players: make([]SnapshotPlayer, 0, len(g.players)),
		Bullets: make([]SnapshotBullet, 0, len(g.bullets)),
	}
	for _, id := range g.playerOrder {
		p := g.players[id]
		snap.Players = append(snap.Players, snapshotPlayer(p))
		p.ForceCorrect = false
	}
	for _, id := range g.bulletOrder {
		snap.Bullets = append(snap.Bullets, snapshotBullet(g.bullets[id]))
	}
	return snap
}

func (g *Game) broadcastJSON(msg Envelope) {
	for _, client := range g.clients {
		client.SendJSON(msg)
	}
}
