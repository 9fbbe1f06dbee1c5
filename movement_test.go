package main

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestHeading(t *testing.T) {
	hx, hy := Heading(0)
	if hx != 0 || hy != -1 {
		t.Errorf("rotation 0 should head (0,-1), got (%f,%f)", hx, hy)
	}

	hx, hy = Heading(math.Pi / 2)
	if math.Abs(hx-1) > 1e-9 || math.Abs(hy) > 1e-9 {
		t.Errorf("rotation π/2 should head (1,0), got (%f,%f)", hx, hy)
	}
}

func TestAdvanceTankRotationNormalized(t *testing.T) {
	s := TankState{X: 500, Y: 500, Rotation: 0.05}
	s, _ = AdvanceTank(s, Command{Left: true}, nil)
	if s.Rotation < 0 || s.Rotation >= 2*math.Pi {
		t.Errorf("rotation must stay in [0, 2π), got %f", s.Rotation)
	}
}

func TestAdvanceTankClampsToBounds(t *testing.T) {
	// Facing up at the top edge, pushing forward
	s := TankState{X: 500, Y: TankRadius, Rotation: 0}
	s, _ = AdvanceTank(s, Command{Up: true}, nil)
	if s.Y != TankRadius {
		t.Errorf("expected Y clamped at %f, got %f", TankRadius, s.Y)
	}
}

func TestAdvanceTankBlockedByTerrain(t *testing.T) {
	wall := &MapObject{ID: "w", Type: ObjSolidWall, X: 480, Y: 440, W: 40, H: 40}
	m := &WorldMap{Objects: []*MapObject{wall}, byID: map[string]*MapObject{"w": wall}}

	s := TankState{X: 500, Y: 501, Rotation: 0} // just below the wall, facing it
	next, blocked := AdvanceTank(s, Command{Up: true}, m)
	if !blocked {
		t.Fatal("move into a solid wall should be rejected")
	}
	if next.X != s.X || next.Y != s.Y {
		t.Error("rejected move must keep the pre-move position")
	}

	// Rotation still applies on a blocked move
	next, _ = AdvanceTank(s, Command{Up: true, Right: true}, m)
	if next.Rotation != NormalizeAngle(s.Rotation+TurnStep) {
		t.Error("rotation should apply even when the move is rejected")
	}
}

func TestAdvanceTankNoIntent(t *testing.T) {
	s := TankState{X: 300, Y: 300, Rotation: 1}
	next, blocked := AdvanceTank(s, Command{}, nil)
	if blocked || next != s {
		t.Error("empty command should leave the state unchanged")
	}
}

// genCommand draws a random movement command with the given sequence id
func genCommand(t *rapid.T, seq uint32) Command {
	return Command{
		Seq:   seq,
		Up:    rapid.Bool().Draw(t, "up"),
		Down:  rapid.Bool().Draw(t, "down"),
		Left:  rapid.Bool().Draw(t, "left"),
		Right: rapid.Bool().Draw(t, "right"),
	}
}

// Commands delivered in any order/duplication pattern must produce the
// same final state as strict sequential delivery.
func TestOrderingInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 24).Draw(t, "n")
		commands := make([]Command, n)
		for i := range commands {
			commands[i] = genCommand(t, uint32(i+1))
		}

		start := TankState{X: 500, Y: 500}

		// Reference: strict order 1..N
		want := start
		for _, cmd := range commands {
			want, _ = AdvanceTank(want, cmd, nil)
		}

		// Shuffled arrival with duplicates, interleaved with drains
		arrivals := rapid.Permutation(commands).Draw(t, "arrivals")
		dupes := rapid.SliceOfN(rapid.SampledFrom(commands), 0, 8).Draw(t, "dupes")
		arrivals = append(arrivals, dupes...)

		var q CommandQueue
		var confirmed uint32
		got := start
		drain := func() {
			for _, cmd := range q.DrainInOrder(confirmed) {
				confirmed = cmd.Seq
				got, _ = AdvanceTank(got, cmd, nil)
			}
		}
		for _, cmd := range arrivals {
			q.Submit(cmd, confirmed)
			if rapid.Bool().Draw(t, "drainNow") {
				drain()
			}
		}
		drain()

		if confirmed != uint32(n) {
			t.Fatalf("expected final confirmed seq %d, got %d", n, confirmed)
		}
		if got != want {
			t.Fatalf("state diverged: got %+v want %+v", got, want)
		}
	})
}

// No command sequence can push a tank outside the playable bounds.
func TestBoundaryInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := TankState{
			X: rapid.Float64Range(TankRadius, WorldWidth-TankRadius).Draw(t, "x"),
			Y: rapid.Float64Range(TankRadius, WorldHeight-TankRadius).Draw(t, "y"),
		}
		n := rapid.IntRange(1, 200).Draw(t, "n")
		for i := 0; i < n; i++ {
			s, _ = AdvanceTank(s, genCommand(t, uint32(i+1)), nil)
			if s.X < TankRadius || s.X > WorldWidth-TankRadius ||
				s.Y < TankRadius || s.Y > WorldHeight-TankRadius {
				t.Fatalf("position (%f,%f) escaped bounds", s.X, s.Y)
			}
		}
	})
}

// Replaying a command list chunk by chunk must equal a single fold: the
// law depends only on state and commands, never on replay timing.
func TestReplayFoldDeterminism(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 32).Draw(t, "n")
		commands := make([]Command, n)
		for i := range commands {
			commands[i] = genCommand(t, uint32(i+1))
		}
		start := TankState{X: 800, Y: 600, Rotation: 0.3}

		single := start
		for _, cmd := range commands {
			single, _ = AdvanceTank(single, cmd, nil)
		}

		chunked := start
		for i := 0; i < n; {
			end := i + rapid.IntRange(1, n-i).Draw(t, "chunk")
			for _, cmd := range commands[i:end] {
				chunked, _ = AdvanceTank(chunked, cmd, nil)
			}
			i = end
		}

		if single != chunked {
			t.Fatalf("chunked replay diverged: %+v vs %+v", chunked, single)
		}
	})
}
