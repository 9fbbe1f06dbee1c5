package main

import (
	"testing"

	"pgregory.net/rapid"
)

func TestPredictorMatchesServerLaw(t *testing.T) {
	start := TankState{X: 500, Y: 500}
	pr := NewPredictor(start, nil)

	cmds := []Command{
		{Seq: 1, Up: true},
		{Seq: 2, Up: true, Right: true},
		{Seq: 3, Right: true},
		{Seq: 4, Up: true},
	}

	server := start
	for _, cmd := range cmds {
		pr.Apply(cmd)
		server, _ = AdvanceTank(server, cmd, nil)
	}

	if pr.State() != server {
		t.Errorf("prediction diverged: %+v vs %+v", pr.State(), server)
	}
}

func TestReconcileDiscardsConfirmed(t *testing.T) {
	start := TankState{X: 400, Y: 400}
	pr := NewPredictor(start, nil)

	cmds := make([]Command, 5)
	for i := range cmds {
		cmds[i] = Command{Seq: uint32(i + 1), Up: true}
		pr.Apply(cmds[i])
	}

	// Server confirms through 3 and reports its authoritative state
	auth := start
	for _, cmd := range cmds[:3] {
		auth, _ = AdvanceTank(auth, cmd, nil)
	}
	got := pr.Reconcile(auth, 3)

	if pr.PendingCount() != 2 {
		t.Errorf("expected 2 unconfirmed commands, got %d", pr.PendingCount())
	}

	want := auth
	for _, cmd := range cmds[3:] {
		want, _ = AdvanceTank(want, cmd, nil)
	}
	if got != want {
		t.Errorf("reconciled state mismatch: %+v vs %+v", got, want)
	}
}

func TestReconcileAfterCorrection(t *testing.T) {
	wall := &MapObject{ID: "w", Type: ObjSolidWall, X: 480, Y: 440, W: 40, H: 40}
	m := &WorldMap{Objects: []*MapObject{wall}, byID: map[string]*MapObject{"w": wall}}

	// Client predicted into the wall region; server rejected and pushed
	// its authoritative position back
	pr := NewPredictor(TankState{X: 500, Y: 490}, m)
	pr.Apply(Command{Seq: 1, Up: true})

	auth := TankState{X: 500, Y: 501}
	got := pr.Reconcile(auth, 1)
	if got != auth {
		t.Errorf("with nothing unconfirmed the client must sit on the authoritative state, got %+v", got)
	}
}

// The client and server run the same law, so reconciling against the
// authoritative fold of any confirmed prefix always converges.
func TestReconcileConvergence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := TankState{X: 700, Y: 700}
		n := rapid.IntRange(1, 20).Draw(t, "n")

		pr := NewPredictor(start, nil)
		cmds := make([]Command, n)
		for i := range cmds {
			cmds[i] = genCommand(t, uint32(i+1))
			pr.Apply(cmds[i])
		}

		confirmed := rapid.IntRange(0, n).Draw(t, "confirmed")
		auth := start
		for _, cmd := range cmds[:confirmed] {
			auth, _ = AdvanceTank(auth, cmd, nil)
		}

		got := pr.Reconcile(auth, uint32(confirmed))

		want := start
		for _, cmd := range cmds {
			want, _ = AdvanceTank(want, cmd, nil)
		}
		if got != want {
			t.Fatalf("reconciliation diverged: %+v vs %+v", got, want)
		}
	})
}
