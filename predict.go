package main

// Predictor is the client-side counterpart of the movement law. It
// applies commands locally for immediate response, buffers everything
// the server has not confirmed, and re-derives its state from each
// authoritative update by replaying the unconfirmed tail.
//
// Correct convergence depends on this type using AdvanceTank and its
// constants unchanged; a diverging local law would rubber-band.
type Predictor struct {
	state   TankState
	world   *WorldMap
	pending []Command
}

// NewPredictor starts a predictor from the server-assigned spawn state
func NewPredictor(start TankState, world *WorldMap) *Predictor {
	return &Predictor{state: start, world: world}
}

// Apply runs one local command immediately and buffers it for replay
func (pr *Predictor) Apply(cmd Command) TankState {
	pr.state, _ = AdvanceTank(pr.state, cmd, pr.world)
	pr.pending = append(pr.pending, cmd)
	return pr.state
}

// Reconcile resets to the authoritative state, discards commands the
// server already applied, and replays the rest in order.
func (pr *Predictor) Reconcile(auth TankState, confirmed uint32) TankState {
	pr.state = auth

	kept := pr.pending[:0]
	for _, cmd := range pr.pending {
		if cmd.Seq > confirmed {
			kept = append(kept, cmd)
		}
	}
	pr.pending = kept

	for _, cmd := range pr.pending {
		pr.state, _ = AdvanceTank(pr.state, cmd, pr.world)
	}
	return pr.state
}

// State returns the current predicted state
func (pr *Predictor) State() TankState {
	return pr.state
}

// PendingCount returns the number of unconfirmed commands
func (pr *Predictor) PendingCount() int {
	return len(pr.pending)
}
