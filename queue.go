package main

const maxPendingCommands = 64

// CommandQueue buffers one player's sequenced commands until they can be
// applied in order. Stale and duplicate sequence ids are rejected at
// submit time; gaps hold later commands back until the predecessor
// arrives or the cap evicts the oldest entry.
type CommandQueue struct {
	pending []Command // sorted ascending by Seq, no duplicates
	evicted uint32    // highest sequence dropped by the cap; lost forever
}

// Submit inserts a command unless its sequence id is stale, already
// pending, or below an evicted sequence. Returns false for rejected
// commands.
func (q *CommandQueue) Submit(cmd Command, confirmed uint32) bool {
	if cmd.Seq <= confirmed || cmd.Seq <= q.evicted {
		return false
	}
	idx := len(q.pending)
	for i, c := range q.pending {
		if c.Seq == cmd.Seq {
			return false
		}
		if c.Seq > cmd.Seq {
			idx = i
			break
		}
	}
	q.pending = append(q.pending, Command{})
	copy(q.pending[idx+1:], q.pending[idx:])
	q.pending[idx] = cmd

	// Cap pending growth from stalled clients. Dropping the oldest
	// permanently skips that command, so later ones can still drain.
	if len(q.pending) > maxPendingCommands {
		if q.pending[0].Seq > q.evicted {
			q.evicted = q.pending[0].Seq
		}
		q.pending = q.pending[1:]
	}
	return true
}

// SkipFloor lifts a confirmed sequence over any evicted gap. Commands at
// or below the floor will never arrive and must be confirmed as applied
// no-ops.
func (q *CommandQueue) SkipFloor(confirmed uint32) uint32 {
	if q.evicted > confirmed {
		return q.evicted
	}
	return confirmed
}

// DrainInOrder pops the contiguous run starting at confirmed+1. On a
// gap it stops and leaves the rest pending.
func (q *CommandQueue) DrainInOrder(confirmed uint32) []Command {
	var out []Command
	next := confirmed + 1
	i := 0
	for ; i < len(q.pending); i++ {
		c := q.pending[i]
		if c.Seq < next {
			continue // behind the skip floor, discard
		}
		if c.Seq != next {
			break
		}
		out = append(out, c)
		next++
	}
	q.pending = append([]Command(nil), q.pending[i:]...)
	return out
}

// Len returns the number of pending commands
func (q *CommandQueue) Len() int {
	return len(q.pending)
}
