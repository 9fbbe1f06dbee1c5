package main

// EventSink receives discrete events produced inside a tick. The tick
// engine only ever talks to this abstraction; the transport side decides
// how the events reach clients.
type EventSink interface {
	Emit(msgType string, data interface{})
}

// Event is one queued outbound event
type Event struct {
	T    string
	Data interface{}
}

// EventQueue buffers events in emission order until the transport
// adapter drains them, once per tick, ahead of the snapshot. This keeps
// discrete events and the snapshot for the same tick ordered.
type EventQueue struct {
	events []Event
}

var _ EventSink = (*EventQueue)(nil)

// Emit appends an event
func (q *EventQueue) Emit(msgType string, data interface{}) {
	q.events = append(q.events, Event{T: msgType, Data: data})
}

// Drain returns all queued events and resets the queue
func (q *EventQueue) Drain() []Event {
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events
func (q *EventQueue) Len() int {
	return len(q.events)
}
