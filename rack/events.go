package rack

import "github.com/hupe1980/pclabel/shape"

// EventType classifies a rack edit notification.
type EventType uint8

const (
	// RackCreated is emitted when a split produces a new rack annotation.
	RackCreated EventType = iota
	// RackRemoved is emitted when a merge discards a rack annotation.
	RackRemoved
	// RackUpdated is emitted when an existing rack's corners change.
	RackUpdated
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case RackCreated:
		return "rack_created"
	case RackRemoved:
		return "rack_removed"
	case RackUpdated:
		return "rack_updated"
	default:
		return "unknown"
	}
}

// Event is a one-way notification of a rack geometry change. The
// presentation layer subscribes to these instead of being called back into;
// it owns no geometry logic itself.
type Event struct {
	Type EventType
	Rack *shape.Shape
}

// Subscriber receives rack edit events. Callbacks run synchronously on the
// editing goroutine and must not call back into the Editor.
type Subscriber func(Event)

// Subscribe registers a subscriber for all future events.
func (e *Editor) Subscribe(fn Subscriber) {
	if fn != nil {
		e.subs = append(e.subs, fn)
	}
}

func (e *Editor) emit(t EventType, r *shape.Shape) {
	for _, fn := range e.subs {
		fn(Event{Type: t, Rack: r})
	}
}
