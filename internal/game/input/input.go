// Package input defines the edge-triggered input events the battle menu reacts
// to, and the global switch that suppresses them while an ability is running.
package input

// Event is a single "just pressed" input.
type Event uint8

const (
	None Event = iota
	Up
	Down
	Left
	Right
	Act
	Esc
)

// String returns a human-readable event label.
func (e Event) String() string {
	switch e {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Act:
		return "act"
	case Esc:
		return "esc"
	default:
		return "none"
	}
}

// Source yields at most one pending event per call and never blocks.
type Source interface {
	// Poll returns the next pending event, or (None, false) when there is none.
	Poll() (Event, bool)
}

// Gate turns global input on and off.
type Gate interface {
	Enable()
	Disable()
	Enabled() bool
}

// Switch is the default Gate. The zero value is enabled.
type Switch struct {
	disabled bool
}

// Enable lets input through.
func (s *Switch) Enable() { s.disabled = false }

// Disable blocks input.
func (s *Switch) Disable() { s.disabled = true }

// Enabled reports whether input is let through.
func (s *Switch) Enabled() bool { return !s.disabled }

// Queue is a Source fed programmatically, in FIFO order.
type Queue struct {
	events []Event
}

// NewQueue returns a Queue preloaded with events.
func NewQueue(events ...Event) *Queue {
	return &Queue{events: append([]Event(nil), events...)}
}

// Push appends events to the queue.
func (q *Queue) Push(events ...Event) { q.events = append(q.events, events...) }

// Len returns the number of pending events.
func (q *Queue) Len() int { return len(q.events) }

// Poll pops the oldest event.
func (q *Queue) Poll() (Event, bool) {
	if len(q.events) == 0 {
		return None, false
	}
	e := q.events[0]
	q.events = q.events[1:]
	return e, true
}
