// Package input defines backend-neutral input events for the viewer.
package input

// EventType identifies the kind of an input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Key is a keyboard key the viewer reacts to.
// Window backends translate their native key codes into Key values.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyE
	KeyQ
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyF12
)

var keyNames = map[Key]string{
	KeyUnknown: "Unknown",
	KeyW:       "W",
	KeyA:       "A",
	KeyS:       "S",
	KeyD:       "D",
	KeyE:       "E",
	KeyQ:       "Q",
	KeyUp:      "Up",
	KeyDown:    "Down",
	KeyLeft:    "Left",
	KeyRight:   "Right",
	KeyEscape:  "Escape",
	KeyF12:     "F12",
}

// String returns the key name.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
}

// Queue collects the events produced during one poll.
// Backends push into it from their native callbacks or poll loop and the
// render loop drains it once per frame.
type Queue struct {
	events []Event
}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	return &Queue{
		events: make([]Event, 0, 16),
	}
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// PushKey appends a key-down event.
func (q *Queue) PushKey(k Key) {
	q.Push(Event{Type: EventKeyDown, Key: k})
}

// Drain returns all pending events and empties the queue.
// The returned slice is only valid until the next Push.
func (q *Queue) Drain() []Event {
	events := q.events
	q.events = q.events[:0]
	return events
}
