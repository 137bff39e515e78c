package fan

// EventKind identifies a fan notification.
type EventKind int

const (
	// EventAdded fires when an item's entry or move animation finishes.
	EventAdded EventKind = iota
	// EventRemoved fires when an item is gone for good. Handle is nil when the
	// handle was recycled and non-nil when ownership returned to the caller.
	EventRemoved
	EventPress
	EventLongPress
	EventDragBegin
	EventDrop
	EventHoverEnter
	EventHoverLeave
)

var eventNames = [...]string{
	"added", "removed", "press", "long-press", "drag-begin", "drop", "hover-enter", "hover-leave",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Contact is one pointer contact in container coordinates.
type Contact struct {
	ID   int
	X, Y float64
}

// Event is delivered to subscribers. Index is -1 for removal events.
type Event struct {
	Kind    EventKind
	Index   int
	Item    Item
	Handle  Handle
	Contact Contact
}

// Subscription is returned by On and can be used to unsubscribe.
type Subscription struct {
	id   uint32
	kind EventKind
	reg  *registry
}

// Remove unsubscribes the handler. Calling it twice is a no-op.
func (s Subscription) Remove() {
	if s.reg != nil {
		s.reg.remove(s.kind, s.id)
	}
}

type handlerEntry struct {
	id uint32
	fn func(Event)
}

type registry struct {
	handlers map[EventKind][]handlerEntry
	nextID   uint32
}

func (r *registry) on(kind EventKind, fn func(Event)) Subscription {
	if r.handlers == nil {
		r.handlers = make(map[EventKind][]handlerEntry)
	}
	r.nextID++
	r.handlers[kind] = append(r.handlers[kind], handlerEntry{id: r.nextID, fn: fn})
	return Subscription{id: r.nextID, kind: kind, reg: r}
}

func (r *registry) remove(kind EventKind, id uint32) {
	hs := r.handlers[kind]
	for i, h := range hs {
		if h.id == id {
			r.handlers[kind] = append(hs[:i:i], hs[i+1:]...)
			return
		}
	}
}

func (r *registry) emit(ev Event) {
	// Handlers may subscribe or unsubscribe while running.
	hs := r.handlers[ev.Kind]
	if len(hs) == 0 {
		return
	}
	for _, h := range append([]handlerEntry(nil), hs...) {
		h.fn(ev)
	}
}
