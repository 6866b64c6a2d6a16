package state

import "sync"

// EventKind is the kind of pointer event a listener receives.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	PointerLeave
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "pointerdown"
	case PointerMove:
		return "pointermove"
	case PointerUp:
		return "pointerup"
	case PointerLeave:
		return "pointerleave"
	}
	return "unknown"
}

// PointerEvent carries a pointer position in page coordinates.
type PointerEvent struct {
	Kind EventKind
	Page Point
}

// Handler reacts to a pointer event.
type Handler func(PointerEvent)

type listener struct {
	id      uint64
	handler Handler
}

// Listeners is a registry of pointer handlers keyed by event kind.
type Listeners struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[EventKind][]listener
}

// NewListeners creates an empty registry.
func NewListeners() *Listeners {
	return &Listeners{handlers: make(map[EventKind][]listener)}
}

// Registration is a handle on one attached handler.
type Registration struct {
	once    sync.Once
	release func()
}

// Release detaches the handler. Only the first call has an effect.
func (r *Registration) Release() {
	if r == nil {
		return
	}
	r.once.Do(r.release)
}

// Attach registers h for kind and returns its registration.
func (l *Listeners) Attach(kind EventKind, h Handler) *Registration {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	id := l.nextID
	l.handlers[kind] = append(l.handlers[kind], listener{id: id, handler: h})
	return &Registration{release: func() { l.detach(kind, id) }}
}

func (l *Listeners) detach(kind EventKind, id uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	list := l.handlers[kind]
	for i, ln := range list {
		if ln.id == id {
			l.handlers[kind] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Count returns how many handlers are attached for kind.
func (l *Listeners) Count(kind EventKind) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.handlers[kind])
}

// Dispatch calls the handlers for ev.Kind in attachment order and reports
// how many ran.
func (l *Listeners) Dispatch(ev PointerEvent) int {
	l.mu.RLock()
	list := make([]listener, len(l.handlers[ev.Kind]))
	copy(list, l.handlers[ev.Kind])
	l.mu.RUnlock()

	for _, ln := range list {
		ln.handler(ev)
	}
	return len(list)
}
