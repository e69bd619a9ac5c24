package surface

// Handle is an opaque reference to a live object on a surface.
type Handle any

// Surface is the set of primitives the committer needs from a UI backend.
//
// Namespace is empty for the backend's default namespace.
// InsertBefore appends when ref is nil; inserting a handle that already has
// a parent moves it.
type Surface interface {
	CreateElement(tag, namespace string) (Handle, error)
	CreateText(content string) (Handle, error)
	InsertBefore(parent, node, ref Handle) error
	RemoveChild(parent, node Handle) error
	SetAttribute(node Handle, key, value string) error
	RemoveAttribute(node Handle, key string) error
	AddListener(node Handle, event string, l *Listener) error
	RemoveListener(node Handle, event string, l *Listener) error
}

// Resolver is implemented by surfaces that can look up a mount target by
// selector ("#id", ".class" or a tag name).
type Resolver interface {
	Resolve(selector string) (Handle, bool)
}

// Event is delivered to listeners.
type Event struct {
	// Type is the lower-case event name, e.g. "click".
	Type string

	// Target is the handle the event was dispatched on.
	Target Handle

	// Value carries the current value for input-like events.
	Value string

	// Data holds backend-specific event fields.
	Data map[string]string
}

// Listener wraps an event callback. Its pointer is its identity.
type Listener struct {
	fn func(Event)
}

// NewListener wraps fn.
func NewListener(fn func(Event)) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes the callback. A nil listener or callback is a no-op.
func (l *Listener) Handle(e Event) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(e)
}
