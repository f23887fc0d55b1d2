package binding

// Action is a deferred, zero-argument computation producing a result of
// type R. The registry stores Action values as opaque handles: it never
// invokes one except in direct response to RunAction, and it adds no
// recovery layer, so a panic inside an action propagates to the caller
// unmodified.
type Action[R any] func() R

// Pair is one event-to-action association for bulk construction.
type Pair[E comparable, R any] struct {
	Event  E
	Action Action[R]
}

// Bindings is a registry mapping events to action handles.
//
// The zero value is not usable; create registries with New or NewWith.
type Bindings[E comparable, R any] struct {
	actions map[E]Action[R]
}

// New creates an empty registry.
func New[E comparable, R any]() *Bindings[E, R] {
	return &Bindings[E, R]{
		actions: make(map[E]Action[R]),
	}
}

// NewWith creates a registry containing each binding in pairs, inserted
// in sequence order. A later pair for an event already seen overwrites
// the earlier one, consistent with BindAction.
func NewWith[E comparable, R any](pairs []Pair[E, R]) *Bindings[E, R] {
	b := New[E, R]()
	for _, p := range pairs {
		b.BindAction(p.Event, p.Action)
	}
	return b
}

// BindAction creates or overwrites the binding for event. Replacing a
// binding is a plain map overwrite: the old handle is dropped without
// being invoked or notified.
//
// GetAction is useful for rebinding: a handle looked up under one event
// may be bound under another.
func (b *Bindings[E, R]) BindAction(event E, action Action[R]) {
	b.actions[event] = action
}

// GetAction returns the action handle currently bound to event, or
// (nil, false) if the event is unbound. No mutation, no side effects.
func (b *Bindings[E, R]) GetAction(event E) (Action[R], bool) {
	action, ok := b.actions[event]
	return action, ok
}

// RunAction runs the action bound to event and returns its result.
// Returns the zero value of R and false if the event is unbound; no
// action is invoked in that case.
func (b *Bindings[E, R]) RunAction(event E) (R, bool) {
	action, ok := b.actions[event]
	if !ok {
		var zero R
		return zero, false
	}
	return action(), true
}

// Unbind removes the binding for event, if any. The removed handle is
// not invoked.
func (b *Bindings[E, R]) Unbind(event E) {
	delete(b.actions, event)
}

// Has returns true if event currently has a bound action.
func (b *Bindings[E, R]) Has(event E) bool {
	_, ok := b.actions[event]
	return ok
}

// Len returns the number of current bindings.
func (b *Bindings[E, R]) Len() int {
	return len(b.actions)
}

// Events returns all bound events, in no particular order.
func (b *Bindings[E, R]) Events() []E {
	events := make([]E, 0, len(b.actions))
	for e := range b.actions {
		events = append(events, e)
	}
	return events
}

// Clear removes all bindings.
func (b *Bindings[E, R]) Clear() {
	b.actions = make(map[E]Action[R])
}
