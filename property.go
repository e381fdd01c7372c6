package prop

import "sync"

// ChangeCallback is invoked after a successful write with pointers to the
// old and new values. The pointers refer to locals of the write call, not to
// the container's stored value: a callback may inspect or rewrite them, and
// a rewrite of newValue is seen by callbacks invoked later in the same write
// and by propagation, but never by the container itself.
type ChangeCallback[T any] func(oldValue, newValue *T)

// Validator decides whether a prospective (already coerced) value may be
// committed. Returning false aborts the write silently.
type Validator[T any] func(value T) bool

// CoerceFunc normalizes a prospective value in place before validation.
type CoerceFunc[T any] func(value *T)

// CallbackID identifies a registered change callback. IDs released by
// removal are reused in FIFO order before new ones are minted.
type CallbackID uint64

// Property is an observable value container. It holds a value of type T, a
// registry of change callbacks, an optional validator and coercer, and a set
// of outgoing one-way bindings to other containers of the same type.
//
// The zero Property is not usable; create instances with New.
type Property[T any] struct {
	id uint64

	// mu guards every field below, including the binding set.
	mu sync.Mutex

	value T

	callbacks  map[CallbackID]ChangeCallback[T]
	freeIDs    []CallbackID
	nextCBID   CallbackID

	validator Validator[T]
	coerce    CoerceFunc[T]

	// equal reports whether two values are the same. Nil means defaultEquals.
	equal func(T, T) bool

	// bindings are the one-way propagation targets of this container.
	// Directed and source-side only; a container has no record of who binds
	// to it.
	bindings map[*Property[T]]struct{}
}

// New creates a container configured by the given options. With no options
// the container holds the zero value of T and accepts every write.
func New[T any](opts ...Option[T]) *Property[T] {
	p := &Property[T]{
		id:        nextID(),
		callbacks: make(map[CallbackID]ChangeCallback[T]),
		bindings:  make(map[*Property[T]]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get returns a copy of the current value. The copy is taken under the
// container's lock, so concurrent writers can never produce a torn read.
func (p *Property[T]) Get() T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Ptr returns a pointer to the stored value for direct member access when T
// is a struct. Access through Ptr bypasses the write pipeline entirely:
// mutations produce no coercion, no validation, no callbacks, and no
// propagation, and are not synchronized against concurrent writes. Callers
// that mutate through Ptr own the resulting consistency problem.
func (p *Property[T]) Ptr() *T {
	return &p.value
}

// Set offers newValue to the write pipeline and reports whether it was
// committed. The pipeline, executed atomically with respect to other writes
// on this container:
//
//  1. If newValue equals the current value (raw input, before coercion),
//     nothing happens.
//  2. The coercer, if set, rewrites newValue in place.
//  3. The validator, if set, may reject the coerced value; rejection is a
//     silent no-op.
//  4. Otherwise the value is replaced, every registered callback is invoked
//     with (old, new), and the new value is propagated one hop to each bound
//     container.
//
// Equality is deliberately checked on the raw input: a write whose input
// equals the current value is skipped before the coercer ever runs, even if
// coercion would have produced a different result.
func (p *Property[T]) Set(newValue T) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.commit(newValue)
}

// Update atomically derives a new value from the current one and offers it
// to the write pipeline. It reports whether the write was committed.
func (p *Property[T]) Update(fn func(T) T) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.commit(fn(p.value))
}

// SetValidator replaces the validator. The replacement takes effect with the
// next write; the current value is not re-validated.
func (p *Property[T]) SetValidator(v Validator[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.validator = v
}

// SetCoerce replaces the coercion function, effective with the next write.
func (p *Property[T]) SetCoerce(fn CoerceFunc[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.coerce = fn
}

// ID returns the process-unique identifier of this container.
func (p *Property[T]) ID() uint64 {
	return p.id
}

// commit runs the write pipeline. Callers must hold p.mu.
func (p *Property[T]) commit(newValue T) bool {
	if p.equals(p.value, newValue) {
		return false
	}
	if p.coerce != nil {
		p.coerce(&newValue)
	}
	if p.validator != nil && !p.validator(newValue) {
		return false
	}
	oldValue := p.value
	p.value = newValue

	// Callbacks run under the lock; map iteration order is unspecified.
	for _, cb := range p.callbacks {
		if cb != nil {
			cb(&oldValue, &newValue)
		}
	}
	for target := range p.bindings {
		target.applyBound(newValue)
	}
	return true
}

// applyBound is the one-hop propagation step. The target's lock is acquired
// while the source's is still held (source-then-target nesting). The value
// passes through the target's own coercion and validation, but the target's
// callbacks and outgoing bindings are never triggered; a propagation chain
// therefore can never revisit a container locked by the current call stack.
func (p *Property[T]) applyBound(v T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.equals(p.value, v) {
		return
	}
	if p.coerce != nil {
		p.coerce(&v)
	}
	if p.validator == nil || p.validator(v) {
		p.value = v
	}
}

// equals applies the configured equality function, or defaultEquals.
func (p *Property[T]) equals(a, b T) bool {
	if p.equal != nil {
		return p.equal(a, b)
	}
	return defaultEquals(a, b)
}
