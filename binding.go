package prop

// AddOneWayBind registers other as a propagation target of p (p -> other).
// After every successful write on p, the committed value is offered to other
// through other's own coercion and validation; other's callbacks and
// outgoing bindings are not triggered. Adding the same target twice is a
// no-op, and no value is synchronized at bind time: the first change after
// binding is what propagates.
//
// Binding a container to itself is a degenerate no-op: the binding set never
// contains its own container, which is what keeps propagation from trying to
// re-acquire a lock already held by the writing call stack.
func (p *Property[T]) AddOneWayBind(other *Property[T]) {
	if other == nil || other == p {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bindings[other] = struct{}{}
}

// RemoveOneWayBind removes other from p's propagation targets.
func (p *Property[T]) RemoveOneWayBind(other *Property[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.bindings, other)
}

// AddOneWayToSourceBind registers p as a propagation target of other
// (other -> p).
func (p *Property[T]) AddOneWayToSourceBind(other *Property[T]) {
	other.AddOneWayBind(p)
}

// RemoveOneWayToSourceBind removes p from other's propagation targets.
func (p *Property[T]) RemoveOneWayToSourceBind(other *Property[T]) {
	other.RemoveOneWayBind(p)
}

// AddBind establishes a two-way link: p -> other and other -> p. A write on
// either side updates the other through its pipeline; because propagation is
// exactly one hop, the update never bounces back.
func (p *Property[T]) AddBind(other *Property[T]) {
	p.AddOneWayBind(other)
	p.AddOneWayToSourceBind(other)
}

// RemoveBind removes both directions of a two-way link.
func (p *Property[T]) RemoveBind(other *Property[T]) {
	p.RemoveOneWayBind(other)
	p.RemoveOneWayToSourceBind(other)
}
