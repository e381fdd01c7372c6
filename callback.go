package prop

import "reflect"

// AddChangeCallback registers a callback to be invoked after every
// successful write and returns its identifier. Released identifiers are
// reused in FIFO order; a fresh one is minted only when none are free.
func (p *Property[T]) AddChangeCallback(cb ChangeCallback[T]) CallbackID {
	p.mu.Lock()
	defer p.mu.Unlock()

	var id CallbackID
	if len(p.freeIDs) == 0 {
		id = p.nextCBID
		p.nextCBID++
	} else {
		id = p.freeIDs[0]
		p.freeIDs = p.freeIDs[1:]
	}
	p.callbacks[id] = cb
	return id
}

// RemoveChangeCallback removes the callback registered under id. Removing an
// unknown id is a no-op; the id is returned to the free-list only if a
// callback actually existed under it.
func (p *Property[T]) RemoveChangeCallback(id CallbackID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.callbacks[id]; ok {
		delete(p.callbacks, id)
		p.freeIDs = append(p.freeIDs, id)
	}
}

// RemoveChangeCallbackFunc removes the first registered callback (in
// unspecified registry order) whose underlying function is the same as cb's.
//
// Identity is compared by function code pointer, so a callback registered as
// a named function can be removed by passing that function again. Two
// closures created from the same function literal share a code pointer and
// are indistinguishable here; removal by callable is therefore best-effort,
// and RemoveChangeCallback by id is the primary contract. No match is a
// silent no-op.
func (p *Property[T]) RemoveChangeCallbackFunc(cb ChangeCallback[T]) {
	if cb == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	target := reflect.ValueOf(cb).Pointer()
	for id, existing := range p.callbacks {
		if existing != nil && reflect.ValueOf(existing).Pointer() == target {
			delete(p.callbacks, id)
			p.freeIDs = append(p.freeIDs, id)
			return
		}
	}
}
