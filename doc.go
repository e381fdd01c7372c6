// Package prop provides an observable value container: a value that reads
// and writes like the raw value, but whose writes pass through a pipeline of
// coercion, validation, change notification, and propagation to bound
// containers.
//
// # Core Type
//
// Property[T] holds a value of a fixed type:
//
//	temp := prop.New(prop.WithInitial(20.0))
//	value := temp.Get()   // Read a copy of the current value
//	temp.Set(22.5)        // Write (coerce, validate, notify, propagate)
//
// Writes are interceptable. A coercer normalizes a candidate value in place
// before validation, and a validator decides whether the (coerced) candidate
// may be committed:
//
//	pct := prop.New(
//	    prop.WithInitial(0),
//	    prop.WithCoerce(func(v *int) {
//	        if *v > 100 {
//	            *v = 100
//	        }
//	    }),
//	    prop.WithValidator(func(v int) bool { return v >= 0 }),
//	)
//
// Rejected writes are silent no-ops: no state change, no notification, no
// propagation. Set reports whether the write was applied for callers that
// care.
//
// # Change Callbacks
//
// Callbacks receive pointers to the old and new values after a successful
// write. Registration returns a stable CallbackID; released IDs are reused
// in FIFO order before new ones are minted:
//
//	id := pct.AddChangeCallback(func(oldValue, newValue *int) {
//	    fmt.Printf("%d -> %d\n", *oldValue, *newValue)
//	})
//	pct.RemoveChangeCallback(id)
//
// # Bindings
//
// Bindings are directed, non-owning propagation edges between containers of
// the same type. When a source commits a new value, each bound target is
// offered that value through its own coercion and validation, but the
// target's callbacks and outgoing bindings are never triggered: propagation
// depth is exactly one hop. AddBind composes both directions into a two-way
// link. One-hop propagation is what makes cycles in the binding graph safe;
// it is an invariant of the container, not an optimization.
//
// # Thread Safety
//
// Each container owns one mutex covering its value, callback registry,
// validator, coercer, and binding set. Callbacks and propagation run
// synchronously under the writer's lock; propagation acquires the target's
// lock while still holding the source's (source-then-target nesting). A
// callback must not write to the container it is registered on.
package prop
