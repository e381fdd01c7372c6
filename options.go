package prop

// Option configures a Property at construction time. Options compose: any
// combination of initial value, validator, coercer, and equality function is
// valid.
type Option[T any] func(*Property[T])

// WithInitial sets the initial value. Without it the container starts at the
// zero value of T.
func WithInitial[T any](value T) Option[T] {
	return func(p *Property[T]) {
		p.value = value
	}
}

// WithValidator sets the validator applied to every write after coercion.
func WithValidator[T any](v Validator[T]) Option[T] {
	return func(p *Property[T]) {
		p.validator = v
	}
}

// WithCoerce sets the coercion function applied to every write before
// validation.
func WithCoerce[T any](fn CoerceFunc[T]) Option[T] {
	return func(p *Property[T]) {
		p.coerce = fn
	}
}

// WithEquals sets a custom equality function used by the idempotent-write
// short-circuit and by propagation. Useful when reflect.DeepEqual is too
// expensive or has the wrong semantics for T.
func WithEquals[T any](fn func(a, b T) bool) Option[T] {
	return func(p *Property[T]) {
		p.equal = fn
	}
}
