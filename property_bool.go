package prop

// BoolProperty wraps Property[bool] with convenience methods for boolean
// operations. Every method goes through the full write pipeline.
type BoolProperty struct {
	*Property[bool]
}

// NewBoolProperty creates a new BoolProperty with the given initial value
// and options.
func NewBoolProperty(initial bool, opts ...Option[bool]) *BoolProperty {
	return &BoolProperty{New(append([]Option[bool]{WithInitial(initial)}, opts...)...)}
}

// Toggle inverts the boolean value.
func (p *BoolProperty) Toggle() bool {
	return p.Update(func(b bool) bool { return !b })
}

// SetTrue sets the value to true.
func (p *BoolProperty) SetTrue() bool {
	return p.Set(true)
}

// SetFalse sets the value to false.
func (p *BoolProperty) SetFalse() bool {
	return p.Set(false)
}
