package prop

// IntProperty wraps Property[int] with convenience methods for integer
// operations. Every method goes through the full write pipeline.
type IntProperty struct {
	*Property[int]
}

// NewIntProperty creates a new IntProperty with the given initial value and
// options.
func NewIntProperty(initial int, opts ...Option[int]) *IntProperty {
	return &IntProperty{New(append([]Option[int]{WithInitial(initial)}, opts...)...)}
}

// Inc increments the value by 1.
func (p *IntProperty) Inc() bool {
	return p.Update(func(n int) int { return n + 1 })
}

// Dec decrements the value by 1.
func (p *IntProperty) Dec() bool {
	return p.Update(func(n int) int { return n - 1 })
}

// Add adds the given value.
func (p *IntProperty) Add(n int) bool {
	return p.Update(func(v int) int { return v + n })
}

// Sub subtracts the given value.
func (p *IntProperty) Sub(n int) bool {
	return p.Update(func(v int) int { return v - n })
}
