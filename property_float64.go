package prop

// Float64Property wraps Property[float64] with convenience methods for float
// operations. Every method goes through the full write pipeline.
type Float64Property struct {
	*Property[float64]
}

// NewFloat64Property creates a new Float64Property with the given initial
// value and options.
func NewFloat64Property(initial float64, opts ...Option[float64]) *Float64Property {
	return &Float64Property{New(append([]Option[float64]{WithInitial(initial)}, opts...)...)}
}

// Add adds the given value.
func (p *Float64Property) Add(n float64) bool {
	return p.Update(func(v float64) float64 { return v + n })
}

// Sub subtracts the given value.
func (p *Float64Property) Sub(n float64) bool {
	return p.Update(func(v float64) float64 { return v - n })
}

// Mul multiplies by the given value.
func (p *Float64Property) Mul(n float64) bool {
	return p.Update(func(v float64) float64 { return v * n })
}

// Div divides by the given value.
func (p *Float64Property) Div(n float64) bool {
	return p.Update(func(v float64) float64 { return v / n })
}
