package prop

// StringProperty wraps Property[string] with convenience methods for string
// operations. Every method goes through the full write pipeline.
type StringProperty struct {
	*Property[string]
}

// NewStringProperty creates a new StringProperty with the given initial
// value and options.
func NewStringProperty(initial string, opts ...Option[string]) *StringProperty {
	return &StringProperty{New(append([]Option[string]{WithInitial(initial)}, opts...)...)}
}

// Append appends a suffix to the value.
func (p *StringProperty) Append(suffix string) bool {
	return p.Update(func(s string) string { return s + suffix })
}

// Prepend prepends a prefix to the value.
func (p *StringProperty) Prepend(prefix string) bool {
	return p.Update(func(s string) string { return prefix + s })
}

// Clear sets the value to the empty string.
func (p *StringProperty) Clear() bool {
	return p.Set("")
}
