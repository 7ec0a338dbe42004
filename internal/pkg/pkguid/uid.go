package pkguid

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}

// Func adapts a plain function to StringID. Tests use it to make IDs
// predictable.
type Func func() string

func (f Func) Generate() string { return f() }
