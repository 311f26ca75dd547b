package params

// Value is an optional string passed to Set and SetIn.
// The zero Value is None; setting None removes the key.
type Value struct {
	s  string
	ok bool
}

// Some returns a Value holding s. The empty string is a valid value.
func Some(s string) Value {
	return Value{s: s, ok: true}
}

// None returns the absent Value.
func None() Value {
	return Value{}
}

// Get returns the held string and whether the Value is present.
func (v Value) Get() (string, bool) {
	return v.s, v.ok
}

func (v Value) String() string {
	if !v.ok {
		return "<none>"
	}
	return v.s
}
