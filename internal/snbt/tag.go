package snbt

// Tag is a node in a structured tree. It is one of Compound, List, String,
// Byte, Short, Int, Long, Float, Double, ByteArray, IntArray or LongArray.
type Tag interface {
	tag()
}

type (
	String    string
	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []int8
	IntArray  []int32
	LongArray []int64
	List      []Tag
)

// Field is a named entry of a Compound.
type Field struct {
	Name  string
	Value Tag
}

// Compound is an ordered set of named tags. Field names are unique.
type Compound []Field

func (String) tag()    {}
func (Byte) tag()      {}
func (Short) tag()     {}
func (Int) tag()       {}
func (Long) tag()      {}
func (Float) tag()     {}
func (Double) tag()    {}
func (ByteArray) tag() {}
func (IntArray) tag()  {}
func (LongArray) tag() {}
func (List) tag()      {}
func (Compound) tag()  {}

// Bool returns the byte used to store a boolean.
func Bool(b bool) Byte {
	if b {
		return 1
	}
	return 0
}

// Get returns the value stored under name.
func (c Compound) Get(name string) (Tag, bool) {
	for _, f := range c {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether name is present.
func (c Compound) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}

// Set replaces the value under name, keeping its position, or appends it.
func (c *Compound) Set(name string, v Tag) {
	for i := range *c {
		if (*c)[i].Name == name {
			(*c)[i].Value = v
			return
		}
	}
	*c = append(*c, Field{Name: name, Value: v})
}

// Equal reports whether two trees hold the same values. Nil and empty
// collections are considered equal.
func Equal(a, b Tag) bool {
	switch av := a.(type) {
	case Compound:
		bv, ok := b.(Compound)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i].Name != bv[i].Name || !Equal(av[i].Value, bv[i].Value) {
				return false
			}
		}
		return true
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case ByteArray:
		bv, ok := b.(ByteArray)
		return ok && sliceEqual(av, bv)
	case IntArray:
		bv, ok := b.(IntArray)
		return ok && sliceEqual(av, bv)
	case LongArray:
		bv, ok := b.(LongArray)
		return ok && sliceEqual(av, bv)
	default:
		return a == b
	}
}

func sliceEqual[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// AsFloat64 widens any numeric tag to a float64.
func AsFloat64(t Tag) (float64, bool) {
	switch v := t.(type) {
	case Byte:
		return float64(v), true
	case Short:
		return float64(v), true
	case Int:
		return float64(v), true
	case Long:
		return float64(v), true
	case Float:
		return float64(v), true
	case Double:
		return float64(v), true
	}
	return 0, false
}

// AsInt converts an integral tag to an int.
func AsInt(t Tag) (int, bool) {
	switch v := t.(type) {
	case Byte:
		return int(v), true
	case Short:
		return int(v), true
	case Int:
		return int(v), true
	case Long:
		return int(v), true
	}
	return 0, false
}
