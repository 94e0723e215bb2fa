package model

// Kind is the JSON type of a decoded value.
type Kind int

const (
	KindMissing Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value wraps one decoded JSON value together with whether it was present
// at all. Handlers inspect request fields only through its typed accessors.
type Value struct {
	raw     any
	present bool
}

// ValueOf wraps a value produced by the JSON decoder.
func ValueOf(v any) Value {
	return Value{raw: v, present: true}
}

// Missing is the Value of an absent field.
func Missing() Value {
	return Value{}
}

// Kind reports the JSON type of the value.
func (v Value) Kind() Kind {
	if !v.present {
		return KindMissing
	}
	switch v.raw.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case float64, int, int64, uint32:
		return KindNumber
	case string:
		return KindString
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return KindNull
	}
}

// Present reports whether the field existed, whatever its type.
func (v Value) Present() bool {
	return v.present
}

// Bool returns the value if it is a JSON boolean.
func (v Value) Bool() (bool, bool) {
	b, ok := v.raw.(bool)
	return b, ok && v.present
}

// Number returns the value if it is a JSON number.
func (v Value) Number() (float64, bool) {
	if !v.present {
		return 0, false
	}
	switch n := v.raw.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	}
	return 0, false
}

// Str returns the value if it is a JSON string.
func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok && v.present
}

// Array returns the elements if the value is a JSON array.
func (v Value) Array() ([]Value, bool) {
	arr, ok := v.raw.([]any)
	if !ok || !v.present {
		return nil, false
	}
	out := make([]Value, len(arr))
	for i, elem := range arr {
		out[i] = ValueOf(elem)
	}
	return out, true
}

// Strings returns the array elements as strings. Elements that are not
// strings are returned as "".
func (v Value) Strings() ([]string, bool) {
	arr, ok := v.Array()
	if !ok {
		return nil, false
	}
	out := make([]string, len(arr))
	for i, elem := range arr {
		out[i], _ = elem.Str()
	}
	return out, true
}
