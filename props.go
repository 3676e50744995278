package reim

// Props is an ordered string-keyed bag of heterogeneous prop values.
// Each element kind reads the keys it understands through the typed
// accessors; an absent key or a kind mismatch yields the caller's default.
// Insertion order is preserved so traversal and diagnostics are stable.
type Props struct {
	keys   []string
	values map[string]Value
}

// NewProps creates an empty prop bag.
func NewProps() *Props {
	return &Props{values: make(map[string]Value)}
}

// Set stores a value under key, preserving first-insertion order.
// It returns the bag for chaining.
func (p *Props) Set(key string, v Value) *Props {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
	return p
}

// Get returns the raw value for key.
func (p *Props) Get(key string) (Value, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is present.
func (p *Props) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Len returns the number of keys.
func (p *Props) Len() int { return len(p.keys) }

// Keys returns the keys in insertion order.
func (p *Props) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Number returns the numeric value for key, or def when the key is absent
// or holds a non-number.
func (p *Props) Number(key string, def float64) float64 {
	if v, ok := p.values[key]; ok && v.kind == ValueNumber {
		return v.num
	}
	return def
}

// Bool returns the boolean value for key, or def.
func (p *Props) Bool(key string, def bool) bool {
	if v, ok := p.values[key]; ok && v.kind == ValueBool {
		return v.b
	}
	return def
}

// String returns the string value for key, or def.
func (p *Props) String(key string, def string) string {
	if v, ok := p.values[key]; ok && v.kind == ValueString {
		return v.str
	}
	return def
}

// Callback returns the callback stored under key, or nil.
func (p *Props) Callback(key string) Callback {
	if v, ok := p.values[key]; ok && v.kind == ValueCallback {
		return v.fn
	}
	return nil
}

// Map returns the nested bag stored under key, or nil.
func (p *Props) Map(key string) *Props {
	if v, ok := p.values[key]; ok && v.kind == ValueMap {
		return v.m
	}
	return nil
}

// ShallowEqual reports whether two prop bags are referentially identical or
// shallow-equal: same key set with values equal by primitive equality.
// Callback values never compare equal unless both are nil; a fresh closure
// each render is deliberately treated as a change so a real update is never
// missed. Nested maps compare by reference for the same reason.
func ShallowEqual(a, b *Props) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if len(a.values) != len(b.values) {
		return false
	}
	for k, av := range a.values {
		bv, ok := b.values[k]
		if !ok || !av.equal(bv) {
			return false
		}
	}
	return true
}

// ValueKind tags the variant stored in a Value.
type ValueKind uint8

const (
	ValueNil ValueKind = iota
	ValueNumber
	ValueString
	ValueBool
	ValueCallback
	ValueMap
)

// Callback is a declarative-layer event handler held in a prop bag.
// The core only invokes callbacks; it never owns or frees them. The payload
// depends on the event: Nil for clicks, a number/string/bool for value
// changes, a nested map for multi-field events like a window move.
type Callback func(payload Value)

// Value is a tagged variant: number, string, bool, callback reference or
// nested prop map.
type Value struct {
	kind ValueKind
	num  float64
	str  string
	b    bool
	fn   Callback
	m    *Props
}

// Nil returns the empty value.
func Nil() Value { return Value{} }

// Number wraps a float64.
func Number(v float64) Value { return Value{kind: ValueNumber, num: v} }

// String wraps a string.
func String(v string) Value { return Value{kind: ValueString, str: v} }

// Bool wraps a bool.
func Bool(v bool) Value { return Value{kind: ValueBool, b: v} }

// Func wraps a callback reference.
func Func(fn Callback) Value { return Value{kind: ValueCallback, fn: fn} }

// Map wraps a nested prop bag.
func Map(m *Props) Value { return Value{kind: ValueMap, m: m} }

// Kind returns the variant tag.
func (v Value) Kind() ValueKind { return v.kind }

// Float returns the numeric payload and whether the value is a number.
func (v Value) Float() (float64, bool) { return v.num, v.kind == ValueNumber }

// Str returns the string payload and whether the value is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == ValueString }

// Truth returns the bool payload and whether the value is a bool.
func (v Value) Truth() (bool, bool) { return v.b, v.kind == ValueBool }

// Fn returns the callback payload, or nil.
func (v Value) Fn() Callback {
	if v.kind == ValueCallback {
		return v.fn
	}
	return nil
}

// Nested returns the map payload, or nil.
func (v Value) Nested() *Props {
	if v.kind == ValueMap {
		return v.m
	}
	return nil
}

// equal implements the shallow equality used by prop diffing.
func (v Value) equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueNil:
		return true
	case ValueNumber:
		return v.num == o.num
	case ValueString:
		return v.str == o.str
	case ValueBool:
		return v.b == o.b
	case ValueCallback:
		// Function identity is not observable in Go; only nil compares equal.
		return v.fn == nil && o.fn == nil
	case ValueMap:
		return v.m == o.m
	}
	return false
}
