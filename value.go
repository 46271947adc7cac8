package sdeyaml

import "fmt"

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MapEntry is a single key-value pair of a mapping. Entries keep the order
// in which keys appeared in the source document.
type MapEntry struct {
	Key   string
	Value *Value
}

// Value is one node of a decoded document tree: a scalar, a sequence, or a
// mapping. Exactly one variant is populated, selected by Kind.
//
// Mappings preserve insertion order and never contain two entries with the
// same key; the parser rejects duplicates while loading.
type Value struct {
	kind Kind

	b       bool
	i       int64
	f       float64
	s       string
	seq     []*Value
	entries []MapEntry
}

// Constructors for each variant.

func nullValue() *Value           { return &Value{kind: KindNull} }
func boolValue(b bool) *Value     { return &Value{kind: KindBool, b: b} }
func intValue(i int64) *Value     { return &Value{kind: KindInt, i: i} }
func floatValue(f float64) *Value { return &Value{kind: KindFloat, f: f} }
func stringValue(s string) *Value { return &Value{kind: KindString, s: s} }
func newSequence() *Value         { return &Value{kind: KindSequence} }
func newMapping() *Value          { return &Value{kind: KindMapping} }

// Kind reports which variant the value holds.
func (v *Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload. It is false for any other kind.
func (v *Value) Bool() bool { return v.kind == KindBool && v.b }

// Int returns the integer payload, or 0 for any other kind.
func (v *Value) Int() int64 {
	if v.kind != KindInt {
		return 0
	}
	return v.i
}

// Float returns the float payload. An integer value is widened so callers
// reading numeric columns do not need to branch on the kind.
func (v *Value) Float() float64 {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return float64(v.i)
	}
	return 0
}

// Str returns the string payload, or "" for any other kind.
func (v *Value) Str() string {
	if v.kind != KindString {
		return ""
	}
	return v.s
}

// Len returns the number of elements of a sequence or entries of a mapping,
// and 0 for scalars.
func (v *Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.entries)
	}
	return 0
}

// Index returns the i-th element of a sequence, or nil if v is not a
// sequence or i is out of range.
func (v *Value) Index(i int) *Value {
	if v.kind != KindSequence || i < 0 || i >= len(v.seq) {
		return nil
	}
	return v.seq[i]
}

// Elems returns the underlying elements of a sequence in document order.
// The returned slice must not be mutated.
func (v *Value) Elems() []*Value {
	if v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// Entries returns the mapping's entries in document order.
// The returned slice must not be mutated.
func (v *Value) Entries() []MapEntry {
	if v.kind != KindMapping {
		return nil
	}
	return v.entries
}

// Get looks up a mapping entry by key.
func (v *Value) Get(key string) (*Value, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	for i := range v.entries {
		if v.entries[i].Key == key {
			return v.entries[i].Value, true
		}
	}
	return nil, false
}

// has reports whether the mapping already contains key.
func (v *Value) has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// append adds an element to a sequence.
func (v *Value) append(elem *Value) {
	v.seq = append(v.seq, elem)
}

// insert adds a key-value pair to a mapping. The caller checks for
// duplicates first; insert itself never overwrites.
func (v *Value) insert(key string, val *Value) {
	v.entries = append(v.entries, MapEntry{Key: key, Value: val})
}

// Interface converts the value tree into plain Go types: map[string]any for
// mappings (insertion order is lost), []any for sequences, and bool, int64,
// float64, string or nil for scalars.
func (v *Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, elem := range v.seq {
			out[i] = elem.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.entries))
		for _, e := range v.entries {
			out[e.Key] = e.Value.Interface()
		}
		return out
	}
	return nil
}
