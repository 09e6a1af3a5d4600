package merge

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the shape of a Value.
type Kind int

const (
	KindNil Kind = iota
	KindScalar
	KindSequence
	KindMapping
	KindFunc
)

// String returns a human readable kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindFunc:
		return "func"
	default:
		return "unknown"
	}
}

// Func is a function-valued entry. When two functions meet at the same path
// during a merge they are composed rather than replaced: the composed function
// invokes both and merges their results, later winning on conflicts.
type Func func(args ...any) (*Value, error)

// Value is a closed, immutable configuration value. Treat every Value as
// frozen once constructed; merges always allocate new nodes and may share
// subtrees between inputs and outputs.
type Value struct {
	kind    Kind
	scalar  any
	seq     []*Value
	mapping map[string]*Value
	fn      Func
}

var nilValue = &Value{kind: KindNil}

// Nil returns the nil Value, which acts as a no-op layer in merges.
func Nil() *Value { return nilValue }

// Scalar wraps a plain Go value (string, bool, int, float64, ...).
func Scalar(v any) *Value {
	if v == nil {
		return nilValue
	}
	return &Value{kind: KindScalar, scalar: v}
}

// String wraps a string scalar.
func String(s string) *Value { return Scalar(s) }

// Bool wraps a boolean scalar.
func Bool(b bool) *Value { return Scalar(b) }

// Int wraps an integer scalar.
func Int(i int) *Value { return Scalar(i) }

// Float wraps a float scalar.
func Float(f float64) *Value { return Scalar(f) }

// Seq wraps an ordered sequence. Sequences never deep-merge; a later sequence
// replaces an earlier one outright.
func Seq(items ...*Value) *Value {
	return &Value{kind: KindSequence, seq: items}
}

// Map wraps a mapping. The supplied map is copied so later mutation of the
// argument cannot leak into the Value.
func Map(entries map[string]*Value) *Value {
	copied := make(map[string]*Value, len(entries))
	for k, v := range entries {
		if v == nil {
			v = nilValue
		}
		copied[k] = v
	}
	return &Value{kind: KindMapping, mapping: copied}
}

// EmptyMap returns a mapping with no entries.
func EmptyMap() *Value {
	return &Value{kind: KindMapping, mapping: map[string]*Value{}}
}

// FuncOf wraps a function value.
func FuncOf(fn Func) *Value {
	if fn == nil {
		return nilValue
	}
	return &Value{kind: KindFunc, fn: fn}
}

// Kind reports the Value's tag.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNil
	}
	return v.kind
}

// IsNil reports whether the Value is absent or the nil Value. An empty string
// scalar also counts: empty strings are treated as no-op layers by Merge.
func (v *Value) IsNil() bool {
	if v == nil || v.kind == KindNil {
		return true
	}
	if v.kind == KindScalar {
		if s, ok := v.scalar.(string); ok && s == "" {
			return true
		}
	}
	return false
}

// Scalar returns the wrapped scalar, or nil for non-scalar values.
func (v *Value) Scalar() any {
	if v == nil || v.kind != KindScalar {
		return nil
	}
	return v.scalar
}

// AsString returns the scalar as a string when it is one.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.kind != KindScalar {
		return "", false
	}
	s, ok := v.scalar.(string)
	return s, ok
}

// AsBool returns the scalar as a bool when it is one.
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.kind != KindScalar {
		return false, false
	}
	b, ok := v.scalar.(bool)
	return b, ok
}

// AsInt returns the scalar as an int, converting from the numeric types YAML
// decoding produces.
func (v *Value) AsInt() (int, bool) {
	if v == nil || v.kind != KindScalar {
		return 0, false
	}
	switch n := v.scalar.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// Items returns the sequence elements, or nil for non-sequence values.
func (v *Value) Items() []*Value {
	if v == nil || v.kind != KindSequence {
		return nil
	}
	return v.seq
}

// Get looks up a key in a mapping Value.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.kind != KindMapping {
		return nil, false
	}
	entry, ok := v.mapping[key]
	return entry, ok
}

// GetString is a convenience for Get followed by AsString.
func (v *Value) GetString(key string) (string, bool) {
	entry, ok := v.Get(key)
	if !ok {
		return "", false
	}
	return entry.AsString()
}

// Len returns the entry count of a mapping or sequence.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindMapping:
		return len(v.mapping)
	case KindSequence:
		return len(v.seq)
	default:
		return 0
	}
}

// Keys returns the mapping keys in sorted order for deterministic iteration.
func (v *Value) Keys() []string {
	if v == nil || v.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(v.mapping))
	for k := range v.mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Call invokes a function Value.
func (v *Value) Call(args ...any) (*Value, error) {
	if v == nil || v.kind != KindFunc {
		return nil, fmt.Errorf("cannot call %s value", v.Kind())
	}
	return v.fn(args...)
}

// Equal reports structural equality. Function values compare equal only when
// both sides are functions; their behaviour is not inspected.
func (v *Value) Equal(other *Value) bool {
	if v.IsNil() || other.IsNil() {
		return v.IsNil() && other.IsNil()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == other.scalar
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.mapping) != len(other.mapping) {
			return false
		}
		for k, entry := range v.mapping {
			peer, ok := other.mapping[k]
			if !ok || !entry.Equal(peer) {
				return false
			}
		}
		return true
	case KindFunc:
		return true
	default:
		return false
	}
}

// Fingerprint renders a deterministic textual form of the Value, used by the
// renderer to deduplicate identical style objects. Function values render as
// an opaque marker.
func (v *Value) Fingerprint() string {
	var b strings.Builder
	v.fingerprint(&b)
	return b.String()
}

func (v *Value) fingerprint(b *strings.Builder) {
	switch v.Kind() {
	case KindNil:
		b.WriteString("~")
	case KindScalar:
		fmt.Fprintf(b, "%v", v.scalar)
	case KindSequence:
		b.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				b.WriteByte(',')
			}
			item.fingerprint(b)
		}
		b.WriteByte(']')
	case KindMapping:
		b.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(k)
			b.WriteByte(':')
			v.mapping[k].fingerprint(b)
		}
		b.WriteByte('}')
	case KindFunc:
		b.WriteString("fn()")
	}
}

// FromGo converts a decoded YAML/JSON-like Go value into a Value tree.
func FromGo(v any) *Value {
	switch val := v.(type) {
	case nil:
		return Nil()
	case *Value:
		return val
	case map[string]any:
		entries := make(map[string]*Value, len(val))
		for k, item := range val {
			entries[k] = FromGo(item)
		}
		return &Value{kind: KindMapping, mapping: entries}
	case map[any]any:
		entries := make(map[string]*Value, len(val))
		for k, item := range val {
			entries[fmt.Sprintf("%v", k)] = FromGo(item)
		}
		return &Value{kind: KindMapping, mapping: entries}
	case []any:
		items := make([]*Value, len(val))
		for i, item := range val {
			items[i] = FromGo(item)
		}
		return &Value{kind: KindSequence, seq: items}
	default:
		return Scalar(v)
	}
}

// ToGo converts a Value tree back into plain Go values. Function values
// convert to nil.
func (v *Value) ToGo() any {
	switch v.Kind() {
	case KindScalar:
		return v.scalar
	case KindSequence:
		items := make([]any, len(v.seq))
		for i, item := range v.seq {
			items[i] = item.ToGo()
		}
		return items
	case KindMapping:
		entries := make(map[string]any, len(v.mapping))
		for k, item := range v.mapping {
			entries[k] = item.ToGo()
		}
		return entries
	default:
		return nil
	}
}
