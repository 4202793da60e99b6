package config

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindScalar is a leaf value: string, bool, integer, float, or null.
	KindScalar Kind = iota
	// KindSequence is an ordered list of values.
	KindSequence
	// KindMap is a nested key/value tree.
	KindMap
)

// String returns the kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is one node of a configuration tree. Exactly one variant field is
// meaningful, selected by Kind.
type Value struct {
	Kind     Kind
	Scalar   any     // Kind == KindScalar
	Sequence []Value // Kind == KindSequence
	Map      Tree    // Kind == KindMap
}

// Tree is a string-keyed configuration mapping. Key order carries no
// meaning; ordering that matters (the node inventory) lives in sequences.
type Tree map[string]Value

// ScalarValue wraps a scalar in a Value.
func ScalarValue(v any) Value {
	return Value{Kind: KindScalar, Scalar: v}
}

// SequenceValue wraps values into a sequence Value.
func SequenceValue(items ...Value) Value {
	return Value{Kind: KindSequence, Sequence: items}
}

// MapValue wraps a Tree in a Value.
func MapValue(t Tree) Value {
	return Value{Kind: KindMap, Map: t}
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	switch v.Kind {
	case KindSequence:
		items := make([]Value, len(v.Sequence))
		for i, item := range v.Sequence {
			items[i] = item.Clone()
		}
		return Value{Kind: KindSequence, Sequence: items}
	case KindMap:
		return Value{Kind: KindMap, Map: v.Map.Clone()}
	default:
		return v
	}
}

// Clone returns a deep copy of the tree. A nil tree clones to an empty one
// so the copy is always safe to assign into.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for key, value := range t {
		out[key] = value.Clone()
	}
	return out
}

// Get returns the value stored at key.
func (t Tree) Get(key string) (Value, bool) {
	v, ok := t[key]
	return v, ok
}

// GetPath walks nested maps and returns the value at the given key path.
func (t Tree) GetPath(path ...string) (Value, bool) {
	current := t
	for i, key := range path {
		v, ok := current[key]
		if !ok {
			return Value{}, false
		}
		if i == len(path)-1 {
			return v, true
		}
		if v.Kind != KindMap {
			return Value{}, false
		}
		current = v.Map
	}
	return Value{}, false
}

// AsString returns the scalar as a string.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindScalar {
		return "", false
	}
	s, ok := v.Scalar.(string)
	return s, ok
}

// AsBool returns the scalar as a bool. Only real booleans qualify; truthy
// strings and numbers do not.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindScalar {
		return false, false
	}
	b, ok := v.Scalar.(bool)
	return b, ok
}

// AsInt returns the scalar as an int when it holds an integral number.
func (v Value) AsInt() (int, bool) {
	if v.Kind != KindScalar {
		return 0, false
	}
	switch n := v.Scalar.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) {
			return int(n), true
		}
	}
	return 0, false
}

// AsStringSlice returns a sequence whose items are all scalar strings.
func (v Value) AsStringSlice() ([]string, bool) {
	if v.Kind != KindSequence {
		return nil, false
	}
	out := make([]string, 0, len(v.Sequence))
	for _, item := range v.Sequence {
		s, ok := item.AsString()
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// UnmarshalYAML decodes an arbitrary YAML node into the tagged representation.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var scalar any
		if err := node.Decode(&scalar); err != nil {
			return err
		}
		*v = Value{Kind: KindScalar, Scalar: scalar}
		return nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			var item Value
			if err := child.Decode(&item); err != nil {
				return err
			}
			items = append(items, item)
		}
		*v = Value{Kind: KindSequence, Sequence: items}
		return nil
	case yaml.MappingNode:
		var t Tree
		if err := node.Decode(&t); err != nil {
			return err
		}
		*v = Value{Kind: KindMap, Map: t}
		return nil
	case yaml.AliasNode:
		return v.UnmarshalYAML(node.Alias)
	default:
		return fmt.Errorf("unsupported YAML node kind %v at line %d", node.Kind, node.Line)
	}
}

// MarshalYAML re-encodes the tagged representation as plain YAML.
func (v Value) MarshalYAML() (any, error) {
	switch v.Kind {
	case KindScalar:
		return v.Scalar, nil
	case KindSequence:
		return v.Sequence, nil
	case KindMap:
		return v.Map, nil
	default:
		return nil, fmt.Errorf("unknown value kind %v", v.Kind)
	}
}

// FromMap converts plain nested maps, slices, and scalars into a Tree.
// Intended for building trees in code; YAML input goes through UnmarshalYAML.
func FromMap(m map[string]any) Tree {
	t := make(Tree, len(m))
	for key, value := range m {
		t[key] = fromAny(value)
	}
	return t
}

func fromAny(v any) Value {
	switch x := v.(type) {
	case map[string]any:
		return MapValue(FromMap(x))
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			items[i] = fromAny(item)
		}
		return Value{Kind: KindSequence, Sequence: items}
	case Tree:
		return MapValue(x.Clone())
	case Value:
		return x.Clone()
	default:
		return ScalarValue(v)
	}
}
