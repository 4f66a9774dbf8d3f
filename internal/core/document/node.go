// Package document provides the in-memory representation of a book
// configuration file.
package document

import (
	"fmt"
	"math"
)

// Kind identifies the type of value held by a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMapping
)

// String returns the lowercase kind name.
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
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Pair is one key/value entry of a mapping node.
type Pair struct {
	Key   string
	Value *Node

	line   int
	column int
}

// Line returns the 1-based source line of the key, or 0 for built nodes.
func (p Pair) Line() int { return p.line }

// Node is a single value in a Document.
//
// The zero value is not useful; nodes come from Parse or the New*
// constructors.
type Node struct {
	kind Kind

	b bool
	i int64
	f float64
	s string

	items []*Node
	pairs []Pair
	index map[string]int

	line   int
	column int
}

// NewNull returns a null node.
func NewNull() *Node { return &Node{kind: KindNull} }

// NewBool returns a boolean node.
func NewBool(v bool) *Node { return &Node{kind: KindBool, b: v} }

// NewInt returns an integer node.
func NewInt(v int64) *Node { return &Node{kind: KindInt, i: v} }

// NewFloat returns a floating point node.
func NewFloat(v float64) *Node { return &Node{kind: KindFloat, f: v} }

// NewString returns a string node.
func NewString(v string) *Node { return &Node{kind: KindString, s: v} }

// NewSequence returns a sequence node holding items in order.
func NewSequence(items ...*Node) *Node {
	n := &Node{kind: KindSequence, items: make([]*Node, 0, len(items))}
	for _, it := range items {
		if it == nil {
			it = NewNull()
		}
		n.items = append(n.items, it)
	}
	return n
}

// Field is shorthand for building a Pair.
func Field(key string, value *Node) Pair {
	return Pair{Key: key, Value: value}
}

// NewMapping returns a mapping node with the given pairs in order.
// Duplicate keys are rejected.
func NewMapping(pairs ...Pair) (*Node, error) {
	n := &Node{
		kind:  KindMapping,
		pairs: make([]Pair, 0, len(pairs)),
		index: make(map[string]int, len(pairs)),
	}
	for _, p := range pairs {
		if _, dup := n.index[p.Key]; dup {
			return nil, fmt.Errorf("duplicate key %q", p.Key)
		}
		if p.Value == nil {
			p.Value = NewNull()
		}
		n.index[p.Key] = len(n.pairs)
		n.pairs = append(n.pairs, p)
	}
	return n, nil
}

// MustMapping is like NewMapping but panics on duplicate keys.
// It is meant for literals in code and tests.
func MustMapping(pairs ...Pair) *Node {
	n, err := NewMapping(pairs...)
	if err != nil {
		panic("document: " + err.Error())
	}
	return n
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Line returns the 1-based source line, or 0 for built nodes.
func (n *Node) Line() int { return n.line }

// Column returns the 1-based source column, or 0 for built nodes.
func (n *Node) Column() int { return n.column }

// IsNull reports whether the node is null.
func (n *Node) IsNull() bool { return n == nil || n.kind == KindNull }

// Bool returns the boolean value and whether the node is a bool.
func (n *Node) Bool() (bool, bool) {
	if n == nil || n.kind != KindBool {
		return false, false
	}
	return n.b, true
}

// Int returns the integer value and whether the node is an int.
func (n *Node) Int() (int64, bool) {
	if n == nil || n.kind != KindInt {
		return 0, false
	}
	return n.i, true
}

// Float returns the float value and whether the node is numeric.
// Integers are widened.
func (n *Node) Float() (float64, bool) {
	if n == nil {
		return 0, false
	}
	switch n.kind {
	case KindFloat:
		return n.f, true
	case KindInt:
		return float64(n.i), true
	default:
		return 0, false
	}
}

// Str returns the string value and whether the node is a string.
func (n *Node) Str() (string, bool) {
	if n == nil || n.kind != KindString {
		return "", false
	}
	return n.s, true
}

// Len returns the number of items or pairs; 0 for scalars.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.kind {
	case KindSequence:
		return len(n.items)
	case KindMapping:
		return len(n.pairs)
	default:
		return 0
	}
}

// Items returns a copy of the sequence items, or nil for non-sequences.
func (n *Node) Items() []*Node {
	if n == nil || n.kind != KindSequence {
		return nil
	}
	out := make([]*Node, len(n.items))
	copy(out, n.items)
	return out
}

// Index returns the i-th sequence item.
func (n *Node) Index(i int) (*Node, bool) {
	if n == nil || n.kind != KindSequence || i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// Pairs returns a copy of the mapping entries in source order.
func (n *Node) Pairs() []Pair {
	if n == nil || n.kind != KindMapping {
		return nil
	}
	out := make([]Pair, len(n.pairs))
	copy(out, n.pairs)
	return out
}

// Keys returns the mapping keys in source order.
func (n *Node) Keys() []string {
	if n == nil || n.kind != KindMapping {
		return nil
	}
	keys := make([]string, len(n.pairs))
	for i, p := range n.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Field returns the value stored under key in a mapping.
func (n *Node) Field(key string) (*Node, bool) {
	if n == nil || n.kind != KindMapping {
		return nil, false
	}
	i, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.pairs[i].Value, true
}

// pair returns the full entry for key.
func (n *Node) pair(key string) (Pair, bool) {
	if n == nil || n.kind != KindMapping {
		return Pair{}, false
	}
	i, ok := n.index[key]
	if !ok {
		return Pair{}, false
	}
	return n.pairs[i], true
}

// Equal reports whether two nodes hold the same value.
// Mapping order is significant; source positions are not.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a.IsNull() && b.IsNull()
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		if math.IsNaN(a.f) && math.IsNaN(b.f) {
			return true
		}
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindSequence:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for i := range a.pairs {
			if a.pairs[i].Key != b.pairs[i].Key {
				return false
			}
			if !Equal(a.pairs[i].Value, b.pairs[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Document is a parsed configuration file. Its root is always a mapping.
type Document struct {
	name string
	root *Node
}

// New wraps a mapping node as a Document.
func New(name string, root *Node) (*Document, error) {
	if root == nil {
		root = MustMapping()
	}
	if root.kind != KindMapping {
		return nil, fmt.Errorf("document root must be a mapping, got %s", root.kind)
	}
	return &Document{name: name, root: root}, nil
}

// Name returns the file name the document was parsed from.
func (d *Document) Name() string { return d.name }

// Root returns the root mapping node.
func (d *Document) Root() *Node { return d.root }

// Keys returns the top-level keys in source order.
func (d *Document) Keys() []string { return d.root.Keys() }

// Len returns the number of top-level keys.
func (d *Document) Len() int { return d.root.Len() }

// Equal reports whether two documents hold the same tree.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return Equal(d.root, other.root)
}
