package document

import (
	"strconv"
	"strings"
)

// Get walks the document along path. Mapping steps use keys; sequence
// steps use decimal indexes.
func (d *Document) Get(path ...string) (*Node, bool) {
	n := d.root
	for _, step := range path {
		switch n.kind {
		case KindMapping:
			next, ok := n.Field(step)
			if !ok {
				return nil, false
			}
			n = next
		case KindSequence:
			i, err := strconv.Atoi(step)
			if err != nil {
				return nil, false
			}
			next, ok := n.Index(i)
			if !ok {
				return nil, false
			}
			n = next
		default:
			return nil, false
		}
	}
	return n, true
}

// Lookup is Get with a dotted path such as "sphinx.config.issues_github_path".
// An empty path returns the root.
func (d *Document) Lookup(path string) (*Node, bool) {
	if path == "" {
		return d.root, true
	}
	return d.Get(strings.Split(path, ".")...)
}

// Has reports whether the dotted path exists.
func (d *Document) Has(path string) bool {
	_, ok := d.Lookup(path)
	return ok
}

// LineOf returns the source line of the key at the end of path, or 0.
func (d *Document) LineOf(path ...string) int {
	if len(path) == 0 {
		return 0
	}
	parent, ok := d.Get(path[:len(path)-1]...)
	if !ok {
		return 0
	}
	p, ok := parent.pair(path[len(path)-1])
	if !ok {
		return 0
	}
	return p.line
}

// Entry is one leaf of a flattened document.
type Entry struct {
	Path  []string
	Value *Node
	Line  int
}

// Key returns the dotted form of the entry path.
func (e Entry) Key() string { return strings.Join(e.Path, ".") }

// Walk visits every mapping entry depth-first in source order. The
// callback returns false to skip the children of that entry.
func (d *Document) Walk(fn func(path []string, p Pair) bool) {
	walk(d.root, nil, fn)
}

func walk(n *Node, prefix []string, fn func([]string, Pair) bool) {
	for _, p := range n.pairs {
		path := append(append([]string(nil), prefix...), p.Key)
		if !fn(path, p) {
			continue
		}
		if p.Value.kind == KindMapping {
			walk(p.Value, path, fn)
		}
	}
}

// Flatten returns every non-mapping value with its dotted path, in
// source order. Empty mappings appear as entries of their own.
func (d *Document) Flatten() []Entry {
	var out []Entry
	d.Walk(func(path []string, p Pair) bool {
		if p.Value.kind != KindMapping || p.Value.Len() == 0 {
			out = append(out, Entry{Path: path, Value: p.Value, Line: p.line})
		}
		return true
	})
	return out
}
