// Package document provides the in-memory representation of a book
// configuration file.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/bookcfg-go/internal/core/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// yamlLineErr matches the "yaml: line N: reason" messages of yaml.v3.
var yamlLineErr = regexp.MustCompile(`^yaml: line (\d+): (.*)$`)

// Parse builds a Document from YAML text.
//
// The name is only used in error messages. On failure no partial
// document is returned; the error is a *domain.EncodingError or a
// *domain.ParseError.
func Parse(name string, data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if off := invalidUTF8Offset(data); off >= 0 {
		line, col := lineColumn(data, off)
		return nil, &domain.EncodingError{
			Position: domain.Position{File: name, Line: line, Column: col},
			Offset:   off,
		}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))

	var top yaml.Node
	if err := dec.Decode(&top); err != nil {
		if errors.Is(err, io.EOF) {
			return New(name, MustMapping())
		}
		return nil, SyntaxError(name, err)
	}

	var next yaml.Node
	switch err := dec.Decode(&next); {
	case err == nil:
		return nil, &domain.ParseError{
			Position: domain.Position{File: name, Line: next.Line},
			Reason:   "multiple documents in one file are not supported",
		}
	case !errors.Is(err, io.EOF):
		return nil, SyntaxError(name, err)
	}

	c := converter{name: name}
	root, err := c.document(&top)
	if err != nil {
		return nil, err
	}
	return &Document{name: name, root: root}, nil
}

// ParseScalar coerces an unquoted scalar the same way Parse does,
// returning a plain Go value (nil, bool, int64, float64 or string).
func ParseScalar(s string) any {
	var y yaml.Node
	if err := yaml.Unmarshal([]byte(s), &y); err != nil || len(y.Content) != 1 || y.Content[0].Kind != yaml.ScalarNode {
		return s
	}
	c := converter{}
	n, err := c.scalar(y.Content[0])
	if err != nil {
		return s
	}
	return n.Interface()
}

type converter struct {
	name string
}

func (c *converter) errorf(y *yaml.Node, format string, args ...any) error {
	return &domain.ParseError{
		Position: domain.Position{File: c.name, Line: y.Line, Column: y.Column},
		Reason:   fmt.Sprintf(format, args...),
	}
}

func (c *converter) document(y *yaml.Node) (*Node, error) {
	if y.Kind == yaml.DocumentNode {
		if len(y.Content) == 0 {
			return MustMapping(), nil
		}
		y = y.Content[0]
	}
	if y.Kind == yaml.ScalarNode && y.ShortTag() == "!!null" {
		return MustMapping(), nil
	}
	if y.Kind != yaml.MappingNode {
		return nil, c.errorf(y, "top level must be a mapping of keys to values")
	}
	return c.node(y)
}

func (c *converter) node(y *yaml.Node) (*Node, error) {
	if y.Anchor != "" {
		return nil, c.errorf(y, "anchors are not supported (&%s)", y.Anchor)
	}

	var (
		n   *Node
		err error
	)
	switch y.Kind {
	case yaml.AliasNode:
		return nil, c.errorf(y, "aliases are not supported (*%s)", y.Value)
	case yaml.ScalarNode:
		n, err = c.scalar(y)
	case yaml.SequenceNode:
		n, err = c.sequence(y)
	case yaml.MappingNode:
		n, err = c.mapping(y)
	default:
		return nil, c.errorf(y, "unexpected YAML node")
	}
	if err != nil {
		return nil, err
	}
	n.line, n.column = y.Line, y.Column
	return n, nil
}

func (c *converter) scalar(y *yaml.Node) (*Node, error) {
	switch tag := y.ShortTag(); tag {
	case "!!null":
		return NewNull(), nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, c.errorf(y, "invalid boolean %q", y.Value)
		}
		return NewBool(b), nil
	case "!!int":
		var i int64
		if err := y.Decode(&i); err == nil {
			return NewInt(i), nil
		}
		// Beyond int64: keep the magnitude as a float.
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, c.errorf(y, "invalid integer %q", y.Value)
		}
		return NewFloat(f), nil
	case "!!float":
		var f float64
		if err := y.Decode(&f); err != nil {
			return nil, c.errorf(y, "invalid number %q", y.Value)
		}
		return NewFloat(f), nil
	case "!!str", "!!timestamp", "!!binary":
		return NewString(y.Value), nil
	default:
		return nil, c.errorf(y, "unsupported tag %s", tag)
	}
}

func (c *converter) sequence(y *yaml.Node) (*Node, error) {
	items := make([]*Node, 0, len(y.Content))
	for _, child := range y.Content {
		it, err := c.node(child)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return &Node{kind: KindSequence, items: items}, nil
}

func (c *converter) mapping(y *yaml.Node) (*Node, error) {
	n := &Node{
		kind:  KindMapping,
		pairs: make([]Pair, 0, len(y.Content)/2),
		index: make(map[string]int, len(y.Content)/2),
	}
	for i := 0; i+1 < len(y.Content); i += 2 {
		k, v := y.Content[i], y.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, c.errorf(k, "mapping keys must be plain scalars")
		}
		switch k.ShortTag() {
		case "!!merge":
			return nil, c.errorf(k, "merge keys (<<) are not supported")
		case "!!null":
			return nil, c.errorf(k, "mapping key cannot be null")
		}
		if k.Anchor != "" {
			return nil, c.errorf(k, "anchors are not supported (&%s)", k.Anchor)
		}
		if prev, dup := n.index[k.Value]; dup {
			return nil, c.errorf(k, "duplicate key %q (first defined on line %d)", k.Value, n.pairs[prev].line)
		}
		val, err := c.node(v)
		if err != nil {
			return nil, err
		}
		n.index[k.Value] = len(n.pairs)
		n.pairs = append(n.pairs, Pair{Key: k.Value, Value: val, line: k.Line, column: k.Column})
	}
	return n, nil
}

// SyntaxError converts a YAML decoder error for the file name into a
// *domain.ParseError, taking the line from the message when present.
func SyntaxError(name string, err error) error {
	msg := err.Error()
	pos := domain.Position{File: name}
	if m := yamlLineErr.FindStringSubmatch(msg); m != nil {
		pos.Line, _ = strconv.Atoi(m[1])
		msg = m[2]
	} else {
		msg = strings.TrimPrefix(msg, "yaml: ")
	}
	return &domain.ParseError{Position: pos, Reason: msg, Cause: err}
}

// invalidUTF8Offset returns the byte offset of the first invalid UTF-8
// sequence, or -1 if data is valid.
func invalidUTF8Offset(data []byte) int {
	if utf8.Valid(data) {
		return -1
	}
	for off := 0; off < len(data); {
		r, size := utf8.DecodeRune(data[off:])
		if r == utf8.RuneError && size <= 1 {
			return off
		}
		off += size
	}
	return -1
}

// lineColumn converts a byte offset into a 1-based line and column.
func lineColumn(data []byte, off int) (int, int) {
	before := data[:off]
	line := bytes.Count(before, []byte{'\n'}) + 1
	col := off - bytes.LastIndexByte(before, '\n')
	return line, col
}
