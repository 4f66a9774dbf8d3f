// Package document provides the in-memory representation of a book
// configuration file.
package document

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Marshal serializes the document as canonical YAML with two-space
// indentation. Parse(Marshal(d)) yields a document Equal to d.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root.yamlNode()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML lets a Document be embedded in values passed to yaml.v3.
func (d *Document) MarshalYAML() (any, error) {
	return d.root.yamlNode(), nil
}

// MarshalYAML lets a Node be embedded in values passed to yaml.v3.
func (n *Node) MarshalYAML() (any, error) {
	return n.yamlNode(), nil
}

// ToMap returns the document as nested plain Go values.
func (d *Document) ToMap() map[string]any {
	m, _ := d.root.Interface().(map[string]any)
	return m
}

// Interface returns the node as a plain Go value: nil, bool, int64,
// float64, string, []any or map[string]any.
func (n *Node) Interface() any {
	if n == nil {
		return nil
	}
	switch n.kind {
	case KindBool:
		return n.b
	case KindInt:
		return n.i
	case KindFloat:
		return n.f
	case KindString:
		return n.s
	case KindSequence:
		out := make([]any, len(n.items))
		for i, it := range n.items {
			out[i] = it.Interface()
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(n.pairs))
		for _, p := range n.pairs {
			out[p.Key] = p.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// String renders a scalar the way it would appear in YAML. Collections
// render as flow YAML.
func (n *Node) String() string {
	if n == nil {
		return "null"
	}
	switch n.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(n.b)
	case KindInt:
		return strconv.FormatInt(n.i, 10)
	case KindFloat:
		return formatFloat(n.f)
	case KindString:
		return n.s
	default:
		y := n.yamlNode()
		y.Style = yaml.FlowStyle
		out, err := yaml.Marshal(y)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))
	}
}

func (n *Node) yamlNode() *yaml.Node {
	if n == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	switch n.kind {
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(n.b)}
	case KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(n.i, 10)}
	case KindFloat:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatFloat(n.f)}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.s}
	case KindSequence:
		y := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range n.items {
			y.Content = append(y.Content, it.yamlNode())
		}
		return y
	case KindMapping:
		y := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, p := range n.pairs {
			y.Content = append(y.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
				p.Value.yamlNode(),
			)
		}
		return y
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// formatFloat keeps a decimal point or exponent so the value re-parses
// as a float rather than an int.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
