package document

import (
	"bytes"
	"encoding/json"
	"math"
)

// MarshalJSON writes the document as a JSON object with keys in source
// order.
func (d *Document) MarshalJSON() ([]byte, error) {
	return d.root.MarshalJSON()
}

// MarshalJSON writes the node as JSON. Mappings keep their key order.
// NaN and infinities are written as the strings ".nan", ".inf" and
// "-.inf".
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.kind {
	case KindSequence:
		buf.WriteByte('[')
		for i, it := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := it.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case KindMapping:
		buf.WriteByte('{')
		for i, p := range n.pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(p.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := p.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case KindFloat:
		// JSON has no NaN or infinity; use the YAML spelling as a string.
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) {
			b, _ := json.Marshal(formatFloat(n.f))
			buf.Write(b)
			return nil
		}
		b, err := json.Marshal(n.f)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	default:
		b, err := json.Marshal(n.Interface())
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}
}
