package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/bookcfg-go/internal/core/document"
)

// YAMLFormatter formats data as YAML.
type YAMLFormatter struct{}

// Format writes data as block YAML with two-space indentation.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	doc, err := asDocument(data)
	if err != nil {
		return err
	}
	if doc == nil {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}

	out, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// asDocument returns data as an ordered document. Structs and maps are
// converted through their JSON form so field order and json tags are
// kept. It returns nil for values that are not objects.
func asDocument(data any) (*document.Document, error) {
	switch v := data.(type) {
	case *document.Document:
		return v, nil
	case *document.Node:
		if v.Kind() == document.KindMapping {
			return document.New("output", v)
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if len(b) == 0 || b[0] != '{' {
		return nil, nil
	}
	doc, err := document.Parse("output", b)
	if err != nil {
		return nil, fmt.Errorf("convert to document: %w", err)
	}
	return doc, nil
}
