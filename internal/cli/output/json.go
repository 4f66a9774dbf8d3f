package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter writes data as indented JSON. HTML is not escaped because
// book settings such as html.extra_navbar hold markup.
type JSONFormatter struct {
	// Indent defaults to two spaces.
	Indent string
}

// Format encodes data fully before writing so that a failed encode
// leaves w untouched.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	indent := f.Indent
	if indent == "" {
		indent = "  "
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
