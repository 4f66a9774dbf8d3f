package output

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"text/tabwriter"

	"github.com/yndnr/bookcfg-go/internal/core/document"
)

// TableFormatter formats data as an aligned table.
type TableFormatter struct {
	NoHeaders bool
	// Lines adds the source line of each key for documents parsed from
	// a file.
	Lines bool
}

// Format formats data as a table.
// Supports: Table, documents and objects (one row per flattened key),
// and slices (one row per element).
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	// If data is already a Table, render it directly
	if t, ok := data.(*Table); ok {
		return t.RenderWithOptions(w, f.NoHeaders)
	}
	if t, ok := data.(Table); ok {
		return t.RenderWithOptions(w, f.NoHeaders)
	}

	doc, err := asDocument(data)
	if err != nil {
		return err
	}
	if doc != nil {
		return f.documentTable(doc).RenderWithOptions(w, f.NoHeaders)
	}

	table, err := sliceToTable(data)
	if err != nil {
		return err
	}
	return table.RenderWithOptions(w, f.NoHeaders)
}

func (f *TableFormatter) documentTable(doc *document.Document) *Table {
	table := &Table{Headers: []string{"KEY", "VALUE"}}
	if f.Lines {
		table.Headers = append(table.Headers, "LINE")
	}
	for _, e := range doc.Flatten() {
		row := []string{e.Key(), cell(e.Value)}
		if f.Lines {
			row = append(row, strconv.Itoa(e.Line))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// sliceToTable renders each element of a slice as a single-column row.
func sliceToTable(data any) (*Table, error) {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return &Table{Headers: []string{"VALUE"}, Rows: [][]string{{fmt.Sprint(data)}}}, nil
	}

	table := &Table{Headers: []string{"VALUE"}}
	for i := 0; i < v.Len(); i++ {
		n, err := document.FromValue(v.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, []string{cell(n)})
	}
	return table, nil
}

// cell formats a value for display. Empty strings show as "-".
func cell(n *document.Node) string {
	if n.Kind() == document.KindString {
		if s, _ := n.Str(); s == "" {
			return "-"
		}
	}
	return n.String()
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		writeRow(tw, t.Headers)
	}
	for _, row := range t.Rows {
		writeRow(tw, row)
	}

	return tw.Flush()
}

func writeRow(w io.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			io.WriteString(w, "\t")
		}
		io.WriteString(w, c)
	}
	io.WriteString(w, "\n")
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders sets the table headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}
