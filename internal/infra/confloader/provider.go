package confloader

import (
	"errors"

	"github.com/yndnr/bookcfg-go/internal/core/document"
)

// ErrReadNotSupported is returned when Read is called on a bytes provider.
var ErrReadNotSupported = errors.New("confloader: Read not supported by bytes provider, use a parser")

// ErrMarshalNotSupported is returned by the document parser's Marshal.
// Documents are written with document.Document.Marshal instead.
var ErrMarshalNotSupported = errors.New("confloader: Marshal not supported by the document parser")

// bytesProvider hands raw bytes to a parser.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) {
	return b, nil
}

func (b bytesProvider) Read() (map[string]any, error) {
	return nil, ErrReadNotSupported
}

// documentParser is a koanf.Parser backed by document.Parse. It keeps the
// parsed document so the loader can return it alongside the merged map.
type documentParser struct {
	name string
	doc  *document.Document
}

func (p *documentParser) Unmarshal(b []byte) (map[string]any, error) {
	doc, err := document.Parse(p.name, b)
	if err != nil {
		return nil, err
	}
	p.doc = doc
	return doc.ToMap(), nil
}

func (p *documentParser) Marshal(map[string]any) ([]byte, error) {
	return nil, ErrMarshalNotSupported
}
