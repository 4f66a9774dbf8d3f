// Package document provides the in-memory representation of a book
// configuration file.
//
// A Document is an ordered tree of nodes:
//
//   - node.go: Node kinds, accessors and in-memory builders
//   - parse.go: YAML text to Document (via gopkg.in/yaml.v3 nodes)
//   - marshal.go: Document to canonical YAML and plain Go values
//   - lookup.go: dotted-path access
//   - fingerprint.go: content hashing for change detection
//
// Documents are immutable once built. Sibling key order is kept so that
// a parsed file serializes back in the same order, but order never
// affects lookups.
package document
