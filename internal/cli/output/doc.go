// Package output renders command results for bookcfg.
//
//   - formatter.go: Formatter interface and factory
//   - yaml.go: canonical YAML (the default for documents)
//   - json.go: indented JSON
//   - table.go: KEY/VALUE tables of flattened keys
//
// Documents keep their key order in every format. Other values are
// rendered through their JSON form, so json struct tags decide the key
// names.
package output
