// Package main provides the entry point for bookcfg.
//
// bookcfg loads a book's _config.yml, reports structural errors with
// file and line, and prints the document, the merged view or the typed
// configuration:
//
//   - validate: load and verify, printing schema warnings
//   - show: print the file, merged view or typed configuration
//   - get, keys: query the merged configuration
//   - watch: reload on change, optionally serving /metrics
//
// Usage:
//
//	bookcfg validate docs/_config.yml
//	bookcfg --set execute.execute_notebooks=off show --typed -o json docs/_config.yml
//	bookcfg get docs/_config.yml sphinx.config.intersphinx_mapping
//	bookcfg watch --metrics-addr :9090 docs/_config.yml
//
// Environment variables prefixed with BOOKCFG_ override file values;
// a double underscore separates nesting levels.
package main
