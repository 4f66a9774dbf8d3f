// Package confloader merges configuration sources into a typed struct.
//
// It wraps koanf. A parsed configuration document is the base layer;
// environment variables and explicit overrides are merged on top of it
// before the result is decoded with mapstructure.
//
// Priority (highest to lowest):
//
//  1. Overrides (--set key=value)
//  2. Environment variables
//  3. Configuration file
//  4. Default values (the struct passed to Unmarshal)
//
// Environment variables use PREFIX + key path, upper-cased, with a double
// underscore between levels: BOOKCFG_EXECUTE__EXECUTE_NOTEBOOKS=off sets
// execute.execute_notebooks. Single underscores stay part of the key.
//
// Watcher reports edits, removals and renames of individual files so that
// callers can reload.
package confloader
