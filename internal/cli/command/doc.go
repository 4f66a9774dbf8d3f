// Package command provides the bookcfg command definitions.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, logger setup
//   - validate.go: Load and verify a configuration file
//   - show.go: Print the document, merged view or typed configuration
//   - query.go: Single value lookup and key listing
//   - watch.go: Reload on change with an optional status server
//   - version.go: Build information
//
// Commands follow a consistent pattern of parsing flags, loading the
// book through the bookconf package and formatting output to the app
// writer.
package command
