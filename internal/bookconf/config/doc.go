// Package config defines the typed view of a book configuration.
//
// This package defines the configuration structure and its rules:
//
//   - spec.go: Config struct definition (koanf tags)
//   - default.go: Default configuration values
//   - schema.go: Recognised key tree and unknown/missing key warnings
//   - verify.go: Value validation (enums, URLs, paths)
//   - sanitize.go: Credential masking for display and logs
//   - placeholder.go: Build-time __NAME__ placeholder expansion
//   - intersphinx.go: Cross-project reference targets
//
// Values are filled by internal/infra/confloader from the parsed
// document, environment variables and explicit overrides.
package config
