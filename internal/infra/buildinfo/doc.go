// Package buildinfo reports which build of bookcfg is running.
//
// Release builds set Version, Commit and BuildTime through ldflags:
//
//	go build -ldflags "-X github.com/yndnr/bookcfg-go/internal/infra/buildinfo.Version=v0.3.0"
//
// Anything left at its default is taken from the build information the
// Go toolchain embeds, so `go install` and local builds still report a
// module version, VCS revision and Go version.
package buildinfo
