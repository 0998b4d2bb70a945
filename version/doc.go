// Package version reports build information for the systolic binary.
//
// Version, commit and build time are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/systolic/version.Version=1.0.0" ./cmd/systolic
package version
