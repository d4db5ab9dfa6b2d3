// Package integration exercises the document core across package
// boundaries: fixture loading, Lua edit scripts, change publication and
// fixture dumps in one flow, the way the CLI drives them.
//
// The tests are in-process and fast; they differ from package tests only
// in that each scenario crosses several packages.
//
// Run with: go test ./internal/integration/...
package integration
