// Package api defines public API contracts for plugin-posix.
package api

// Caller is the dynamic boundary a foreign runtime binds to: operations are
// looked up by name and receive loosely typed arguments.
type Caller interface {
	Call(name string, args ...any) (any, error)
	Has(name string) bool
	Constants() map[string]int
}
