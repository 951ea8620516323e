// Package api defines public API contracts for plugin-posix.
package api

import "net/http"

// Health exposes liveness and readiness of the facade's host process.
type Health interface {
	http.Handler
	AddLivenessCheck(name string, check func() error)
	AddReadinessCheck(name string, check func() error)
}
