package adapter

import (
	"net/http"

	"github.com/srediag/plugin-posix/api"
)

// MountHealth serves h's probes on mux under prefix, e.g. "/healthz"
// gives "/healthz/live" and "/healthz/ready".
func MountHealth(mux *http.ServeMux, prefix string, h api.Health) {
	mux.Handle(prefix+"/", http.StripPrefix(prefix, h))
}
