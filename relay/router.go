package relay

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts rl at its mount point next to /healthz and /metrics.
func NewRouter(rl *Relay) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", rl.Metrics().Handler())

	r.Handle(rl.cfg.MountPath, rl)
	r.Handle(rl.cfg.MountPath+"/*", rl)
	return r
}
