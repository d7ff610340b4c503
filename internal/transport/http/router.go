// Package httpapi wires the public HTTP surface. Handlers stay thin and
// delegate to the domain services; transport concerns live here and in the
// platform middleware.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	frameworkhandler "github.com/phi-beta/DIACC-PCTF/internal/framework/handler"
	"github.com/phi-beta/DIACC-PCTF/internal/platform/middleware"
	registryhandler "github.com/phi-beta/DIACC-PCTF/internal/trustregistry/handler"
)

// NewRouter assembles the API router from the domain handlers.
func NewRouter(logger *slog.Logger, registry *registryhandler.Handler, framework *frameworkhandler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	registry.Register(r)
	framework.Register(r)
	return r
}
