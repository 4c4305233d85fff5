// internal/app/features/graphs/routes.go
package graphs

import (
	"github.com/boardhub/boardhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// NodeRoutes wires the /node surface.
func NodeRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Post("/{projectID}", h.HandleSaveNode)
	return r
}

// EdgeRoutes wires the /edge surface.
func EdgeRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Post("/{projectID}", h.HandleSaveEdge)
	return r
}
