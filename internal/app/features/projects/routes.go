// internal/app/features/projects/routes.go
package projects

import (
	"github.com/boardhub/boardhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the /project surface.
//
// The join-link route shares its first segment with the project-id
// routes, so it matches on a regex that requires an '@'; ObjectID hex
// never contains one, and chi tries regex params before plain params.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public: join links arrive from email without a session, and
	// board detail is readable by link.
	r.Get("/{newUserEmail:[^/]+@[^/]+}/{projectID}", h.HandleAccept)
	r.Get("/{projectID}", h.ServeDetail)
	r.Patch("/{projectID}", h.HandleRename)
	r.Patch("/like", h.HandleLike)

	// Authenticated
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Get("/", h.ServeList)
		pr.Delete("/{projectID}", h.HandleDelete)
		pr.Post("/{projectID}", h.HandleInvite)
		pr.Get("/report/{projectID}", h.ServeReport)
		pr.Patch("/thumbnail", h.HandleThumbnail)
	})

	return r
}
