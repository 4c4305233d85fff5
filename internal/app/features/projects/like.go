// internal/app/features/projects/like.go
package projects

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	apierrors "github.com/boardhub/boardhub/internal/app/features/errors"
	projectstore "github.com/boardhub/boardhub/internal/app/store/projects"
	"github.com/boardhub/boardhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type likeRequest struct {
	ProjectID string `json:"projectId"`
	IsLike    bool   `json:"isLike"`
}

type likeResponse struct {
	Like bool `json:"like"`
}

// HandleLike handles PATCH /project/like. The stored flag always
// reflects the last call; concurrent toggles race with last write wins.
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	var req likeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "like project: decode body failed", err, "Invalid request body.")
		return
	}
	projectID, err := primitive.ObjectIDFromHex(req.ProjectID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "like project: bad id", err, "Invalid project id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	stored, err := h.Projects.SetLike(ctx, projectID, req.IsLike)
	if err != nil {
		if stderrors.Is(err, projectstore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "like project: not found", err, "Project not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "like project: update failed", err, "Something went wrong.")
		return
	}

	apierrors.JSON(w, http.StatusOK, likeResponse{Like: stored})
}
