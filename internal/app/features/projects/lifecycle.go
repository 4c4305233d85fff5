// internal/app/features/projects/lifecycle.go
package projects

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/boardhub/boardhub/internal/app/features/errors"
	graphstore "github.com/boardhub/boardhub/internal/app/store/graphs"
	projectstore "github.com/boardhub/boardhub/internal/app/store/projects"
	"github.com/boardhub/boardhub/internal/app/system/auth"
	"github.com/boardhub/boardhub/internal/app/system/timeouts"
	"github.com/boardhub/boardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	Name string `json:"name"`
}

type idResponse struct {
	ID string `json:"id"`
}

// HandleCreate handles POST /project. The requester becomes the sole
// member, and the new id is appended to their project list.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.LogUnauthorized(w, r, "create project: no session user")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "create project: decode body failed", err, "Invalid request body.")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		h.ErrLog.LogBadRequest(w, r, "create project: empty name", nil, "Project name is required.")
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "create project: bad session user id", err, "Invalid user.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	project, err := h.Projects.Create(ctx, name, ownerID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create project: insert failed", err, "Something went wrong.")
		return
	}

	// Best-effort second write; the lists are not kept in a transaction.
	if err := h.Users.AppendProject(ctx, ownerID, project.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "create project: append to user list failed", err, "Something went wrong.")
		return
	}

	h.Log.Info("project created",
		zap.String("project_id", project.ID.Hex()),
		zap.String("owner_id", ownerID.Hex()))
	apierrors.JSON(w, http.StatusOK, idResponse{ID: project.ID.Hex()})
}

type projectSummary struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Image string             `json:"image"`
	Time  time.Time          `json:"time"`
	Like  bool               `json:"like"`
}

// ServeList handles GET /project: every project the session user is a
// member of.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.LogUnauthorized(w, r, "list projects: no session user")
		return
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "list projects: bad session user id", err, "Invalid user.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	projects, err := h.Projects.ListByMember(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list projects: query failed", err, "Something went wrong.")
		return
	}

	out := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectSummary{
			ID:    p.ID,
			Name:  p.Name,
			Image: p.Image,
			Time:  p.Time,
			Like:  p.Like,
		})
	}
	apierrors.JSON(w, http.StatusOK, out)
}

type detailResponse struct {
	Node []models.GraphItem `json:"node"`
	Edge []models.GraphItem `json:"edge"`
}

// ServeDetail handles GET /project/{projectID}: the parsed node and
// edge content, or nulls where the project has none.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "project detail: bad id", err, "Invalid project id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if stderrors.Is(err, projectstore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "project detail: not found", err, "Project not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "project detail: lookup failed", err, "Something went wrong.")
		return
	}

	var resp detailResponse
	if project.NodeID != nil {
		doc, err := h.Graphs.GetNode(ctx, *project.NodeID)
		switch {
		case err == nil:
			resp.Node = doc.Items
		case stderrors.Is(err, graphstore.ErrNotFound):
			// dangling reference, treat as no content
		default:
			h.ErrLog.LogServerError(w, r, "project detail: node fetch failed", err, "Something went wrong.")
			return
		}
	}
	if project.EdgeID != nil {
		doc, err := h.Graphs.GetEdge(ctx, *project.EdgeID)
		switch {
		case err == nil:
			resp.Edge = doc.Items
		case stderrors.Is(err, graphstore.ErrNotFound):
			// dangling reference, treat as no content
		default:
			h.ErrLog.LogServerError(w, r, "project detail: edge fetch failed", err, "Something went wrong.")
			return
		}
	}

	apierrors.JSON(w, http.StatusOK, resp)
}

type renameRequest struct {
	Name string `json:"name"`
}

// HandleRename handles PATCH /project/{projectID}. Last write wins;
// concurrent renames are not detected.
func (h *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "rename project: bad id", err, "Invalid project id.")
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "rename project: decode body failed", err, "Invalid request body.")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		h.ErrLog.LogBadRequest(w, r, "rename project: empty name", nil, "Project name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	project, err := h.Projects.Rename(ctx, projectID, name)
	if err != nil {
		if stderrors.Is(err, projectstore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "rename project: not found", err, "Project not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "rename project: update failed", err, "Something went wrong.")
		return
	}

	apierrors.JSON(w, http.StatusOK, idResponse{ID: project.ID.Hex()})
}

// HandleDelete handles DELETE /project/{projectID}: cascade to the node
// and edge documents, delete the project, then remove the id from the
// deleting user's list. Other members' lists are left untouched; that
// asymmetry is part of the documented contract.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.LogUnauthorized(w, r, "delete project: no session user")
		return
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "delete project: bad session user id", err, "Invalid user.")
		return
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "delete project: bad id", err, "Invalid project id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if stderrors.Is(err, projectstore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "delete project: not found", err, "Project not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "delete project: lookup failed", err, "Something went wrong.")
		return
	}

	if err := h.Graphs.DeleteForProject(ctx, project.NodeID, project.EdgeID); err != nil {
		h.ErrLog.LogServerError(w, r, "delete project: graph cascade failed", err, "Something went wrong.")
		return
	}
	if _, err := h.Projects.Delete(ctx, projectID); err != nil {
		h.ErrLog.LogServerError(w, r, "delete project: delete failed", err, "Something went wrong.")
		return
	}
	if err := h.Users.RemoveProject(ctx, userID, projectID); err != nil {
		h.ErrLog.LogServerError(w, r, "delete project: remove from user list failed", err, "Something went wrong.")
		return
	}

	h.Log.Info("project deleted",
		zap.String("project_id", projectID.Hex()),
		zap.String("user_id", userID.Hex()))
	apierrors.Message(w, http.StatusOK, "Project, its nodes, edges and reference from user were successfully deleted.")
}
