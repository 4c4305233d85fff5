// internal/app/features/graphs/handler.go
package graphs

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	apierrors "github.com/boardhub/boardhub/internal/app/features/errors"
	graphstore "github.com/boardhub/boardhub/internal/app/store/graphs"
	projectstore "github.com/boardhub/boardhub/internal/app/store/projects"
	"github.com/boardhub/boardhub/internal/app/system/timeouts"
	"github.com/boardhub/boardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler persists a project's serialized node and edge content. Each
// project has at most one document of each kind; saving replaces it.
type Handler struct {
	Projects *projectstore.Store
	Graphs   *graphstore.Store
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projectstore.New(db),
		Graphs:   graphstore.New(db),
		ErrLog:   errLog,
		Log:      logger,
	}
}

type saveRequest struct {
	Items []models.GraphItem `json:"items"`
}

type saveResponse struct {
	ID string `json:"id"`
}

// HandleSaveNode handles POST /node/{projectID}.
func (h *Handler) HandleSaveNode(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "node")
}

// HandleSaveEdge handles POST /edge/{projectID}.
func (h *Handler) HandleSaveEdge(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "edge")
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request, kind string) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "save "+kind+": bad project id", err, "Invalid project id.")
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "save "+kind+": decode body failed", err, "Invalid request body.")
		return
	}
	if err := models.ValidateItems(req.Items); err != nil {
		h.ErrLog.LogBadRequest(w, r, "save "+kind+": invalid items", err, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		if stderrors.Is(err, projectstore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "save "+kind+": project not found", err, "Project not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "save "+kind+": project lookup failed", err, "Something went wrong.")
		return
	}

	var docID primitive.ObjectID
	if kind == "node" {
		docID, err = h.Graphs.SaveNode(ctx, projectID, req.Items)
	} else {
		docID, err = h.Graphs.SaveEdge(ctx, projectID, req.Items)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "save "+kind+": upsert failed", err, "Something went wrong.")
		return
	}

	if kind == "node" {
		err = h.Projects.SetNodeID(ctx, projectID, docID)
	} else {
		err = h.Projects.SetEdgeID(ctx, projectID, docID)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "save "+kind+": persist reference failed", err, "Something went wrong.")
		return
	}

	h.Log.Info("graph content saved",
		zap.String("kind", kind),
		zap.String("project_id", projectID.Hex()),
		zap.Int("items", len(req.Items)))
	apierrors.JSON(w, http.StatusOK, saveResponse{ID: docID.Hex()})
}
