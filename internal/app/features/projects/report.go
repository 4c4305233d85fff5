// internal/app/features/projects/report.go
package projects

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	apierrors "github.com/boardhub/boardhub/internal/app/features/errors"
	graphstore "github.com/boardhub/boardhub/internal/app/store/graphs"
	projectstore "github.com/boardhub/boardhub/internal/app/store/projects"
	"github.com/boardhub/boardhub/internal/app/system/auth"
	"github.com/boardhub/boardhub/internal/app/system/timeouts"
	"github.com/boardhub/boardhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// textSanitizer strips any markup out of user-authored node text before
// it is fed to the completion service.
var textSanitizer = bluemonday.StrictPolicy()

type reportResponse struct {
	Title     string   `json:"title"`
	Presenter string   `json:"presenter"`
	Content   string   `json:"content"`
	URLs      []string `json:"urls"`
}

// ServeReport handles GET /project/report/{projectID}: extract the
// node content, run it through completion and translation, and answer
// with the cleaned script. Each step fails with a single clean error
// response; nothing flows downstream after a failure.
func (h *Handler) ServeReport(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.LogUnauthorized(w, r, "report: no session user")
		return
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "report: bad project id", err, "Invalid project id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.External())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if stderrors.Is(err, projectstore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "report: project not found", err, "Project not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "report: project lookup failed", err, "Something went wrong.")
		return
	}
	if project.NodeID == nil {
		h.ErrLog.LogNotFound(w, r, "report: project has no node document", nil, "Project has no content.")
		return
	}

	doc, err := h.Graphs.GetNode(ctx, *project.NodeID)
	if err != nil {
		if stderrors.Is(err, graphstore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "report: node document missing", err, "Project has no content.")
			return
		}
		h.ErrLog.LogServerError(w, r, "report: node fetch failed", err, "Something went wrong.")
		return
	}

	prompt, urls := extractReportInputs(doc.Items)
	if prompt == "" {
		h.ErrLog.LogBadRequest(w, r, "report: no text content to summarize", nil, "Project has no text content.")
		return
	}

	completed, err := h.Completion.Generate(ctx, prompt)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "report: completion failed", err, "Report generation failed.")
		return
	}

	translated, err := h.Translate.Translate(ctx, completed)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "report: translation failed", err, "Report generation failed.")
		return
	}

	h.Log.Info("report generated",
		zap.String("project_id", projectID.Hex()),
		zap.Int("url_count", len(urls)))
	apierrors.JSON(w, http.StatusOK, reportResponse{
		Title:     project.Name,
		Presenter: user.Name,
		Content:   cleanReportText(translated),
		URLs:      urls,
	})
}

// extractReportInputs walks the node items in order, collecting every
// sanitized text-bearing field into a comma-joined prompt and every URL
// into its own list. Untagged legacy items contribute whatever fields
// they carry.
func extractReportInputs(items []models.GraphItem) (prompt string, urls []string) {
	var texts []string
	urls = []string{}
	for _, it := range items {
		for _, s := range []string{it.Data.Title, it.Data.Content, it.Data.Memo} {
			if s = strings.TrimSpace(textSanitizer.Sanitize(s)); s != "" {
				texts = append(texts, s)
			}
		}
		if it.Data.URL != "" {
			urls = append(urls, it.Data.URL)
		}
	}
	return strings.Join(texts, ", "), urls
}

// cleanReportText strips literal escaped-newline and escaped-backslash
// sequences from the JSON-escaped representation of s. This reproduces
// the client contract: the delivered content is a single flat line with
// no escape sequences left in it.
func cleanReportText(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return s
	}
	// Drop the surrounding quotes of the JSON string literal.
	escaped := string(b[1 : len(b)-1])
	escaped = strings.ReplaceAll(escaped, `\n`, "")
	escaped = strings.ReplaceAll(escaped, `\`, "")
	return escaped
}
