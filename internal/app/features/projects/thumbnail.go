// internal/app/features/projects/thumbnail.go
package projects

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"path/filepath"

	apierrors "github.com/boardhub/boardhub/internal/app/features/errors"
	projectstore "github.com/boardhub/boardhub/internal/app/store/projects"
	"github.com/boardhub/boardhub/internal/app/system/objstore"
	"github.com/boardhub/boardhub/internal/app/system/timeouts"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const maxThumbnailBytes = 32 << 20 // 32MB form memory limit

type thumbnailResponse struct {
	Thumbnail string `json:"thumbnail"`
}

// HandleThumbnail handles PATCH /project/thumbnail: multipart body with
// a `thumbnail` file and a `projectId` field. The uploaded bytes go to
// the configured storage backend and the resulting public URL is
// persisted on the project.
func (h *Handler) HandleThumbnail(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxThumbnailBytes); err != nil {
		h.ErrLog.LogBadRequest(w, r, "thumbnail: parse multipart failed", err, "Invalid upload.")
		return
	}

	projectID, err := primitive.ObjectIDFromHex(r.FormValue("projectId"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "thumbnail: bad project id", err, "Invalid project id.")
		return
	}

	file, header, err := r.FormFile("thumbnail")
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "thumbnail: missing file", err, "thumbnail file is required.")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.External())
	defer cancel()

	// Confirm the project exists before pushing bytes upstream.
	if _, err := h.Projects.GetByID(ctx, projectID); err != nil {
		if stderrors.Is(err, projectstore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "thumbnail: project not found", err, "Project not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "thumbnail: project lookup failed", err, "Something went wrong.")
		return
	}

	// Unique prefix so re-uploads of the same filename do not collide.
	key := fmt.Sprintf("thumbnails/%s-%s", uuid.New().String()[:8], sanitizeFilename(header.Filename))
	contentType := header.Header.Get("Content-Type")

	opts := &objstore.PutOptions{ContentType: contentType}
	if err := h.Storage.Put(ctx, key, file, opts); err != nil {
		h.ErrLog.LogBadRequest(w, r, "thumbnail: upload stream failed", err, "Upload failed.")
		return
	}

	url := h.Storage.URL(key)
	if err := h.Projects.SetThumbnail(ctx, projectID, url); err != nil {
		h.ErrLog.LogServerError(w, r, "thumbnail: persist url failed", err, "Something went wrong.")
		return
	}

	h.Log.Info("thumbnail updated",
		zap.String("project_id", projectID.Hex()),
		zap.String("key", key))
	apierrors.JSON(w, http.StatusOK, thumbnailResponse{Thumbnail: url})
}

// sanitizeFilename removes or replaces characters that could be problematic in filenames.
func sanitizeFilename(filename string) string {
	// Get just the filename, not any path components
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		// Truncate but preserve extension if present
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
