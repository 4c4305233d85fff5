// internal/app/features/projects/invite.go
package projects

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apierrors "github.com/boardhub/boardhub/internal/app/features/errors"
	projectstore "github.com/boardhub/boardhub/internal/app/store/projects"
	userstore "github.com/boardhub/boardhub/internal/app/store/users"
	"github.com/boardhub/boardhub/internal/app/system/auth"
	"github.com/boardhub/boardhub/internal/app/system/mailer"
	"github.com/boardhub/boardhub/internal/app/system/tasks"
	"github.com/boardhub/boardhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type inviteRequest struct {
	UserEmail string `json:"userEmail"`
}

// HandleInvite handles POST /project/{projectID}. The requester must
// already be a member; the invited address must belong to an existing
// user, whose stored email parameterizes the join link. The mail itself
// goes out on the background dispatcher, so a 200 here means the
// invitation was accepted for delivery, not that SMTP succeeded.
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.LogUnauthorized(w, r, "invite: no session user")
		return
	}
	requesterID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "invite: bad session user id", err, "Invalid user.")
		return
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "invite: bad project id", err, "Invalid project id.")
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "invite: decode body failed", err, "Invalid request body.")
		return
	}
	invitedEmail := strings.TrimSpace(req.UserEmail)
	if invitedEmail == "" {
		h.ErrLog.LogBadRequest(w, r, "invite: empty email", nil, "userEmail is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	requester, err := h.Users.GetByID(ctx, requesterID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "invite: requester lookup failed", err, "Something went wrong.")
		return
	}
	if !requester.HasProject(projectID) {
		h.ErrLog.LogBadRequest(w, r, "invite: requester not a member", nil, "You're not part of this project.")
		return
	}

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if stderrors.Is(err, projectstore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "invite: project not found", err, "Project not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "invite: project lookup failed", err, "Something went wrong.")
		return
	}

	// The join link assumes a user record already exists for the
	// invited address; none is created here.
	invited, err := h.Users.GetByEmail(ctx, invitedEmail)
	if err != nil {
		if stderrors.Is(err, userstore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "invite: no user with that email", err, "No such user.")
			return
		}
		h.ErrLog.LogServerError(w, r, "invite: invited user lookup failed", err, "Something went wrong.")
		return
	}

	joinLink := fmt.Sprintf("%s/project/%s/%s", strings.TrimSuffix(h.BaseURL, "/"), invited.Email, projectID.Hex())

	email := mailer.BuildInviteEmail(mailer.InviteEmailData{
		SiteName:    h.SiteName,
		InviterName: requester.Name,
		ProjectName: project.Name,
		JoinLink:    joinLink,
	})
	email.To = invited.Email

	_, err = h.Dispatcher.Submit(tasks.Task{
		Name:    "invite-mail",
		Timeout: 30 * time.Second,
		Run: func(ctx context.Context) error {
			return h.Mailer.Send(email)
		},
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "invite: mail dispatch failed", err, "Something went wrong.")
		return
	}

	h.Log.Info("invitation queued",
		zap.String("project_id", projectID.Hex()),
		zap.String("invited", invited.Email))
	apierrors.Message(w, http.StatusOK, "Invitation successfully sent")
}

// HandleAccept handles GET /project/{newUserEmail}/{projectID}, the
// target of the emailed join link. Both sides of the membership are
// appended with plain pushes, so following the same link twice
// duplicates the ids in both lists; that is the documented contract,
// not an oversight to fix here.
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "newUserEmail")
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "accept invite: bad project id", err, "Invalid project id.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	newUser, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, userstore.ErrNotFound) {
			h.ErrLog.LogBadRequest(w, r, "accept invite: no such user", err, "No Such User")
			return
		}
		h.ErrLog.LogServerError(w, r, "accept invite: user lookup failed", err, "Something went wrong.")
		return
	}

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		if stderrors.Is(err, projectstore.ErrNotFound) {
			h.ErrLog.LogBadRequest(w, r, "accept invite: no such project", err, "No Such Project")
			return
		}
		h.ErrLog.LogServerError(w, r, "accept invite: project lookup failed", err, "Something went wrong.")
		return
	}

	if err := h.Projects.AppendMember(ctx, project.ID, newUser.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "accept invite: append member failed", err, "Something went wrong.")
		return
	}
	if err := h.Users.AppendProject(ctx, newUser.ID, project.ID); err != nil {
		h.ErrLog.LogServerError(w, r, "accept invite: append project failed", err, "Something went wrong.")
		return
	}

	h.Log.Info("invitation accepted",
		zap.String("project_id", project.ID.Hex()),
		zap.String("user_id", newUser.ID.Hex()))
	apierrors.Message(w, http.StatusOK, "successfully joined to new project")
}
