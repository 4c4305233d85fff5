// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	apierrors "github.com/boardhub/boardhub/internal/app/features/errors"
	userstore "github.com/boardhub/boardhub/internal/app/store/users"
	"github.com/boardhub/boardhub/internal/app/system/auth"
	"github.com/boardhub/boardhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler resolves a known user email into a session cookie. User
// records and credentials live in the external identity store; this is
// a trust-mode sign-in that only establishes the session the rest of
// the API reads its identity from.
type Handler struct {
	Users  *userstore.Store
	ErrLog *apierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		ErrLog: errLog,
		Log:    logger,
	}
}

type loginRequest struct {
	Email string `json:"email"`
}

type loginResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// HandleLogin handles POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "login: decode body failed", err, "Invalid request body.")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		h.ErrLog.LogBadRequest(w, r, "login: empty email", nil, "Email is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if stderrors.Is(err, userstore.ErrNotFound) {
			h.ErrLog.LogNotFound(w, r, "login: unknown email", err, "No such user.")
			return
		}
		h.ErrLog.LogServerError(w, r, "login: user lookup failed", err, "Something went wrong.")
		return
	}

	sessionUser := auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
	}
	if err := auth.SignIn(w, r, sessionUser); err != nil {
		h.ErrLog.LogServerError(w, r, "login: session save failed", err, "Something went wrong.")
		return
	}

	h.Log.Info("user signed in", zap.String("user_id", sessionUser.ID))
	apierrors.JSON(w, http.StatusOK, loginResponse{ID: sessionUser.ID, Name: sessionUser.Name})
}

// HandleLogout handles POST /logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		h.ErrLog.LogServerError(w, r, "logout: session clear failed", err, "Something went wrong.")
		return
	}
	apierrors.Message(w, http.StatusOK, "signed out")
}
