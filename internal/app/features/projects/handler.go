// internal/app/features/projects/handler.go
package projects

import (
	"context"

	apierrors "github.com/boardhub/boardhub/internal/app/features/errors"
	graphstore "github.com/boardhub/boardhub/internal/app/store/graphs"
	projectstore "github.com/boardhub/boardhub/internal/app/store/projects"
	userstore "github.com/boardhub/boardhub/internal/app/store/users"
	"github.com/boardhub/boardhub/internal/app/system/mailer"
	"github.com/boardhub/boardhub/internal/app/system/objstore"
	"github.com/boardhub/boardhub/internal/app/system/tasks"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CompletionClient is the text-generation step of the report pipeline.
type CompletionClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// TranslateClient is the translation step of the report pipeline.
type TranslateClient interface {
	Translate(ctx context.Context, text string) (string, error)
}

// MailSender delivers invitation email.
type MailSender interface {
	Send(e mailer.Email) error
}

// Handler carries every dependency of the /project surface: the three
// stores, the invitation mail path, the report pipeline clients, and
// thumbnail blob storage.
type Handler struct {
	Users    *userstore.Store
	Projects *projectstore.Store
	Graphs   *graphstore.Store

	Mailer     MailSender
	Dispatcher *tasks.Dispatcher

	Completion CompletionClient
	Translate  TranslateClient

	Storage objstore.Store

	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
	BaseURL  string
	SiteName string
}

// Deps bundles the non-store dependencies of NewHandler.
type Deps struct {
	Mailer     MailSender
	Dispatcher *tasks.Dispatcher
	Completion CompletionClient
	Translate  TranslateClient
	Storage    objstore.Store
	BaseURL    string
	SiteName   string
}

func NewHandler(db *mongo.Database, deps Deps, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Projects:   projectstore.New(db),
		Graphs:     graphstore.New(db),
		Mailer:     deps.Mailer,
		Dispatcher: deps.Dispatcher,
		Completion: deps.Completion,
		Translate:  deps.Translate,
		Storage:    deps.Storage,
		ErrLog:     errLog,
		Log:        logger,
		BaseURL:    deps.BaseURL,
		SiteName:   deps.SiteName,
	}
}
