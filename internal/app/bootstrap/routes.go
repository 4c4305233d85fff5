// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	errorsfeature "github.com/boardhub/boardhub/internal/app/features/errors"
	graphsfeature "github.com/boardhub/boardhub/internal/app/features/graphs"
	healthfeature "github.com/boardhub/boardhub/internal/app/features/health"
	loginfeature "github.com/boardhub/boardhub/internal/app/features/login"
	projectsfeature "github.com/boardhub/boardhub/internal/app/features/projects"
	"github.com/boardhub/boardhub/internal/app/system/auth"
	"github.com/boardhub/boardhub/internal/app/system/completion"
	"github.com/boardhub/boardhub/internal/app/system/mailer"
	"github.com/boardhub/boardhub/internal/app/system/objstore"
	"github.com/boardhub/boardhub/internal/app/system/tasks"
	"github.com/boardhub/boardhub/internal/app/system/translate"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// mailDispatcher runs invitation mail off the request path. It lives at
// package level so Shutdown can drain it.
var mailDispatcher *tasks.Dispatcher

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and any Startup hooks have completed. BoardHub initializes the
// session store, builds the external-service clients (SMTP, storage,
// completion, translation), and mounts the feature routers: health,
// login/logout, projects, and the node/edge graph surface.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	// Invitation mail path.
	mail := mailer.New(appCfg.MailSMTPHost, appCfg.MailSMTPPort,
		appCfg.MailSMTPUser, appCfg.MailSMTPPass,
		appCfg.MailFrom, appCfg.MailFromName, logger)
	mailDispatcher = tasks.NewDispatcher(appCfg.MailQueueSize, logger)

	// Report pipeline clients.
	completionClient, err := completion.New(context.Background(), appCfg.GeminiAPIKey, appCfg.GeminiModel)
	if err != nil {
		logger.Error("completion client init failed", zap.Error(err))
		return nil, err
	}
	translateClient, err := translate.New(appCfg.TranslateURL, appCfg.TranslateAPIKey, appCfg.TranslateTargetLang)
	if err != nil {
		logger.Error("translate client init failed", zap.Error(err))
		return nil, err
	}

	// Thumbnail storage backend.
	storage, err := buildStorage(appCfg, logger)
	if err != nil {
		logger.Error("storage init failed", zap.Error(err))
		return nil, err
	}

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.BoardHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.BoardHubMongoDatabase, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))
	r.Mount("/logout", loginfeature.LogoutRoutes(loginHandler))

	// Projects: lifecycle, membership, likes, invitations, reports, thumbnails
	projectsHandler := projectsfeature.NewHandler(deps.BoardHubMongoDatabase, projectsfeature.Deps{
		Mailer:     mail,
		Dispatcher: mailDispatcher,
		Completion: completionClient,
		Translate:  translateClient,
		Storage:    storage,
		BaseURL:    appCfg.BaseURL,
		SiteName:   appCfg.SiteName,
	}, errLog, logger)
	r.Mount("/project", projectsfeature.Routes(projectsHandler))

	// Graph content: per-project node and edge documents
	graphsHandler := graphsfeature.NewHandler(deps.BoardHubMongoDatabase, errLog, logger)
	r.Mount("/node", graphsfeature.NodeRoutes(graphsHandler))
	r.Mount("/edge", graphsfeature.EdgeRoutes(graphsHandler))

	// Locally stored thumbnails are served straight off disk.
	if appCfg.StorageType == "local" {
		prefix := strings.TrimSuffix(appCfg.StorageLocalURL, "/")
		r.Handle(prefix+"/*", fileserver.Handler(prefix, appCfg.StorageLocalPath))
	}

	return r, nil
}

func buildStorage(appCfg AppConfig, logger *zap.Logger) (objstore.Store, error) {
	switch appCfg.StorageType {
	case "local":
		return objstore.NewLocal(appCfg.StorageLocalPath, appCfg.StorageLocalURL)
	case "s3":
		return objstore.NewS3(context.Background(),
			appCfg.StorageS3Region, appCfg.StorageS3Bucket,
			appCfg.StorageS3Prefix, appCfg.StoragePublicURL)
	default:
		return nil, fmt.Errorf("unknown storage_type %q", appCfg.StorageType)
	}
}
