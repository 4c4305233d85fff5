// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down the mail dispatcher and DB connections.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if mailDispatcher != nil {
		logger.Info("stopping mail dispatcher")
		mailDispatcher.Close()
	}
	if deps.BoardHubMongoClient != nil {
		logger.Info("disconnecting BoardHub MongoDB client")
		if err := deps.BoardHubMongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			return err
		}
	}
	return nil
}
