// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureSchema sets up the indexes the stores rely on. Mongo index
// builds are idempotent, so this runs unconditionally on every start.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.BoardHubMongoDatabase

	// One account per email address.
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		logger.Error("users email index failed", zap.Error(err))
		return err
	}

	// One node document and one edge document per project.
	for _, coll := range []string{"nodes", "edges"} {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "project_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			logger.Error("graph project index failed", zap.String("collection", coll), zap.Error(err))
			return err
		}
	}

	// Member project listing sorts newest first.
	_, err = db.Collection("projects").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_ids", Value: 1}, {Key: "time", Value: -1}},
	})
	if err != nil {
		logger.Error("projects member index failed", zap.Error(err))
		return err
	}

	logger.Info("schema ensured")
	return nil
}
