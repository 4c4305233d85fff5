// internal/app/store/graphs/graphstore.go
package graphstore

import (
	"context"
	"errors"

	"github.com/boardhub/boardhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store holds the node and edge document collections. Both share the
// same shape (models.GraphDoc); a project references at most one of
// each.
type Store struct {
	nodes *mongo.Collection
	edges *mongo.Collection
}

var ErrNotFound = errors.New("graph document not found")

func New(db *mongo.Database) *Store {
	return &Store{
		nodes: db.Collection("nodes"),
		edges: db.Collection("edges"),
	}
}

func (s *Store) GetNode(ctx context.Context, id primitive.ObjectID) (models.GraphDoc, error) {
	return getDoc(ctx, s.nodes, id)
}

func (s *Store) GetEdge(ctx context.Context, id primitive.ObjectID) (models.GraphDoc, error) {
	return getDoc(ctx, s.edges, id)
}

// SaveNode creates or replaces the project's node document and returns
// its id.
func (s *Store) SaveNode(ctx context.Context, projectID primitive.ObjectID, items []models.GraphItem) (primitive.ObjectID, error) {
	return saveDoc(ctx, s.nodes, projectID, items)
}

// SaveEdge creates or replaces the project's edge document and returns
// its id.
func (s *Store) SaveEdge(ctx context.Context, projectID primitive.ObjectID, items []models.GraphItem) (primitive.ObjectID, error) {
	return saveDoc(ctx, s.edges, projectID, items)
}

// DeleteForProject removes the node and edge documents referenced by a
// project. Nil references are skipped; missing documents are not an
// error (the cascade is best effort).
func (s *Store) DeleteForProject(ctx context.Context, nodeID, edgeID *primitive.ObjectID) error {
	if nodeID != nil {
		if _, err := s.nodes.DeleteOne(ctx, bson.M{"_id": *nodeID}); err != nil {
			return err
		}
	}
	if edgeID != nil {
		if _, err := s.edges.DeleteOne(ctx, bson.M{"_id": *edgeID}); err != nil {
			return err
		}
	}
	return nil
}

func getDoc(ctx context.Context, c *mongo.Collection, id primitive.ObjectID) (models.GraphDoc, error) {
	var d models.GraphDoc
	if err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.GraphDoc{}, ErrNotFound
		}
		return models.GraphDoc{}, err
	}
	return d, nil
}

func saveDoc(ctx context.Context, c *mongo.Collection, projectID primitive.ObjectID, items []models.GraphItem) (primitive.ObjectID, error) {
	if items == nil {
		items = []models.GraphItem{}
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var d models.GraphDoc
	err := c.FindOneAndUpdate(ctx,
		bson.M{"project_id": projectID},
		bson.M{
			"$set":         bson.M{"items": items},
			"$setOnInsert": bson.M{"_id": primitive.NewObjectID(), "project_id": projectID},
		},
		opts,
	).Decode(&d)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return d.ID, nil
}
