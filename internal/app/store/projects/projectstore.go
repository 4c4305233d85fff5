// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/boardhub/boardhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrNotFound = errors.New("project not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// Create inserts a new project owned solely by ownerID.
func (s *Store) Create(ctx context.Context, name string, ownerID primitive.ObjectID) (models.Project, error) {
	p := models.Project{
		ID:      primitive.NewObjectID(),
		Name:    name,
		UserIDs: []primitive.ObjectID{ownerID},
		Image:   models.PlaceholderThumbnail,
		Time:    time.Now().UTC(),
		Like:    false,
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// ListByMember returns the projects whose member list contains userID,
// newest first.
func (s *Store) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"user_ids": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Rename updates the project name and returns the updated document.
// Last write wins; there is no conflict detection.
func (s *Store) Rename(ctx context.Context, id primitive.ObjectID, name string) (models.Project, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name}},
		opts,
	).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Project{}, ErrNotFound
		}
		return models.Project{}, err
	}
	return p, nil
}

// SetLike stores the like flag and returns the stored value.
func (s *Store) SetLike(ctx context.Context, id primitive.ObjectID, like bool) (bool, error) {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"like": like}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrNotFound
	}
	return like, nil
}

// SetThumbnail persists the externally addressable thumbnail URL.
func (s *Store) SetThumbnail(ctx context.Context, id primitive.ObjectID, url string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{"image": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetNodeID records the project's single node document reference.
func (s *Store) SetNodeID(ctx context.Context, id, nodeID primitive.ObjectID) error {
	return s.setRef(ctx, id, "node_id", nodeID)
}

// SetEdgeID records the project's single edge document reference.
func (s *Store) SetEdgeID(ctx context.Context, id, edgeID primitive.ObjectID) error {
	return s.setRef(ctx, id, "edge_id", edgeID)
}

func (s *Store) setRef(ctx context.Context, id primitive.ObjectID, field string, ref primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{field: ref}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendMember adds userID to the project's member list. Plain $push:
// repeated invitation acceptance duplicates the id by contract.
func (s *Store) AppendMember(ctx context.Context, id, userID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$push": bson.M{"user_ids": userID}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a project by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
