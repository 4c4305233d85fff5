package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/boardhub/boardhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given name and email.
// Returns the created user with its generated ID.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		Email:      email,
		Name:       name,
		ProjectIDs: []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateProject inserts a project owned by the given members.
// Returns the created project with its generated ID.
func (f *Fixtures) CreateProject(ctx context.Context, name string, memberIDs ...primitive.ObjectID) models.Project {
	f.t.Helper()

	if memberIDs == nil {
		memberIDs = []primitive.ObjectID{}
	}
	project := models.Project{
		ID:      primitive.NewObjectID(),
		Name:    name,
		UserIDs: memberIDs,
		Image:   models.PlaceholderThumbnail,
		Time:    time.Now().UTC(),
		Like:    false,
	}

	_, err := f.db.Collection("projects").InsertOne(ctx, project)
	if err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}

	// Mirror membership on the user side, like project creation does.
	for _, uid := range memberIDs {
		_, err := f.db.Collection("users").UpdateByID(ctx, uid,
			bson.M{"$push": bson.M{"project_ids": project.ID}})
		if err != nil {
			f.t.Fatalf("failed to link project to user: %v", err)
		}
	}

	return project
}

// CreateNodeDoc inserts a node document for the project and points the
// project's node reference at it.
func (f *Fixtures) CreateNodeDoc(ctx context.Context, projectID primitive.ObjectID, items []models.GraphItem) models.GraphDoc {
	return f.createGraphDoc(ctx, "nodes", "node_id", projectID, items)
}

// CreateEdgeDoc inserts an edge document for the project and points the
// project's edge reference at it.
func (f *Fixtures) CreateEdgeDoc(ctx context.Context, projectID primitive.ObjectID, items []models.GraphItem) models.GraphDoc {
	return f.createGraphDoc(ctx, "edges", "edge_id", projectID, items)
}

func (f *Fixtures) createGraphDoc(ctx context.Context, coll, refField string, projectID primitive.ObjectID, items []models.GraphItem) models.GraphDoc {
	f.t.Helper()

	if items == nil {
		items = []models.GraphItem{}
	}
	doc := models.GraphDoc{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		Items:     items,
	}

	_, err := f.db.Collection(coll).InsertOne(ctx, doc)
	if err != nil {
		f.t.Fatalf("failed to create test %s document: %v", coll, err)
	}

	_, err = f.db.Collection("projects").UpdateByID(ctx, projectID,
		bson.M{"$set": bson.M{refField: doc.ID}})
	if err != nil {
		f.t.Fatalf("failed to set project %s: %v", refField, err)
	}

	return doc
}
