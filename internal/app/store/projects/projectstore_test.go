package projectstore_test

import (
	"errors"
	"testing"
	"time"

	projectstore "github.com/boardhub/boardhub/internal/app/store/projects"
	"github.com/boardhub/boardhub/internal/domain/models"
	"github.com/boardhub/boardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestStore(t *testing.T) (*projectstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return projectstore.New(db), testutil.NewFixtures(t, db)
}

func TestCreate_SoleOwner(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ownerID := primitive.NewObjectID()
	p, err := store.Create(ctx, "My Board", ownerID)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(p.UserIDs) != 1 || p.UserIDs[0] != ownerID {
		t.Errorf("expected member list [%v], got %v", ownerID, p.UserIDs)
	}
	if p.Image != models.PlaceholderThumbnail {
		t.Errorf("Image: got %q, want placeholder", p.Image)
	}
	if p.Like {
		t.Error("new project should not be liked")
	}
	if p.Time.IsZero() {
		t.Error("expected creation time to be set")
	}
}

func TestListByMember_NewestFirst(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	memberID := primitive.NewObjectID()
	db := fixtures.DB()

	// Insert directly to control the timestamps.
	older := models.Project{
		ID: primitive.NewObjectID(), Name: "Older",
		UserIDs: []primitive.ObjectID{memberID},
		Image:   models.PlaceholderThumbnail,
		Time:    time.Now().UTC().Add(-time.Hour),
	}
	newer := models.Project{
		ID: primitive.NewObjectID(), Name: "Newer",
		UserIDs: []primitive.ObjectID{memberID},
		Image:   models.PlaceholderThumbnail,
		Time:    time.Now().UTC(),
	}
	foreign := models.Project{
		ID: primitive.NewObjectID(), Name: "Foreign",
		UserIDs: []primitive.ObjectID{primitive.NewObjectID()},
		Image:   models.PlaceholderThumbnail,
		Time:    time.Now().UTC(),
	}
	for _, p := range []models.Project{older, newer, foreign} {
		if _, err := db.Collection("projects").InsertOne(ctx, p); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	got, err := store.ListByMember(ctx, memberID)
	if err != nil {
		t.Fatalf("ListByMember failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(got))
	}
	if got[0].Name != "Newer" || got[1].Name != "Older" {
		t.Errorf("expected [Newer Older], got [%s %s]", got[0].Name, got[1].Name)
	}
}

func TestRename_ReturnsUpdated(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fixtures.CreateProject(ctx, "Before")
	got, err := store.Rename(ctx, p.ID, "After")
	if err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if got.Name != "After" {
		t.Errorf("Name: got %q, want %q", got.Name, "After")
	}
}

func TestRename_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Rename(ctx, primitive.NewObjectID(), "Whatever")
	if !errors.Is(err, projectstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetLike_Roundtrip(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fixtures.CreateProject(ctx, "Likeable")

	liked, err := store.SetLike(ctx, p.ID, true)
	if err != nil {
		t.Fatalf("SetLike failed: %v", err)
	}
	if !liked {
		t.Error("expected like to be true")
	}

	liked, err = store.SetLike(ctx, p.ID, false)
	if err != nil {
		t.Fatalf("SetLike failed: %v", err)
	}
	if liked {
		t.Error("expected like to be false")
	}
}

func TestAppendMember_DuplicatesAccumulate(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fixtures.CreateProject(ctx, "Shared")
	memberID := primitive.NewObjectID()

	for i := 0; i < 2; i++ {
		if err := store.AppendMember(ctx, p.ID, memberID); err != nil {
			t.Fatalf("AppendMember failed: %v", err)
		}
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	// Plain $push: accepting the same invitation twice doubles the id.
	if len(got.UserIDs) != 2 {
		t.Errorf("expected 2 member entries, got %d", len(got.UserIDs))
	}
}

func TestSetNodeAndEdgeRefs(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fixtures.CreateProject(ctx, "Graphed")
	nodeID := primitive.NewObjectID()
	edgeID := primitive.NewObjectID()

	if err := store.SetNodeID(ctx, p.ID, nodeID); err != nil {
		t.Fatalf("SetNodeID failed: %v", err)
	}
	if err := store.SetEdgeID(ctx, p.ID, edgeID); err != nil {
		t.Fatalf("SetEdgeID failed: %v", err)
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.NodeID == nil || *got.NodeID != nodeID {
		t.Errorf("NodeID: got %v, want %v", got.NodeID, nodeID)
	}
	if got.EdgeID == nil || *got.EdgeID != edgeID {
		t.Errorf("EdgeID: got %v, want %v", got.EdgeID, edgeID)
	}
}

func TestDelete(t *testing.T) {
	store, fixtures := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fixtures.CreateProject(ctx, "Doomed")

	n, err := store.Delete(ctx, p.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}

	count, err := fixtures.DB().Collection("projects").CountDocuments(ctx, bson.M{"_id": p.ID})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if count != 0 {
		t.Errorf("project still present after delete")
	}

	n, err = store.Delete(ctx, p.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deleted on repeat, got %d", n)
	}
}
