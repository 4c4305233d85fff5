package graphstore_test

import (
	"errors"
	"testing"

	graphstore "github.com/boardhub/boardhub/internal/app/store/graphs"
	"github.com/boardhub/boardhub/internal/domain/models"
	"github.com/boardhub/boardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestStore(t *testing.T) (*graphstore.Store, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return graphstore.New(db), testutil.NewFixtures(t, db)
}

func textItem(title string) models.GraphItem {
	return models.GraphItem{Type: models.ItemTypeText, Data: models.ItemData{Title: title}}
}

func TestSaveNode_CreatesThenReplaces(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	projectID := primitive.NewObjectID()

	firstID, err := store.SaveNode(ctx, projectID, []models.GraphItem{textItem("first")})
	if err != nil {
		t.Fatalf("SaveNode failed: %v", err)
	}

	secondID, err := store.SaveNode(ctx, projectID, []models.GraphItem{textItem("second"), textItem("third")})
	if err != nil {
		t.Fatalf("second SaveNode failed: %v", err)
	}

	// Same project, same document: replacement keeps the id stable.
	if firstID != secondID {
		t.Errorf("expected stable document id, got %v then %v", firstID, secondID)
	}

	doc, err := store.GetNode(ctx, firstID)
	if err != nil {
		t.Fatalf("GetNode failed: %v", err)
	}
	if len(doc.Items) != 2 {
		t.Errorf("expected 2 items after replace, got %d", len(doc.Items))
	}
	if doc.ProjectID != projectID {
		t.Errorf("ProjectID: got %v, want %v", doc.ProjectID, projectID)
	}
}

func TestSaveEdge_NilItemsBecomesEmpty(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	projectID := primitive.NewObjectID()
	id, err := store.SaveEdge(ctx, projectID, nil)
	if err != nil {
		t.Fatalf("SaveEdge failed: %v", err)
	}

	doc, err := store.GetEdge(ctx, id)
	if err != nil {
		t.Fatalf("GetEdge failed: %v", err)
	}
	if doc.Items == nil || len(doc.Items) != 0 {
		t.Errorf("expected empty item list, got %v", doc.Items)
	}
}

func TestGetNode_NotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetNode(ctx, primitive.NewObjectID())
	if !errors.Is(err, graphstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteForProject(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	projectID := primitive.NewObjectID()
	nodeID, err := store.SaveNode(ctx, projectID, []models.GraphItem{textItem("n")})
	if err != nil {
		t.Fatalf("SaveNode failed: %v", err)
	}
	edgeID, err := store.SaveEdge(ctx, projectID, nil)
	if err != nil {
		t.Fatalf("SaveEdge failed: %v", err)
	}

	if err := store.DeleteForProject(ctx, &nodeID, &edgeID); err != nil {
		t.Fatalf("DeleteForProject failed: %v", err)
	}

	if _, err := store.GetNode(ctx, nodeID); !errors.Is(err, graphstore.ErrNotFound) {
		t.Errorf("expected node gone, got %v", err)
	}
	if _, err := store.GetEdge(ctx, edgeID); !errors.Is(err, graphstore.ErrNotFound) {
		t.Errorf("expected edge gone, got %v", err)
	}

	// Nil refs and already-deleted documents are fine.
	if err := store.DeleteForProject(ctx, nil, &edgeID); err != nil {
		t.Errorf("repeat DeleteForProject failed: %v", err)
	}
}
