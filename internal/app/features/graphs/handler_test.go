package graphs_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/boardhub/boardhub/internal/app/features/errors"
	"github.com/boardhub/boardhub/internal/app/features/graphs"
	"github.com/boardhub/boardhub/internal/domain/models"
	"github.com/boardhub/boardhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*graphs.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := apierrors.NewErrorLogger(logger)
	return graphs.NewHandler(db, errLog, logger), testutil.NewFixtures(t, db)
}

func saveRequest(t *testing.T, path, projectID string, items []models.GraphItem) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]interface{}{"items": items})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest("POST", path+"/"+projectID, bytes.NewReader(body))
	return testutil.WithChiURLParam(req, "projectID", projectID)
}

func TestHandleSaveNode_PersistsItemsAndReference(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	project := fixtures.CreateProject(ctx, "Board")
	items := []models.GraphItem{
		{Type: models.ItemTypeText, Data: models.ItemData{Title: "idea"}},
		{Type: models.ItemTypePix, Data: models.ItemData{URL: "http://img/1.png"}},
	}

	rec := httptest.NewRecorder()
	handler.HandleSaveNode(rec, saveRequest(t, "/node", project.ID.Hex(), items))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	docID, err := primitive.ObjectIDFromHex(resp.ID)
	if err != nil {
		t.Fatalf("response id not an ObjectID: %v", err)
	}

	var doc models.GraphDoc
	if err := fixtures.DB().Collection("nodes").FindOne(ctx, bson.M{"_id": docID}).Decode(&doc); err != nil {
		t.Fatalf("node document not persisted: %v", err)
	}
	if len(doc.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(doc.Items))
	}

	var projectAfter models.Project
	if err := fixtures.DB().Collection("projects").FindOne(ctx, bson.M{"_id": project.ID}).Decode(&projectAfter); err != nil {
		t.Fatalf("project fetch failed: %v", err)
	}
	if projectAfter.NodeID == nil || *projectAfter.NodeID != docID {
		t.Errorf("project node_id: got %v, want %v", projectAfter.NodeID, docID)
	}
}

func TestHandleSaveEdge_ReplacesExisting(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	project := fixtures.CreateProject(ctx, "Board")

	first := saveRequest(t, "/edge", project.ID.Hex(), []models.GraphItem{
		{Type: models.ItemTypeText, Data: models.ItemData{Memo: "a"}},
	})
	rec := httptest.NewRecorder()
	handler.HandleSaveEdge(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("first save: expected 200, got %d", rec.Code)
	}

	second := saveRequest(t, "/edge", project.ID.Hex(), []models.GraphItem{
		{Type: models.ItemTypeText, Data: models.ItemData{Memo: "b"}},
		{Type: models.ItemTypeText, Data: models.ItemData{Memo: "c"}},
	})
	rec = httptest.NewRecorder()
	handler.HandleSaveEdge(rec, second)
	if rec.Code != http.StatusOK {
		t.Fatalf("second save: expected 200, got %d", rec.Code)
	}

	count, err := fixtures.DB().Collection("edges").CountDocuments(ctx, bson.M{"project_id": project.ID})
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	// Replacement, not accumulation: still one document per project.
	if count != 1 {
		t.Errorf("expected 1 edge document, got %d", count)
	}
}

func TestHandleSaveNode_RejectsInvalidItems(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	project := fixtures.CreateProject(ctx, "Board")

	// pix without a url is invalid.
	req := saveRequest(t, "/node", project.ID.Hex(), []models.GraphItem{
		{Type: models.ItemTypePix, Data: models.ItemData{Title: "no url"}},
	})
	rec := httptest.NewRecorder()
	handler.HandleSaveNode(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleSaveNode_ProjectNotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := saveRequest(t, "/node", primitive.NewObjectID().Hex(), []models.GraphItem{
		{Type: models.ItemTypeText, Data: models.ItemData{Title: "orphan"}},
	})
	rec := httptest.NewRecorder()
	handler.HandleSaveNode(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
