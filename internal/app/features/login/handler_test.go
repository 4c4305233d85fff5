package login_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apierrors "github.com/boardhub/boardhub/internal/app/features/errors"
	"github.com/boardhub/boardhub/internal/app/features/login"
	"github.com/boardhub/boardhub/internal/app/system/auth"
	"github.com/boardhub/boardhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	if err := auth.InitSessionStore(strings.Repeat("k", 32), "", false, logger); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}
	errLog := apierrors.NewErrorLogger(logger)
	return login.NewHandler(db, errLog, logger), testutil.NewFixtures(t, db)
}

func TestHandleLogin_KnownEmail(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Alice", "alice@example.com")

	body, _ := json.Marshal(map[string]string{"email": "alice@example.com"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != user.ID.Hex() {
		t.Errorf("id: got %q, want %q", resp.ID, user.ID.Hex())
	}
	if resp.Name != "Alice" {
		t.Errorf("name: got %q", resp.Name)
	}

	// A session cookie must have been issued.
	cookies := rec.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == auth.SessionName {
			found = true
		}
	}
	if !found {
		t.Error("no session cookie in response")
	}
}

func TestHandleLogin_UnknownEmail(t *testing.T) {
	handler, _ := newTestHandler(t)

	body, _ := json.Marshal(map[string]string{"email": "nobody@example.com"})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleLogin_EmptyEmail(t *testing.T) {
	handler, _ := newTestHandler(t)

	body, _ := json.Marshal(map[string]string{"email": "  "})
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.HandleLogin(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleLogout_ClearsSession(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest("POST", "/logout", nil)
	rec := httptest.NewRecorder()
	handler.HandleLogout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.SessionName && c.MaxAge >= 0 {
			t.Error("session cookie was not expired")
		}
	}
}
