package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/klimchuk/roadtripgame/internal/game"
	"github.com/klimchuk/roadtripgame/internal/lane"
	"github.com/klimchuk/roadtripgame/internal/model"
)

func newTestServer(t *testing.T) (*Server, *game.Game) {
	t.Helper()

	g := game.New(game.LootGeneratorConfig{Period: 5, Probability: 0.5}, false)
	if err := g.AddMap(&model.Map{
		ID:        "map1",
		Name:      "Town",
		Roads:     []model.Road{{Start: model.Point{X: 0, Y: 0}, End: model.Point{X: 10, Y: 0}}},
		LootTypes: []model.LootType{{Value: 10}},
	}); err != nil {
		t.Fatalf("AddMap(): %v", err)
	}

	ln := lane.New()
	t.Cleanup(ln.Close)

	wwwRoot := t.TempDir()
	if err := os.WriteFile(filepath.Join(wwwRoot, "index.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := New(g, ln, zap.NewNop(), wwwRoot, false)
	return s, g
}

func TestHandleMapsReturnsSummaries(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/maps", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out []mapSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(out) != 1 || out[0].ID != "map1" {
		t.Fatalf("out = %+v, want one entry for map1", out)
	}
}

func TestHandleMapByIDNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/maps/nope", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var env errorEnvelope
	json.Unmarshal(rec.Body.Bytes(), &env)
	if env.Code != "mapNotFound" {
		t.Fatalf("code = %q, want mapNotFound", env.Code)
	}
}

func TestHandleMapsMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/maps", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if rec.Header().Get("Allow") != "GET, HEAD" {
		t.Fatalf("Allow = %q, want %q", rec.Header().Get("Allow"), "GET, HEAD")
	}
}

func TestHandleJoinAndAuthenticatedEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	body, _ := json.Marshal(joinRequest{UserName: "fido", MapID: "map1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/game/join", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("join status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var joined joinResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &joined); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(joined.AuthToken) != 32 {
		t.Fatalf("len(AuthToken) = %d, want 32", len(joined.AuthToken))
	}

	// /state without a token is unauthorized.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/game/state", nil)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated state status = %d, want 401", rec.Code)
	}

	// /state with the freshly issued token succeeds and lists the dog.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/game/state", nil)
	req.Header.Set("Authorization", "Bearer "+joined.AuthToken)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated state status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}

	var state stateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(state.Players) != 1 {
		t.Fatalf("len(Players) = %d, want 1", len(state.Players))
	}
}

func TestHandleJoinUnknownMap(t *testing.T) {
	s, _ := newTestServer(t)

	body, _ := json.Marshal(joinRequest{UserName: "fido", MapID: "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/game/join", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleJoinEmptyName(t *testing.T) {
	s, _ := newTestServer(t)

	body, _ := json.Marshal(joinRequest{UserName: "", MapID: "map1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/game/join", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleActionRejectsBadMove(t *testing.T) {
	s, _ := newTestServer(t)

	body, _ := json.Marshal(joinRequest{UserName: "fido", MapID: "map1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/game/join", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	var joined joinResponse
	json.Unmarshal(rec.Body.Bytes(), &joined)

	actionBody, _ := json.Marshal(map[string]string{"move": "X"})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/game/player/action", bytes.NewReader(actionBody))
	req.Header.Set("Authorization", "Bearer "+joined.AuthToken)
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStaticServesIndex(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "text/html" {
		t.Fatalf("Content-Type = %q, want text/html", rec.Header().Get("Content-Type"))
	}
}

func TestHandleStaticRejectsPathTraversal(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/../secret.txt", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStaticMissingFile(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nope.html", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
