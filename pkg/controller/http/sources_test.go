package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/tnylea/failwhale/pkg/domain/model"
)

func postSource(t *testing.T, handler http.Handler, sourceURL string) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader(`{"url": "` + sourceURL + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/sources", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAddSource(t *testing.T) {
	server := newTestServer(t)

	w := postSource(t, server.Handler, "https://github.com/a/b")
	if w.Code != http.StatusCreated {
		t.Fatalf("Status code = %v, want %v (%s)", w.Code, http.StatusCreated, w.Body.String())
	}

	var src model.Source
	if err := json.NewDecoder(w.Body).Decode(&src); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if src.URL != "https://github.com/a/b" {
		t.Errorf("URL = %q", src.URL)
	}
	if src.AddedAt.IsZero() {
		t.Error("AddedAt not set")
	}
}

func TestAddSource_InvalidIdentifier(t *testing.T) {
	server := newTestServer(t)

	w := postSource(t, server.Handler, "https://gitlab.com/a/b")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusBadRequest)
	}
}

func TestAddSource_Duplicate(t *testing.T) {
	server := newTestServer(t)

	if w := postSource(t, server.Handler, "https://github.com/a/b"); w.Code != http.StatusCreated {
		t.Fatalf("first add failed: %v", w.Code)
	}
	if w := postSource(t, server.Handler, "https://github.com/a/b"); w.Code != http.StatusConflict {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusConflict)
	}
}

func TestAddSource_MalformedBody(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sources", strings.NewReader("{"))
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusBadRequest)
	}
}

func TestListSources(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sources", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Status code = %v, want %v", w.Code, http.StatusOK)
	}

	var resp struct {
		Sources []model.Source `json:"sources"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Sources) != 0 {
		t.Errorf("Sources = %v, want empty", resp.Sources)
	}

	postSource(t, server.Handler, "https://github.com/a/b")
	postSource(t, server.Handler, "https://github.com/c/d")

	w = httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sources", nil))
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(resp.Sources))
	}
	if resp.Sources[0].URL != "https://github.com/a/b" {
		t.Errorf("unexpected order: %v", resp.Sources)
	}
}

func TestRemoveSource(t *testing.T) {
	server := newTestServer(t)
	postSource(t, server.Handler, "https://github.com/a/b")

	target := "/api/sources?url=" + url.QueryEscape("https://github.com/a/b")
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusNoContent)
	}

	// Removing again reports not found
	w = httptest.NewRecorder()
	server.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, target, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusNotFound)
	}
}

func TestRemoveSource_MissingParam(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/sources", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Status code = %v, want %v", w.Code, http.StatusBadRequest)
	}
}
