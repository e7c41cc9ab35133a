package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
)

func TestServeFile(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/circle.svg", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	if w.Body.String() != circleSVG {
		t.Errorf("body = %q, want exact file bytes %q", w.Body.String(), circleSVG)
	}
	if cl := w.Header().Get("Content-Length"); cl != strconv.Itoa(len(circleSVG)) {
		t.Errorf("Content-Length = %q, want %d", cl, len(circleSVG))
	}
}

func TestServeNestedFile(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/icons/star.svg", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestRootRedirect(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusTemporaryRedirect {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTemporaryRedirect)
	}
	if loc := w.Header().Get("Location"); loc != "/home" {
		t.Errorf("Location = %q, want /home", loc)
	}
	if w.Body.Len() != 0 {
		t.Errorf("redirect body should be empty, got %q", w.Body.String())
	}
}

func TestRootRedirectCustomIndex(t *testing.T) {
	s := newTestServer(t)
	s.cfg.IndexRoute = "/diagrams/main"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if loc := w.Header().Get("Location"); loc != "/diagrams/main" {
		t.Errorf("Location = %q, want /diagrams/main", loc)
	}
}

func TestMissingFile(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/missing.svg", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDirectoryIsNotServed(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/icons", "/icons/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s: status = %d, want %d", path, w.Code, http.StatusNotFound)
		}
	}
}

func TestTraversalAttempt(t *testing.T) {
	// The mux normally cleans dot segments before routing; build the request
	// manually so the raw path reaches the handler, as it would from a
	// transport that does no cleaning.
	s := newTestServer(t)

	paths := []string{
		"/../secret.txt",
		"/../../../../etc/passwd",
		"/icons/../../secret.txt",
	}
	for _, p := range paths {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.URL.Path = p
		w := httptest.NewRecorder()
		s.handleFiles(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("GET %s: status = %d, want %d", p, w.Code, http.StatusNotFound)
		}
		if w.Body.String() != "404 page not found\n" {
			t.Errorf("GET %s: body %q discloses more than a plain 404", p, w.Body.String())
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	// Remove the served tree entirely: if any rejected method reached the
	// resolver the test would still pass, but the handler has nothing left
	// to stat, so a 405 here proves no filesystem access happened.
	if err := os.RemoveAll(s.cfg.RootDir); err != nil {
		t.Fatalf("Failed to remove root: %v", err)
	}

	methods := []string{
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodHead,
		http.MethodOptions,
		http.MethodPatch,
	}
	for _, method := range methods {
		req := httptest.NewRequest(method, "/circle.svg", nil)
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)

		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: status = %d, want %d", method, w.Code, http.StatusMethodNotAllowed)
		}
		if allow := w.Header().Get("Allow"); allow != http.MethodGet {
			t.Errorf("%s: Allow = %q, want GET", method, allow)
		}
		if w.Body.Len() != 0 {
			t.Errorf("%s: 405 body should be empty, got %q", method, w.Body.String())
		}
	}
}

func TestReadFailureAfterResolution(t *testing.T) {
	s := newTestServer(t)
	s.readFile = func(string) ([]byte, error) {
		return nil, errors.New("open: no such file or directory")
	}

	req := httptest.NewRequest(http.MethodGet, "/circle.svg", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if body := w.Body.String(); body != "Failed to load SVG\n" {
		t.Errorf("body = %q, generic message expected", body)
	}
}

func TestRepeatedRequestsAreStable(t *testing.T) {
	s := newTestServer(t)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/circle.svg", nil)
		w := httptest.NewRecorder()
		s.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
		if w.Body.String() != circleSVG {
			t.Errorf("request %d: body changed on unchanged filesystem", i+1)
		}
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	for _, want := range []string{`"status":"healthy"`, `"version"`} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("health body %q missing %q", w.Body.String(), want)
		}
	}
}
