package preview

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return &Server{Log: zap.NewNop().Sugar(), SiteRoot: t.TempDir()}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := testServer(t)
	router := s.Router(NewHub())

	w := get(router, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"reload_clients":0`)
}

func TestServeStaticFile(t *testing.T) {
	s := testServer(t)
	writeFile(t, s.SiteRoot, "index.html", "<html>home</html>")
	writeFile(t, s.SiteRoot, "data/projects.json", "[]")
	router := s.Router(NewHub())

	w := get(router, "/index.html")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>home</html>", w.Body.String())

	// Directory requests fall back to index.html.
	w = get(router, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>home</html>", w.Body.String())

	w = get(router, "/missing.html")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDataTreeIsNoStore(t *testing.T) {
	s := testServer(t)
	writeFile(t, s.SiteRoot, "data/projects.json", "[]")
	writeFile(t, s.SiteRoot, "style.css", "body{}")
	router := s.Router(NewHub())

	w := get(router, "/data/projects.json")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = get(router, "/style.css")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Cache-Control"))
}

func TestTraversalBlocked(t *testing.T) {
	s := testServer(t)
	writeFile(t, s.SiteRoot, "index.html", "home")
	router := s.Router(NewHub())

	// path.Clean collapses the traversal back inside the root.
	w := get(router, "/../../etc/passwd")
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestIsSubpath(t *testing.T) {
	root := t.TempDir()
	assert.True(t, isSubpath(root, filepath.Join(root, "index.html")))
	assert.True(t, isSubpath(root, filepath.Join(root, "data", "projects.json")))
	assert.False(t, isSubpath(root, filepath.Join(root, "..", "outside.txt")))
	assert.False(t, isSubpath(root, filepath.Dir(root)))
}

func TestHubClients(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.Clients())

	// Broadcast with no clients must not panic.
	hub.Broadcast()
}
