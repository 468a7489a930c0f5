package preview

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server is the local preview over one site checkout.
type Server struct {
	Log      *zap.SugaredLogger
	SiteRoot string
}

// Router builds the gin engine: health endpoint, reload socket, and a
// static fallback over the site root. Everything under /data/ is served
// with no-store caching because the renderers fetch it fresh on every page
// view and a stale listing is worse than a slow one.
func (s *Server) Router(hub *Hub) *gin.Engine {
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "reload_clients": hub.Clients()})
	})

	router.GET("/ws/reload", WSHandler(hub))

	router.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/data/") {
			c.Header("Cache-Control", "no-store")
		}
		c.Next()
	})

	router.NoRoute(s.serveFile)
	return router
}

// serveFile serves a static file from the site root, defaulting to
// index.html for directories and refusing anything that escapes the root.
func (s *Server) serveFile(c *gin.Context) {
	p := path.Clean("/" + c.Request.URL.Path)
	full := filepath.Join(s.SiteRoot, filepath.FromSlash(p))

	if !isSubpath(s.SiteRoot, full) {
		c.Status(http.StatusForbidden)
		return
	}

	info, err := os.Stat(full)
	if err == nil && info.IsDir() {
		full = filepath.Join(full, "index.html")
		info, err = os.Stat(full)
	}
	if err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}

	c.File(full)
}

// isSubpath ensures child is within root, preventing path traversal.
func isSubpath(root, child string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absChild, err := filepath.Abs(child)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absChild)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
