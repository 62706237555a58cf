package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/complaint-desk/pkg/response"
)

// StaticHandler serves the single-page frontend. Unknown paths fall back to
// index.html so client-side routing works; unknown /api paths get a JSON 404.
type StaticHandler struct {
	Dir string
}

func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{Dir: dir}
}

func (h *StaticHandler) Serve(c *gin.Context) {
	p := c.Request.URL.Path
	if p == "/api" || strings.HasPrefix(p, "/api/") {
		response.Error(c, http.StatusNotFound, "Not found", nil)
		return
	}
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		response.Error(c, http.StatusNotFound, "Not found", nil)
		return
	}

	// path.Clean on a rooted path strips any ".." segments.
	rel := strings.TrimPrefix(path.Clean("/"+p), "/")
	if rel != "" {
		file := filepath.Join(h.Dir, filepath.FromSlash(rel))
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			c.File(file)
			return
		}
	}

	index := filepath.Join(h.Dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		response.Error(c, http.StatusNotFound, "Not found", nil)
		return
	}
	c.File(index)
}
