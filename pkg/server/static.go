package server

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// StaticHandler serves a built front end from a directory. Paths that name
// no file fall back to index.html so client-side routes load the app.
type StaticHandler struct {
	dir          string
	cacheControl string
}

// NewStaticHandler creates a handler serving dir.
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir, cacheControl: "public, max-age=3600"}
}

// ServeHTTP implements http.Handler interface.
func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	name := filepath.Join(h.dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	fi, err := os.Stat(name)
	if err == nil && fi.IsDir() {
		name = filepath.Join(name, "index.html")
		fi, err = os.Stat(name)
	}
	if errors.Is(err, fs.ErrNotExist) && path.Ext(r.URL.Path) == "" {
		name = filepath.Join(h.dir, "index.html")
		fi, err = os.Stat(name)
	}
	if err != nil || fi.IsDir() {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(name)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	sum := sha256.New()
	if _, err := io.Copy(sum, f); err == nil {
		w.Header().Set("ETag", `"`+hex.EncodeToString(sum.Sum(nil)[:8])+`"`)
	}
	if _, err := f.Seek(0, 0); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if strings.HasSuffix(name, "index.html") {
		w.Header().Set("Cache-Control", "no-cache")
	} else {
		w.Header().Set("Cache-Control", h.cacheControl)
	}
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}
