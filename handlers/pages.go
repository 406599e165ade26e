package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ServePage returns a handler serving a single HTML page from the templates
// directory. The pages are static shells; all data comes from the JSON API.
func ServePage(templatesPath, filename string) http.HandlerFunc {
	pagePath := filepath.Join(templatesPath, filename)
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := os.Stat(pagePath); os.IsNotExist(err) {
			writeError(w, http.StatusInternalServerError, "file_not_found")
			return
		}
		http.ServeFile(w, r, pagePath)
	}
}

// StaticServer creates a handler serving css/js assets from the templates
// directory under /static/*, with the request path confined to that
// directory.
func StaticServer(templatesPath string) http.HandlerFunc {
	baseDir := filepath.Clean(templatesPath)

	return func(w http.ResponseWriter, r *http.Request) {
		relativePath := strings.TrimPrefix(r.URL.Path, "/static/")
		if relativePath == "" || strings.Contains(relativePath, "..") {
			http.Error(w, "Invalid asset path", http.StatusBadRequest)
			return
		}

		assetPath := filepath.Clean(filepath.Join(baseDir, relativePath))
		if !strings.HasPrefix(assetPath, baseDir) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		if _, err := os.Stat(assetPath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, assetPath)
	}
}
