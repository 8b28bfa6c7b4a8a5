package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAHandler serves the built frontend from staticDir. Paths that do not
// match a file fall back to index.html so client-side routing works; the
// route guard runs in front of this handler.
func SPAHandler(staticDir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(staticDir))
	index := filepath.Join(staticDir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		requested := filepath.Join(staticDir, filepath.Clean(r.URL.Path))

		if info, err := os.Stat(requested); err == nil && !info.IsDir() &&
			strings.HasPrefix(requested, filepath.Clean(staticDir)) {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, index)
	}
}
