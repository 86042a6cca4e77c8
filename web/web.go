// Package web embeds the browser front-end served under /static/.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var files embed.FS

// StaticFS returns the front-end files rooted at the static directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return sub
}

// Handler serves the static files. Mount it with http.StripPrefix("/static", ...).
func Handler() http.Handler {
	return http.FileServerFS(StaticFS())
}

// IndexHandler serves index.html directly. http.FileServer would redirect
// /static/index.html to /static/.
func IndexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(StaticFS(), "index.html")
		if err != nil {
			http.Error(w, "index not found", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(data)
	})
}
