package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// AssetsRouter serves member photos and gallery images from disk.
type AssetsRouter struct {
	dir string
}

func NewAssetsRouter(dir string) *AssetsRouter {
	return &AssetsRouter{dir: dir}
}

func (ar *AssetsRouter) SetupRoutes(r chi.Router) {
	fs := http.StripPrefix("/assets/", http.FileServer(http.Dir(ar.dir)))
	r.Get("/assets/*", fs.ServeHTTP)
	r.Head("/assets/*", fs.ServeHTTP)
}
