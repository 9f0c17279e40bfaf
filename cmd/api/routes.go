package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) registerRoutes(router *chi.Mux) {
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusSeeOther)
	})

	router.Get("/health", app.healthCheckHandler)
	router.Post("/upload-image", app.uploadImageHandler)
	router.Delete("/delete-image", app.deleteImageHandler)
}
