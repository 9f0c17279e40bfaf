package main

import (
	"net/http"
)

func (app *application) healthCheckHandler(writer http.ResponseWriter, request *http.Request) {
	data := map[string]any{
		"status":  "OK",
		"message": "media gateway is healthy running in " + app.config.env + " mode",
		"version": version,
	}

	if err := writeJSON(writer, http.StatusOK, data); err != nil {
		app.internalServerError(writer, request, err)
	}
}
