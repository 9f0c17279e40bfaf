package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"godsendjoseph.dev/media-api/internal/storage"
)

type uploadImageForm struct {
	Folder string `form:"folder"`
}

type deleteImagePayload struct {
	PublicID string `json:"public_id" validate:"required"`
}

// uploadImageHandler accepts a multipart upload under the "image" field,
// forwards it to the media store and relays the resulting address. Exactly one
// store call is made per request; a missing file never reaches the store.
func (app *application) uploadImageHandler(writer http.ResponseWriter, request *http.Request) {
	var form uploadImageForm

	files, err := app.readFormData(writer, request, &form)
	if err != nil {
		app.badRequestResponse(writer, request, err)
		return
	}

	imageFiles := files["image"]
	if len(imageFiles) == 0 || imageFiles[0].Size == 0 {
		app.badRequestResponse(writer, request, errors.New("no file provided"))
		return
	}

	fileHeader := imageFiles[0]

	file, err := fileHeader.Open()
	if err != nil {
		app.internalServerError(writer, request, err)
		return
	}
	defer file.Close()

	folder := app.config.storage.uploadFolder
	if form.Folder != "" {
		folder = form.Folder
	}

	assetKey := storage.GenerateAssetKey(fileHeader.Filename)
	contentType := storage.GetContentType(fileHeader.Filename)

	ctx, cancel := context.WithTimeout(request.Context(), app.config.storage.requestTimeout)
	defer cancel()

	asset, err := app.storageClient.Upload(ctx, folder, assetKey, file, contentType, fileHeader.Size)
	if err != nil {
		app.upstreamErrorResponse(writer, request, "upload", err)
		return
	}

	if err := writeJSON(writer, http.StatusOK, map[string]any{
		"success": true,
		"urls": map[string]string{
			"cloudURL": asset.SecureURL,
			"publicId": asset.PublicID,
		},
	}); err != nil {
		app.internalServerError(writer, request, err)
	}
}

// deleteImageHandler removes a previously stored asset by its public id. The
// id is never checked against issuance history; the store's own not-found
// status is authoritative.
func (app *application) deleteImageHandler(writer http.ResponseWriter, request *http.Request) {
	var payload deleteImagePayload

	if err := readJSON(writer, request, &payload); err != nil {
		app.badRequestResponse(writer, request, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(writer, request, errors.New("missing identifier"))
		return
	}

	ctx, cancel := context.WithTimeout(request.Context(), app.config.storage.requestTimeout)
	defer cancel()

	if app.config.storage.probeBeforeDelete {
		// Best-effort probe for a richer error message; a probe failure is
		// not fatal, the delete call below decides.
		found, err := app.storageClient.Exists(ctx, payload.PublicID)
		if err == nil && !found {
			app.notFoundResponse(writer, request, fmt.Errorf("asset %s not found", payload.PublicID))
			return
		}
	}

	status, err := app.storageClient.Delete(ctx, payload.PublicID)
	if err != nil {
		app.upstreamErrorResponse(writer, request, "delete", err)
		return
	}

	switch status {
	case storage.DeleteOK:
		if err := writeJSON(writer, http.StatusOK, map[string]any{
			"success": true,
			"message": "image deleted",
			"result":  string(status),
		}); err != nil {
			app.internalServerError(writer, request, err)
		}
	case storage.DeleteNotFound:
		app.notFoundResponse(writer, request, fmt.Errorf("asset %s not found", payload.PublicID))
	default:
		app.upstreamErrorResponse(writer, request, "delete", fmt.Errorf("unexpected delete status %q", status))
	}
}
