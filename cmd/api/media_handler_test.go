package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"godsendjoseph.dev/media-api/internal/notification"
	ratelimiter "godsendjoseph.dev/media-api/internal/rateLimiter"
	"godsendjoseph.dev/media-api/internal/storage"
)

// fakeStorageClient records every call so tests can assert that handlers
// reject bad input before reaching the store. Unless an error or status is
// preset, Upload echoes the key back as both URL and id.
type fakeStorageClient struct {
	uploadCalls int
	deleteCalls int
	existsCalls int

	lastFolder      string
	lastKey         string
	lastContentType string
	lastBody        []byte
	lastDeletedID   string

	uploadErr    error
	deleteStatus storage.DeleteStatus
	deleteErr    error
	existsResult bool
	existsErr    error
}

func (f *fakeStorageClient) Upload(_ context.Context, folder, key string, body io.Reader, contentType string, _ int64) (*storage.Asset, error) {
	f.uploadCalls++
	f.lastFolder = folder
	f.lastKey = key
	f.lastContentType = contentType
	f.lastBody, _ = io.ReadAll(body)

	if f.uploadErr != nil {
		return nil, f.uploadErr
	}

	return &storage.Asset{
		PublicID:  key,
		SecureURL: "https://x/" + key,
	}, nil
}

func (f *fakeStorageClient) Delete(_ context.Context, publicID string) (storage.DeleteStatus, error) {
	f.deleteCalls++
	f.lastDeletedID = publicID

	if f.deleteErr != nil {
		return "", f.deleteErr
	}
	if f.deleteStatus != "" {
		return f.deleteStatus, nil
	}
	return storage.DeleteOK, nil
}

func (f *fakeStorageClient) Exists(_ context.Context, _ string) (bool, error) {
	f.existsCalls++
	return f.existsResult, f.existsErr
}

func newTestApplication(t *testing.T, client storage.Client) *application {
	t.Helper()

	return &application{
		config: config{
			env:           "test",
			maxUploadSize: 10 << 20,
			storage: storageConfig{
				uploadFolder:   "uploads",
				requestTimeout: time.Second * 5,
			},
			rateLimiter: ratelimiter.Config{Enabled: false},
		},
		logger:        zap.NewNop().Sugar(),
		storageClient: client,
		rateLimiter:   ratelimiter.NewFixedWindowLimiter(100, time.Minute),
		slackNotifier: notification.NewSlackNotifier("", "", "", "", false),
	}
}

func newUploadRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	if filename != "" {
		part, err := form.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, form.WriteField(key, value))
	}
	require.NoError(t, form.Close())

	request := httptest.NewRequest(http.MethodPost, "/upload-image", body)
	request.Header.Set("Content-Type", form.FormDataContentType())
	return request
}

func decodeResponse(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&payload))
	return payload
}

func TestUploadImageMissingFile(t *testing.T) {
	fake := &fakeStorageClient{}
	app := newTestApplication(t, fake)

	request := newUploadRequest(t, "", nil, map[string]string{"folder": "uploads"})
	recorder := httptest.NewRecorder()

	app.mount().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	payload := decodeResponse(t, recorder)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "bad_request", payload["error"])
	assert.Equal(t, "no file provided", payload["message"])
	assert.Zero(t, fake.uploadCalls, "an absent file must never reach the store")
}

func TestUploadImageEmptyFile(t *testing.T) {
	fake := &fakeStorageClient{}
	app := newTestApplication(t, fake)

	request := newUploadRequest(t, "cat.png", nil, nil)
	recorder := httptest.NewRecorder()

	app.mount().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	payload := decodeResponse(t, recorder)
	assert.Equal(t, false, payload["success"])
	assert.Zero(t, fake.uploadCalls)
}

func TestUploadImageRoundTrip(t *testing.T) {
	fake := &fakeStorageClient{}
	app := newTestApplication(t, fake)

	request := newUploadRequest(t, "a.jpg", []byte{1, 2, 3}, nil)
	recorder := httptest.NewRecorder()

	app.mount().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decodeResponse(t, recorder)
	assert.Equal(t, true, payload["success"])

	urls, ok := payload["urls"].(map[string]any)
	require.True(t, ok, "success payload should carry the urls object")
	assert.True(t, strings.HasSuffix(urls["cloudURL"].(string), "a.jpg"))
	assert.Equal(t, fake.lastKey, urls["publicId"], "publicId must equal the key passed to the store")

	assert.Equal(t, 1, fake.uploadCalls)
	assert.Equal(t, "uploads", fake.lastFolder)
	assert.Equal(t, []byte{1, 2, 3}, fake.lastBody)
	assert.Equal(t, "image/jpeg", fake.lastContentType)
}

func TestUploadImageFolderOverride(t *testing.T) {
	fake := &fakeStorageClient{}
	app := newTestApplication(t, fake)

	request := newUploadRequest(t, "a.jpg", []byte{1}, map[string]string{"folder": "avatars"})
	recorder := httptest.NewRecorder()

	app.mount().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "avatars", fake.lastFolder)
}

func TestUploadImageUpstreamError(t *testing.T) {
	fake := &fakeStorageClient{uploadErr: assert.AnError}
	app := newTestApplication(t, fake)

	request := newUploadRequest(t, "a.jpg", []byte{1, 2, 3}, nil)
	recorder := httptest.NewRecorder()

	app.mount().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	payload := decodeResponse(t, recorder)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "upstream_error", payload["error"])
	assert.Equal(t, assert.AnError.Error(), payload["message"], "the upstream message is relayed verbatim")
}

func TestUploadImageQuotaMessageRelayed(t *testing.T) {
	fake := &fakeStorageClient{uploadErr: errors.New("quota exceeded")}
	app := newTestApplication(t, fake)

	request := newUploadRequest(t, "a.jpg", []byte{1, 2, 3}, nil)
	recorder := httptest.NewRecorder()

	app.mount().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	payload := decodeResponse(t, recorder)
	assert.Equal(t, "quota exceeded", payload["message"])
}

func newDeleteRequest(t *testing.T, body string) *http.Request {
	t.Helper()

	request := httptest.NewRequest(http.MethodDelete, "/delete-image", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	return request
}

func TestDeleteImageMissingID(t *testing.T) {
	fake := &fakeStorageClient{}
	app := newTestApplication(t, fake)

	for _, body := range []string{`{}`, `{"public_id": ""}`} {
		recorder := httptest.NewRecorder()
		app.mount().ServeHTTP(recorder, newDeleteRequest(t, body))

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		payload := decodeResponse(t, recorder)
		assert.Equal(t, false, payload["success"])
		assert.Equal(t, "bad_request", payload["error"])
		assert.Equal(t, "missing identifier", payload["message"])
	}

	assert.Zero(t, fake.deleteCalls, "a missing identifier must never reach the store")
}

func TestDeleteImageOK(t *testing.T) {
	fake := &fakeStorageClient{deleteStatus: storage.DeleteOK}
	app := newTestApplication(t, fake)

	recorder := httptest.NewRecorder()
	app.mount().ServeHTTP(recorder, newDeleteRequest(t, `{"public_id": "real-1"}`))

	require.Equal(t, http.StatusOK, recorder.Code)
	payload := decodeResponse(t, recorder)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "ok", payload["result"])
	assert.Equal(t, "real-1", fake.lastDeletedID)
}

func TestDeleteImageNotFound(t *testing.T) {
	fake := &fakeStorageClient{deleteStatus: storage.DeleteNotFound}
	app := newTestApplication(t, fake)

	recorder := httptest.NewRecorder()
	app.mount().ServeHTTP(recorder, newDeleteRequest(t, `{"public_id": "missing-1"}`))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	payload := decodeResponse(t, recorder)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "not_found", payload["error"])
}

func TestDeleteImageUnknownStatus(t *testing.T) {
	fake := &fakeStorageClient{deleteStatus: storage.DeleteStatus("pending")}
	app := newTestApplication(t, fake)

	recorder := httptest.NewRecorder()
	app.mount().ServeHTTP(recorder, newDeleteRequest(t, `{"public_id": "real-1"}`))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	payload := decodeResponse(t, recorder)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "upstream_error", payload["error"])
	assert.Contains(t, payload["message"], "pending", "the raw status is echoed for diagnostics")
}

func TestDeleteImageUpstreamError(t *testing.T) {
	fake := &fakeStorageClient{deleteErr: assert.AnError}
	app := newTestApplication(t, fake)

	recorder := httptest.NewRecorder()
	app.mount().ServeHTTP(recorder, newDeleteRequest(t, `{"public_id": "real-1"}`))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	payload := decodeResponse(t, recorder)
	assert.Equal(t, "upstream_error", payload["error"])
	assert.Equal(t, assert.AnError.Error(), payload["message"])
}

func TestDeleteImageProbeShortCircuit(t *testing.T) {
	fake := &fakeStorageClient{existsResult: false}
	app := newTestApplication(t, fake)
	app.config.storage.probeBeforeDelete = true

	recorder := httptest.NewRecorder()
	app.mount().ServeHTTP(recorder, newDeleteRequest(t, `{"public_id": "missing-1"}`))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, 1, fake.existsCalls)
	assert.Zero(t, fake.deleteCalls, "a failed probe short-circuits before the delete call")
}

func TestDeleteImageProbeErrorFallsThrough(t *testing.T) {
	fake := &fakeStorageClient{existsErr: assert.AnError, deleteStatus: storage.DeleteOK}
	app := newTestApplication(t, fake)
	app.config.storage.probeBeforeDelete = true

	recorder := httptest.NewRecorder()
	app.mount().ServeHTTP(recorder, newDeleteRequest(t, `{"public_id": "real-1"}`))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, fake.deleteCalls, "a probe error must not block the delete itself")
}
