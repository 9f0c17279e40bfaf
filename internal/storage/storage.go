package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// DeleteStatus classifies the outcome of a delete against the media store.
type DeleteStatus string

const (
	DeleteOK       DeleteStatus = "ok"
	DeleteNotFound DeleteStatus = "not_found"
)

// Client is the capability surface of the external media store. Handlers
// depend on this interface so tests can substitute a recording fake.
type Client interface {
	Upload(ctx context.Context, folder, key string, body io.Reader, contentType string, size int64) (*Asset, error)
	Delete(ctx context.Context, publicID string) (DeleteStatus, error)
	Exists(ctx context.Context, publicID string) (bool, error)
}

// Asset is the address of a stored object as reported by the media store.
type Asset struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
}

// GenerateAssetKey derives the storage key for an upload:
// the current unix-millisecond timestamp joined to the original filename.
// The key is the client-facing identifier base and its format is a contract;
// the folder namespace is passed to Upload separately.
func GenerateAssetKey(originalFilename string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), originalFilename)
}

func GetContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}
