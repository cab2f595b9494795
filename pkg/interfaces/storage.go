package interfaces

import (
	"context"
	"io"
)

// StoredFile describes an uploaded asset. URL is opaque to callers and is
// embedded as-is inside section content.
type StoredFile struct {
	URL      string `json:"url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

// FileStorage persists uploaded files.
type FileStorage interface {
	Store(ctx context.Context, name, contentType string, body io.Reader) (StoredFile, error)
}
