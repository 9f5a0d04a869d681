package report

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	// ErrRender indicates the HTML could not be converted to PDF.
	ErrRender = errors.New("failed to create PDF report")

	// ErrReportNotFound indicates no stored report matches the key.
	ErrReportNotFound = errors.New("report not found")
)

// PdfRenderer converts an HTML document to PDF bytes.
type PdfRenderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// ArtifactStore persists rendered reports. storage.MinIOStorage satisfies it.
type ArtifactStore interface {
	UploadFile(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, error)
	GetPresignedURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
