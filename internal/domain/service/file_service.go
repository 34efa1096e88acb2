package service

import (
	"context"
	"io"
)

// FileUploadService stores public objects and returns their URL.
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, contentType, objectPath string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
