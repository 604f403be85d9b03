package storage

import (
	"context"
)

// StorageClient defines the interface for artifact storage operations.
// Model files and generated reports are stored behind this interface so
// the pipeline runs against either the local filesystem or GCS.
type StorageClient interface {
	// Close closes the storage client
	Close() error

	// CreateDir creates a directory (and any necessary parent directories)
	CreateDir(ctx context.Context, dirPath string) error

	// StoreFile stores a file at the specified path, replacing any existing file
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// GetFile retrieves a file from the specified path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// DeleteFile removes a file at the specified path
	DeleteFile(ctx context.Context, filePath string) error

	// ListDir lists contents of a directory
	ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error)

	// FileExists checks if a file exists at the specified path
	FileExists(ctx context.Context, filePath string) (bool, error)

	// ListReports lists stored report pages, newest first
	ListReports(ctx context.Context, limit int) ([]string, error)

	// GetLatestReport returns the path of the most recent report page
	GetLatestReport(ctx context.Context) (string, error)
}
