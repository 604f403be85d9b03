package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"plantcast/internal/logger"
)

// GCSClient handles Google Cloud Storage operations
type GCSClient struct {
	client *storage.Client
	bucket string
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// CreateDir is a no-op for GCS since object paths imply their directories
func (g *GCSClient) CreateDir(ctx context.Context, dirPath string) error {
	return nil
}

// StoreFile stores a file in GCS at the given object path. GCS uploads are
// atomic at the object level: the object only becomes visible once the
// writer is closed successfully.
func (g *GCSClient) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	logger.Debug("Storing file to GCS", map[string]interface{}{
		"bucket": g.bucket,
		"object": filePath,
	})

	bucket := g.client.Bucket(g.bucket)
	obj := bucket.Object(filePath)

	writer := obj.NewWriter(ctx)
	writer.ContentType = GetContentType(filePath)
	writer.CacheControl = "public, max-age=3600" // Cache for 1 hour
	writer.Metadata = map[string]string{
		"stored-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}

	return nil
}

// GetFile retrieves a file from GCS
func (g *GCSClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	bucket := g.client.Bucket(g.bucket)
	obj := bucket.Object(filePath)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", filePath, err)
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return fileData, nil
}

// DeleteFile removes an object from GCS
func (g *GCSClient) DeleteFile(ctx context.Context, filePath string) error {
	bucket := g.client.Bucket(g.bucket)
	if err := bucket.Object(filePath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", filePath, err)
	}
	return nil
}

// ListDir lists object paths under a prefix
func (g *GCSClient) ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error) {
	bucket := g.client.Bucket(g.bucket)

	prefix := dirPath
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	query := &storage.Query{Prefix: prefix}
	if !recursive {
		query.Delimiter = "/"
	}

	it := bucket.Objects(ctx, query)

	var entries []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		if attrs.Name != "" {
			entries = append(entries, attrs.Name)
		} else if attrs.Prefix != "" {
			entries = append(entries, attrs.Prefix)
		}
	}

	sort.Strings(entries)
	return entries, nil
}

// FileExists checks whether an object exists in GCS
func (g *GCSClient) FileExists(ctx context.Context, filePath string) (bool, error) {
	bucket := g.client.Bucket(g.bucket)
	_, err := bucket.Object(filePath).Attrs(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object %s: %w", filePath, err)
	}
	return true, nil
}

// ListReports lists report pages from GCS, newest first
func (g *GCSClient) ListReports(ctx context.Context, limit int) ([]string, error) {
	bucket := g.client.Bucket(g.bucket)

	query := &storage.Query{
		Prefix: "reports/",
	}

	it := bucket.Objects(ctx, query)

	var reportPaths []string

	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		// Report pages are always named index.html
		if strings.HasSuffix(attrs.Name, "/index.html") {
			reportPaths = append(reportPaths, attrs.Name)
		}
	}

	// Folder names embed the timestamp, so a reverse sort yields newest first
	sort.Sort(sort.Reverse(sort.StringSlice(reportPaths)))

	if limit > 0 && limit < len(reportPaths) {
		reportPaths = reportPaths[:limit]
	}

	return reportPaths, nil
}

// GetLatestReport gets the most recent report page from GCS
func (g *GCSClient) GetLatestReport(ctx context.Context) (string, error) {
	reports, err := g.ListReports(ctx, 1)
	if err != nil {
		return "", err
	}

	if len(reports) == 0 {
		return "", fmt.Errorf("no reports found")
	}

	return reports[0], nil
}
