package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LocalClient handles local file system storage operations
type LocalClient struct {
	baseDir string
}

// NewLocalClient creates a new local storage client rooted at baseDir
func NewLocalClient(baseDir string) (*LocalClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalClient{
		baseDir: baseDir,
	}, nil
}

// BaseDir returns the root directory of this client
func (l *LocalClient) BaseDir() string {
	return l.baseDir
}

// Close is a no-op for local storage (implements same interface as GCSClient)
func (l *LocalClient) Close() error {
	return nil
}

// CreateDir creates a directory and any necessary parents
func (l *LocalClient) CreateDir(ctx context.Context, dirPath string) error {
	fullPath := filepath.Join(l.baseDir, dirPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
	}
	return nil
}

// StoreFile writes a file under the base directory. The write goes to a
// temporary file first and is renamed into place, so readers never observe
// a partially written file and existing files are replaced atomically.
func (l *LocalClient) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	fullPath := filepath.Join(l.baseDir, filePath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(fullPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(fileData); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, fullPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move file into place at %s: %w", fullPath, err)
	}

	return nil
}

// GetFile retrieves a file from local storage
func (l *LocalClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	fullPath := filepath.Join(l.baseDir, filePath)
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fullPath, err)
	}
	return data, nil
}

// DeleteFile removes a file from local storage
func (l *LocalClient) DeleteFile(ctx context.Context, filePath string) error {
	fullPath := filepath.Join(l.baseDir, filePath)
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}
	return nil
}

// ListDir lists contents of a directory relative to the base directory
func (l *LocalClient) ListDir(ctx context.Context, dirPath string, recursive bool) ([]string, error) {
	fullPath := filepath.Join(l.baseDir, dirPath)

	var entries []string

	if recursive {
		err := filepath.Walk(fullPath, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return nil // Skip errors and continue
			}
			if !info.IsDir() {
				relPath, _ := filepath.Rel(l.baseDir, path)
				entries = append(entries, filepath.ToSlash(relPath))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", fullPath, err)
		}
	} else {
		dirEntries, err := os.ReadDir(fullPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
		}
		for _, entry := range dirEntries {
			relPath := filepath.Join(dirPath, entry.Name())
			entries = append(entries, filepath.ToSlash(relPath))
		}
	}

	sort.Strings(entries)
	return entries, nil
}

// FileExists checks whether a file exists in local storage
func (l *LocalClient) FileExists(ctx context.Context, filePath string) (bool, error) {
	fullPath := filepath.Join(l.baseDir, filePath)
	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file %s: %w", fullPath, err)
	}
	return !info.IsDir(), nil
}

// ListReports lists report pages from local storage, newest first
func (l *LocalClient) ListReports(ctx context.Context, limit int) ([]string, error) {
	reportsPath := filepath.Join(l.baseDir, "reports")

	var reportPaths []string

	err := filepath.Walk(reportsPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors and continue
		}

		// Report pages are always named index.html
		if info.Name() == "index.html" {
			relPath, _ := filepath.Rel(l.baseDir, path)
			reportPaths = append(reportPaths, filepath.ToSlash(relPath))
		}
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk reports directory: %w", err)
	}

	// Folder names embed the timestamp, so a reverse sort yields newest first
	sort.Sort(sort.Reverse(sort.StringSlice(reportPaths)))

	if limit > 0 && limit < len(reportPaths) {
		reportPaths = reportPaths[:limit]
	}

	return reportPaths, nil
}

// GetLatestReport gets the most recent report page from local storage
func (l *LocalClient) GetLatestReport(ctx context.Context) (string, error) {
	reports, err := l.ListReports(ctx, 1)
	if err != nil {
		return "", err
	}

	if len(reports) == 0 {
		return "", fmt.Errorf("no reports found")
	}

	return reports[0], nil
}
