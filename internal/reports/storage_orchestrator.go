package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"plantcast/internal/logger"
	"plantcast/internal/storage"
)

// StorageOrchestrator writes a report's files to the configured storage
// backend under the report's folder path.
type StorageOrchestrator struct {
	storage storage.StorageClient
	log     *logger.Logger
}

// NewStorageOrchestrator creates a storage orchestrator
func NewStorageOrchestrator(storageClient storage.StorageClient) *StorageOrchestrator {
	return &StorageOrchestrator{
		storage: storageClient,
		log:     logger.GetGlobalLogger().WithComponent("storage_orchestrator"),
	}
}

// StoreAllFiles persists every artifact under files.FolderPath. index.html
// goes last so the report index never lists a folder whose page is missing.
func (so *StorageOrchestrator) StoreAllFiles(ctx context.Context, files *GeneratedFiles) error {
	if files == nil {
		return fmt.Errorf("no files to store")
	}
	if files.FolderPath == "" {
		return fmt.Errorf("report folder path is empty")
	}
	if files.HTMLContent == "" {
		return fmt.Errorf("report HTML is empty")
	}

	start := time.Now()
	if err := so.storage.CreateDir(ctx, files.FolderPath); err != nil {
		return fmt.Errorf("failed to create report folder: %w", err)
	}

	stored := 0
	for _, name := range sortedKeys(files.JSONFiles) {
		if err := so.storeOne(ctx, files.FolderPath, name, files.JSONFiles[name]); err != nil {
			return err
		}
		stored++
	}
	for _, name := range sortedKeys(files.AssetFiles) {
		if err := so.storeOne(ctx, files.FolderPath, name, files.AssetFiles[name]); err != nil {
			return err
		}
		stored++
	}
	if files.MarkdownContent != "" {
		if err := so.storeOne(ctx, files.FolderPath, "report.md", []byte(files.MarkdownContent)); err != nil {
			return err
		}
		stored++
	}
	if err := so.storeOne(ctx, files.FolderPath, "index.html", []byte(files.HTMLContent)); err != nil {
		return err
	}
	stored++

	so.log.Info("Report stored", map[string]interface{}{
		"folder":   files.FolderPath,
		"files":    stored,
		"duration": time.Since(start).String(),
	})
	return nil
}

func (so *StorageOrchestrator) storeOne(ctx context.Context, folder, name string, data []byte) error {
	path := folder + "/" + name
	if err := so.storage.StoreFile(ctx, path, data); err != nil {
		return fmt.Errorf("failed to store %s: %w", path, err)
	}
	return nil
}

// ReportURL returns the service-relative URL of the stored report page.
func (so *StorageOrchestrator) ReportURL(files *GeneratedFiles) string {
	return "/files/" + files.FolderPath + "/index.html"
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
