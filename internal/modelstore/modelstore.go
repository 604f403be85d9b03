package modelstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"plantcast/internal/forest"
	"plantcast/internal/storage"
)

// ErrNotFound is returned when no trained model exists for a fuel type.
var ErrNotFound = errors.New("model not found")

// Store persists trained forests behind a storage client. One model file is
// kept per fuel type under models/model_<fuel>.json.
type Store struct {
	storage storage.StorageClient
}

// New creates a model store backed by the given storage client
func New(client storage.StorageClient) *Store {
	return &Store{storage: client}
}

// Save serializes the forest and stores it at the fuel type's model path.
// Storage backends replace files atomically, so a reader loading during a
// save sees either the old model or the new one, never a partial file.
func (s *Store) Save(ctx context.Context, f *forest.Forest) error {
	if f == nil || f.FuelType == "" {
		return fmt.Errorf("cannot save model without a fuel type")
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to serialize %s model: %w", f.FuelType, err)
	}

	filePath := storage.ModelFilePath(f.FuelType)
	if err := s.storage.StoreFile(ctx, filePath, data); err != nil {
		return fmt.Errorf("failed to store %s model: %w", f.FuelType, err)
	}

	return nil
}

// Load reads the trained model for a fuel type. Returns ErrNotFound when no
// model file exists, so callers can fall back instead of failing.
func (s *Store) Load(ctx context.Context, fuelType string) (*forest.Forest, error) {
	filePath := storage.ModelFilePath(fuelType)

	exists, err := s.storage.FileExists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check for %s model: %w", fuelType, err)
	}
	if !exists {
		return nil, fmt.Errorf("no model for %s: %w", fuelType, ErrNotFound)
	}

	data, err := s.storage.GetFile(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s model: %w", fuelType, err)
	}

	var f forest.Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode %s model: %w", fuelType, err)
	}

	if f.FuelType != fuelType {
		return nil, fmt.Errorf("model file %s holds %q, expected %q", filePath, f.FuelType, fuelType)
	}

	return &f, nil
}

// List returns the fuel types that currently have a stored model.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := s.storage.ListDir(ctx, storage.ModelsDir, false)
	if err != nil {
		// No models directory yet means no models
		return nil, nil
	}

	var fuelTypes []string
	for _, entry := range entries {
		name := path.Base(entry)
		if strings.HasPrefix(name, "model_") && strings.HasSuffix(name, ".json") {
			fuelTypes = append(fuelTypes, strings.TrimSuffix(strings.TrimPrefix(name, "model_"), ".json"))
		}
	}

	return fuelTypes, nil
}
