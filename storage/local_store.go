package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kostiantyn-povnych/weather-service/errors"
)

// LocalStore writes objects into a directory on the local filesystem.
type LocalStore struct {
	directory string
}

func NewLocalStore(directory string) (*LocalStore, error) {
	if directory == "" {
		return nil, errors.NewConfigurationError("data store directory cannot be empty", nil)
	}

	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, errors.NewDataStoreError("create data store directory", err)
	}

	return &LocalStore{directory: directory}, nil
}

func (s *LocalStore) Put(ctx context.Context, objectName string, data []byte) (string, error) {
	path, err := filepath.Abs(filepath.Join(s.directory, objectName))
	if err != nil {
		return "", errors.NewDataStoreError("resolve object path", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.NewDataStoreError("write object", err)
	}

	return path, nil
}
