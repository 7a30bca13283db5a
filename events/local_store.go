package events

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/kostiantyn-povnych/weather-service/errors"
	"github.com/kostiantyn-povnych/weather-service/models"
)

// LocalStore appends one JSON line per event to a file.
type LocalStore struct {
	mu   sync.Mutex
	file *os.File
}

func NewLocalStore(filePath string) (*LocalStore, error) {
	if filePath == "" {
		return nil, errors.NewConfigurationError("event store file path cannot be empty", nil)
	}

	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.NewEventStoreError("create event store directory", err)
		}
	}

	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.NewEventStoreError("open event store file", err)
	}

	return &LocalStore{file: file}, nil
}

func (s *LocalStore) Record(ctx context.Context, event *models.EventRecord) error {
	data, err := json.Marshal(event)
	if err != nil {
		return errors.NewEventStoreError("marshal event record", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.file.Write(append(data, '\n')); err != nil {
		return errors.NewEventStoreError("append event record", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (s *LocalStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}
