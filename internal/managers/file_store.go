package managers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/filebeam/filebeam/internal/domain"
)

const fileStoreDocument = "files.json"

// fileStore keeps every FileRecord in memory and rewrites the whole
// collection to a single JSON document on each mutation. That is atomic
// enough for one writer process; running a second writer against the same
// data directory corrupts the document.
type fileStore struct {
	mu      sync.RWMutex
	path    string
	records map[string]domain.FileRecord
}

type FileStoreDependencies struct {
	DataDir string
}

func NewFileStore(deps FileStoreDependencies) (domain.FileStore, error) {
	if err := os.MkdirAll(deps.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store := &fileStore{
		path:    filepath.Join(deps.DataDir, fileStoreDocument),
		records: make(map[string]domain.FileRecord),
	}

	if err := store.load(); err != nil {
		return nil, fmt.Errorf("failed to load file store: %w", err)
	}

	return store, nil
}

func (s *fileStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", s.path, err)
	}

	return nil
}

// save rewrites the entire collection. Caller must hold the write lock.
func (s *fileStore) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}

	return nil
}

func (s *fileStore) Put(record domain.FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.Key]; exists {
		return fmt.Errorf("put %q: %w", record.Key, domain.ErrKeyConflict)
	}

	s.records[record.Key] = record

	return s.save()
}

func (s *fileStore) Get(key string) (domain.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[key]
	if !ok {
		return domain.FileRecord{}, domain.ErrFileNotFound
	}

	return record, nil
}

func (s *fileStore) SetPassword(key string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok {
		return domain.ErrFileNotFound
	}

	record.Password = password
	record.PasswordProtected = true
	s.records[key] = record

	return s.save()
}

func (s *fileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[key]; !ok {
		return domain.ErrFileNotFound
	}

	delete(s.records, key)

	return s.save()
}

func (s *fileStore) ListByOwner(userID int64) ([]domain.FileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var owned []domain.FileRecord
	for _, record := range s.records {
		if record.OwnerID == userID {
			owned = append(owned, record)
		}
	}

	return owned, nil
}
