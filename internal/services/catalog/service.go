package catalog

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/storage"
)

// Service holds the acronym catalog that rounds draw their questions from
type Service struct {
	storage storage.Storage

	mu      sync.RWMutex
	entries []model.Acronym
	loaded  bool
}

// New creates a new catalog service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
	}
}

// LoadFromStorage loads the catalog from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	entries, err := s.storage.GetCatalog(ctx)
	if err != nil {
		return err
	}
	return s.loadEntries(entries)
}

// LoadFromFile loads the catalog from a JSON file (an array of
// {"acronym", "definition"} objects) and saves it to storage
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var entries []model.Acronym
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	if len(entries) == 0 {
		return model.ErrCatalogEmpty
	}

	// Save to storage for future use
	if err := s.storage.SaveCatalog(ctx, entries); err != nil {
		return err
	}

	return s.loadEntries(entries)
}

// LoadEntries directly loads a slice of entries (useful for testing)
func (s *Service) LoadEntries(entries []model.Acronym) error {
	return s.loadEntries(entries)
}

func (s *Service) loadEntries(entries []model.Acronym) error {
	if len(entries) == 0 {
		return model.ErrCatalogEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]model.Acronym, len(entries))
	copy(s.entries, entries)
	s.loaded = true
	return nil
}

// Entries returns a copy of the catalog entries
func (s *Service) Entries() ([]model.Acronym, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, model.ErrCatalogNotLoaded
	}

	entries := make([]model.Acronym, len(s.entries))
	copy(entries, s.entries)
	return entries, nil
}

// Len returns the number of entries in the catalog
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Loaded reports whether a catalog has been loaded
func (s *Service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
