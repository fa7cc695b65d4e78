package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"company-rollup-go/internal/types"
)

// Loaded is a parsed input awaiting export.
type Loaded struct {
	ID       string        `json:"dataset_id"`
	FileName string        `json:"file_name"`
	LoadedAt time.Time     `json:"loaded_at"`
	Dataset  types.Dataset `json:"-"`
}

// MemoryStore holds the most recently loaded dataset.
type MemoryStore struct {
	current *Loaded
	mu      sync.RWMutex
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Set replaces the current dataset.
func (s *MemoryStore) Set(fileName string, ds types.Dataset) Loaded {
	l := &Loaded{
		ID:       uuid.New().String(),
		FileName: fileName,
		LoadedAt: s.now().UTC(),
		Dataset:  ds,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = l
	return *l
}

// Current returns the loaded dataset, if any.
func (s *MemoryStore) Current() (Loaded, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Loaded{}, false
	}
	return *s.current, true
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
