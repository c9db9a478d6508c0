package repository

import (
	"sync"

	"github.com/yukikurage/workboard-api/internal/models"
)

// MemoryTimeLogRepository is an in-memory implementation of TimeLogRepository
type MemoryTimeLogRepository struct {
	mu      sync.RWMutex
	entries []models.TimeLogEntry
}

// NewTimeLogRepository creates a new TimeLogRepository
func NewTimeLogRepository() TimeLogRepository {
	return &MemoryTimeLogRepository{}
}

// Create creates a new entry
func (r *MemoryTimeLogRepository) Create(entry *models.TimeLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(entry.ID) >= 0 {
		return ErrDuplicateKey
	}

	r.entries = append(r.entries, *entry)
	return nil
}

// FindByID finds an entry by ID
func (r *MemoryTimeLogRepository) FindByID(id string) (*models.TimeLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	entry := r.entries[i]
	return &entry, nil
}

// List retrieves entries with filtering
func (r *MemoryTimeLogRepository) List(filter TimeLogFilter) ([]models.TimeLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	text := newTextMatcher(filter.TextQuery)
	entries := make([]models.TimeLogEntry, 0, len(r.entries))

	for _, entry := range r.entries {
		if filter.TaskID != nil && entry.TaskID != *filter.TaskID {
			continue
		}
		if filter.UserID != nil && entry.User.ID != *filter.UserID {
			continue
		}
		if !text.match(entry.TaskID, entry.TaskTitle, entry.Description) {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Patch edits an entry atomically. fn must not change the ID.
func (r *MemoryTimeLogRepository) Patch(id string, fn func(entry *models.TimeLogEntry) error) (*models.TimeLogEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	entry := r.entries[i]
	if err := fn(&entry); err != nil {
		return nil, err
	}
	entry.ID = id

	r.entries[i] = entry
	return &entry, nil
}

// Delete removes an entry if present
func (r *MemoryTimeLogRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil
	}

	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	return nil
}

// Count returns the number of stored entries
func (r *MemoryTimeLogRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// indexOf must be called with the lock held
func (r *MemoryTimeLogRepository) indexOf(id string) int {
	for i := range r.entries {
		if r.entries[i].ID == id {
			return i
		}
	}
	return -1
}
