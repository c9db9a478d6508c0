package repository

import (
	"github.com/yukikurage/workboard-api/internal/models"
)

// MemoryUserRepository is a read-only, in-memory implementation of
// UserRepository. It is filled once at construction and never mutated.
type MemoryUserRepository struct {
	users []models.UserRef
	index map[string]int
}

// NewUserRepository creates a new UserRepository holding users. Later
// duplicates of an ID are ignored.
func NewUserRepository(users []models.UserRef) UserRepository {
	r := &MemoryUserRepository{
		users: make([]models.UserRef, 0, len(users)),
		index: make(map[string]int, len(users)),
	}

	for _, user := range users {
		if _, exists := r.index[user.ID]; exists {
			continue
		}
		r.index[user.ID] = len(r.users)
		r.users = append(r.users, user)
	}

	return r
}

// FindByID finds a user by ID
func (r *MemoryUserRepository) FindByID(id string) (*models.UserRef, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	user := r.users[i]
	return &user, nil
}

// List returns all users
func (r *MemoryUserRepository) List() ([]models.UserRef, error) {
	users := make([]models.UserRef, len(r.users))
	copy(users, r.users)
	return users, nil
}
