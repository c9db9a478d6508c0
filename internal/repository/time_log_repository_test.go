package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/workboard-api/internal/models"
)

func newTestTimeLogRepository(t *testing.T) TimeLogRepository {
	t.Helper()

	repo := NewTimeLogRepository()
	entries := []models.TimeLogEntry{
		{ID: "1", TaskID: "JIRA-123", TaskTitle: "API integration", Hours: 2.5, Description: "Initial setup",
			Date: time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), User: models.UserRef{ID: "user-1"}},
		{ID: "2", TaskID: "JIRA-125", TaskTitle: "Login bug", Hours: 1.5, Description: "Debugging",
			Date: time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), User: models.UserRef{ID: "user-3"}},
		{ID: "3", TaskID: "JIRA-123", TaskTitle: "API integration", Hours: 3, Description: "Auth endpoints",
			Date: time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC), User: models.UserRef{ID: "user-1"}},
	}
	for i := range entries {
		require.NoError(t, repo.Create(&entries[i]))
	}
	return repo
}

func TestTimeLogRepository_CreateDuplicate(t *testing.T) {
	repo := newTestTimeLogRepository(t)

	err := repo.Create(&models.TimeLogEntry{ID: "1"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 3, repo.Count())
}

func TestTimeLogRepository_List(t *testing.T) {
	repo := newTestTimeLogRepository(t)

	entries, err := repo.List(TimeLogFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "1", entries[0].ID)
	assert.Equal(t, "3", entries[2].ID)

	taskID := "JIRA-123"
	entries, err = repo.List(TimeLogFilter{TaskID: &taskID})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	userID := "user-3"
	entries, err = repo.List(TimeLogFilter{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2", entries[0].ID)

	entries, err = repo.List(TimeLogFilter{TextQuery: "LOGIN"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "JIRA-125", entries[0].TaskID)
}

func TestTimeLogRepository_Patch(t *testing.T) {
	repo := newTestTimeLogRepository(t)

	updated, err := repo.Patch("2", func(entry *models.TimeLogEntry) error {
		entry.Hours = 4
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.Hours)

	stored, err := repo.FindByID("2")
	require.NoError(t, err)
	assert.Equal(t, 4.0, stored.Hours)

	_, err = repo.Patch("2", func(entry *models.TimeLogEntry) error {
		entry.Hours = 9
		return errors.New("rejected")
	})
	assert.Error(t, err)
	stored, err = repo.FindByID("2")
	require.NoError(t, err)
	assert.Equal(t, 4.0, stored.Hours)

	_, err = repo.Patch("missing", func(entry *models.TimeLogEntry) error { return nil })
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestTimeLogRepository_Delete(t *testing.T) {
	repo := newTestTimeLogRepository(t)

	require.NoError(t, repo.Delete("2"))
	assert.Equal(t, 2, repo.Count())

	_, err := repo.FindByID("2")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, repo.Delete("2"))
	require.NoError(t, repo.Delete("missing"))
	assert.Equal(t, 2, repo.Count())

	entries, err := repo.List(TimeLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, "1", entries[0].ID)
	assert.Equal(t, "3", entries[1].ID)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository([]models.UserRef{
		{ID: "user-1", DisplayName: "María López"},
		{ID: "user-2", DisplayName: "Juan Pérez"},
		{ID: "user-1", DisplayName: "Duplicate"},
	})

	users, err := repo.List()
	require.NoError(t, err)
	assert.Len(t, users, 2)

	user, err := repo.FindByID("user-1")
	require.NoError(t, err)
	assert.Equal(t, "María López", user.DisplayName)

	_, err = repo.FindByID("user-9")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
