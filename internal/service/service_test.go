package service_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"time-planner/internal/repository"
)

// testEnv wires all repositories over a throwaway SQLite file.
type testEnv struct {
	db         *gorm.DB
	tasks      *repository.TaskRepository
	habits     *repository.HabitRepository
	reminders  *repository.ReminderRepository
	categories *repository.CategoryRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)
	return &testEnv{
		db:         db,
		tasks:      repository.NewTaskRepository(db),
		habits:     repository.NewHabitRepository(db),
		reminders:  repository.NewReminderRepository(db),
		categories: repository.NewCategoryRepository(db),
	}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
