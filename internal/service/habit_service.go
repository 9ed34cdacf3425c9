package service

import (
	"context"

	"time-planner/internal/model"
	"time-planner/internal/repository"
)

// HabitService wraps direct habit bookkeeping. The agenda overlay and the
// completion-toggle mirrors go through their own services; this one serves
// the habit CRUD surface.
type HabitService struct {
	habits *repository.HabitRepository
}

func NewHabitService(habits *repository.HabitRepository) *HabitService {
	return &HabitService{habits: habits}
}

func (s *HabitService) UpsertStatus(ctx context.Context, taskName, date string, done, procrastinated bool, weight int) (*model.Habit, error) {
	return s.habits.UpsertStatus(ctx, taskName, date, done, procrastinated, weight)
}

func (s *HabitService) UpsertNotes(ctx context.Context, taskName, date string, weight int, notes string) (*model.Habit, error) {
	return s.habits.UpsertNotes(ctx, taskName, date, weight, notes)
}

func (s *HabitService) SearchByName(ctx context.Context, text string) ([]model.Habit, error) {
	return s.habits.SearchByName(ctx, text)
}

func (s *HabitService) FindByID(ctx context.Context, habitID uint) (*model.Habit, error) {
	return s.habits.FindByID(ctx, habitID)
}

func (s *HabitService) Save(ctx context.Context, habit *model.Habit) error {
	return s.habits.Save(ctx, habit)
}

func (s *HabitService) SoftDelete(ctx context.Context, habitID uint) error {
	return s.habits.SoftDelete(ctx, habitID)
}
