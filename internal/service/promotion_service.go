package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"time-planner/internal/clock"
	"time-planner/internal/logger"
	"time-planner/internal/model"
	"time-planner/internal/repository"
)

// DefaultCategoryID is the category promoted and generated tasks land in.
const DefaultCategoryID uint = 1

// PromotionService converts due reminders into tasks for the day, marking
// each reminder promoted exactly once.
type PromotionService struct {
	reminders *repository.ReminderRepository
	tasks     *repository.TaskRepository
}

func NewPromotionService(reminders *repository.ReminderRepository, tasks *repository.TaskRepository) *PromotionService {
	return &PromotionService{reminders: reminders, tasks: tasks}
}

// PromoteDueReminders turns every unpromoted reminder dated today into a
// task, then bulk-marks the whole due set moved. Individual insert failures
// are logged and do not block the rest, and the bulk mark still runs, so a
// failed insert can leave a reminder moved without a task: at-most-once, not
// exactly-once. Returns the number of reminders in the due set.
func (s *PromotionService) PromoteDueReminders(ctx context.Context, today string) (int, error) {
	due, err := s.reminders.ListDue(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("promote reminders: %w", err)
	}

	for _, reminder := range due {
		task, err := taskFromReminder(reminder)
		if err != nil {
			logger.Error("skipping unpromotable reminder", err, zap.Uint("reminder_id", reminder.ID))
			continue
		}
		if err := s.tasks.Create(ctx, task); err != nil {
			logger.Error("reminder promotion insert failed", err, zap.Uint("reminder_id", reminder.ID))
		}
	}

	if err := s.reminders.BulkMarkMoved(ctx, today); err != nil {
		return 0, fmt.Errorf("promote reminders: %w", err)
	}
	return len(due), nil
}

// taskFromReminder builds the promoted task: weight 1, default category,
// clock times derived from the reminder's optional start and allotted
// minutes, sentinel-encoded when the reminder is untimed.
func taskFromReminder(reminder model.Reminder) (*model.Task, error) {
	categoryID := DefaultCategoryID
	task := &model.Task{
		Title:       reminder.Task,
		Description: "From reminder",
		Date:        reminder.Date,
		Weight:      1,
		CategoryID:  &categoryID,
	}

	if reminder.Time == nil {
		task.StartTime = "T:0"
		task.EndTime = "T:" + strconv.Itoa(reminder.Allotted)
		return task, nil
	}

	start, err := parseReminderTime(*reminder.Time)
	if err != nil {
		return nil, err
	}
	task.StartTime = clock.Format(start)
	task.EndTime = clock.Format(start + reminder.Allotted)
	return task, nil
}

// parseReminderTime decodes the 24-hour "HH:MM" form reminders are stored
// with.
func parseReminderTime(value string) (int, error) {
	hourPart, minutePart, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", clock.ErrMalformedTime, value)
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", clock.ErrMalformedTime, value)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", clock.ErrMalformedTime, value)
	}
	return hour*60 + minute, nil
}
