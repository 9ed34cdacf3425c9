package service

import (
	"context"
	"fmt"
	"time"

	"time-planner/internal/model"
	"time-planner/internal/repository"
)

// ReminderInput represents data required to create or update a reminder.
type ReminderInput struct {
	Task      string  `json:"task"`
	Date      string  `json:"date"`
	Time      *string `json:"time"`
	Repeat    string  `json:"repeat"`
	Completed bool    `json:"completed"`
	Allotted  *int    `json:"allotted"`
}

// ReminderService wraps reminder bookkeeping, including the recurrence rule:
// completing a repeating reminder spawns the next occurrence as a fresh row
// rather than mutating the current one.
type ReminderService struct {
	reminders *repository.ReminderRepository
}

func NewReminderService(reminders *repository.ReminderRepository) *ReminderService {
	return &ReminderService{reminders: reminders}
}

func (s *ReminderService) Create(ctx context.Context, input ReminderInput) (*model.Reminder, error) {
	if input.Task == "" || input.Date == "" {
		return nil, fmt.Errorf("task and date are required")
	}

	reminder := model.Reminder{
		Task:      input.Task,
		Date:      input.Date,
		Time:      input.Time,
		Repeat:    input.Repeat,
		Completed: input.Completed,
	}
	if reminder.Repeat == "" {
		reminder.Repeat = model.RepeatNone
	}
	if input.Allotted != nil {
		reminder.Allotted = *input.Allotted
	}

	if err := s.reminders.Create(ctx, &reminder); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (s *ReminderService) List(ctx context.Context) ([]model.Reminder, error) {
	return s.reminders.List(ctx)
}

func (s *ReminderService) ListRange(ctx context.Context, startDate, endDate string) ([]model.Reminder, error) {
	return s.reminders.ListRange(ctx, startDate, endDate)
}

func (s *ReminderService) Get(ctx context.Context, reminderID uint) (*model.Reminder, error) {
	return s.reminders.FindByID(ctx, reminderID)
}

// Update replaces a reminder's fields and resets its promotion mark, so an
// edited reminder becomes due again.
func (s *ReminderService) Update(ctx context.Context, reminderID uint, input ReminderInput) error {
	reminder, err := s.reminders.FindByID(ctx, reminderID)
	if err != nil {
		return err
	}
	reminder.Task = input.Task
	reminder.Date = input.Date
	reminder.Time = input.Time
	reminder.Repeat = input.Repeat
	reminder.Completed = input.Completed
	if input.Allotted != nil {
		reminder.Allotted = *input.Allotted
	}
	reminder.Moved = false
	return s.reminders.Save(ctx, reminder)
}

func (s *ReminderService) Delete(ctx context.Context, reminderID uint) error {
	return s.reminders.Delete(ctx, reminderID)
}

// ToggleCompleted flips a reminder's completion state. Marking a repeating
// reminder completed creates a new reminder at the next occurrence with the
// same task, time and repeat kind.
func (s *ReminderService) ToggleCompleted(ctx context.Context, reminderID uint) (*model.Reminder, error) {
	reminder, err := s.reminders.FindByID(ctx, reminderID)
	if err != nil {
		return nil, err
	}

	wasCompleted := reminder.Completed
	reminder.Completed = !wasCompleted
	if err := s.reminders.Save(ctx, reminder); err != nil {
		return nil, err
	}

	if reminder.Repeat != model.RepeatNone && !wasCompleted {
		nextDate, err := NextOccurrence(reminder.Date, reminder.Repeat)
		if err != nil {
			return nil, err
		}
		next := model.Reminder{
			Task:     reminder.Task,
			Date:     nextDate,
			Time:     reminder.Time,
			Repeat:   reminder.Repeat,
			Allotted: reminder.Allotted,
		}
		if err := s.reminders.Create(ctx, &next); err != nil {
			return nil, err
		}
	}
	return reminder, nil
}

// NextOccurrence advances a civil date by one repeat interval. An unknown
// repeat kind leaves the date unchanged.
func NextOccurrence(date, repeat string) (string, error) {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("bad date %q: %w", date, err)
	}
	switch repeat {
	case model.RepeatWeekly:
		t = t.AddDate(0, 0, 7)
	case model.RepeatBiweekly:
		t = t.AddDate(0, 0, 14)
	case model.RepeatMonthly:
		t = t.AddDate(0, 1, 0)
	case model.RepeatQuarterly:
		t = t.AddDate(0, 3, 0)
	case model.RepeatYearly:
		t = t.AddDate(1, 0, 0)
	default:
		return date, nil
	}
	return t.Format(model.DateLayout), nil
}
