package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"time-planner/internal/model"
	"time-planner/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Weight          int    `json:"weight"`
	Completed       bool   `json:"completed"`
	CategoryID      *uint  `json:"category_id"`
	RepeatEveryDays *int   `json:"repeat_every_days"`
	Reassign        bool   `json:"reassign"`
}

// TaskUpdate carries the editable fields of a full task update.
type TaskUpdate struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Weight          int    `json:"weight"`
	CategoryID      *uint  `json:"category_id"`
	RepeatEveryDays *int   `json:"repeat_every_days"`
}

// TaskService wraps task-level business logic: creation with the advisory
// duplicate guard, completion toggles with their habit side effects, and the
// recurrence expansion that regenerates repeating tasks.
type TaskService struct {
	tasks  *repository.TaskRepository
	habits *repository.HabitRepository
}

func NewTaskService(tasks *repository.TaskRepository, habits *repository.HabitRepository) *TaskService {
	return &TaskService{tasks: tasks, habits: habits}
}

// Create inserts a task unless an active task with the same title, start
// time and date already exists. The returned bool reports whether the input
// was rejected as a duplicate.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*model.Task, bool, error) {
	if input.Title == "" {
		return nil, false, fmt.Errorf("title is required")
	}

	exists, err := s.tasks.ActiveDuplicateExists(ctx, input.Title, input.StartTime, input.Date)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, true, nil
	}

	task := model.Task{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Weight:      input.Weight,
		Completed:   input.Completed,
		CategoryID:  input.CategoryID,
	}
	// Routine markers are evergreen; they never carry a repeat interval or
	// the reassign flag.
	if !model.ContainsRoutineMarker(input.Title) {
		task.RepeatEveryDays = input.RepeatEveryDays
		task.Reassign = input.Reassign
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, false, err
	}
	return &task, false, nil
}

func (s *TaskService) Get(ctx context.Context, taskID uint) (*model.Task, error) {
	return s.tasks.FindByID(ctx, taskID)
}

// Update replaces the editable fields of a task.
func (s *TaskService) Update(ctx context.Context, taskID uint, update TaskUpdate) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	task.Title = update.Title
	task.Description = update.Description
	task.StartTime = update.StartTime
	task.EndTime = update.EndTime
	task.Weight = update.Weight
	task.CategoryID = update.CategoryID
	task.RepeatEveryDays = update.RepeatEveryDays
	return s.tasks.Save(ctx, task)
}

// SetCompleted stores the completion flag and runs the side effects of a
// completion toggle: routine tasks mirror the new state into the day's habit
// record, and a toggle to true on a repeating task schedules its next
// occurrence.
func (s *TaskService) SetCompleted(ctx context.Context, taskID uint, completed bool, date string) (*model.Task, error) {
	if err := s.tasks.SetColumn(ctx, taskID, "completed", completed); err != nil {
		return nil, err
	}
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if isRoutineLike(task) {
		if _, err := s.habits.UpsertStatus(ctx, task.Title, date, completed, false, task.Weight); err != nil {
			return nil, err
		}
	}
	if completed && task.RepeatEveryDays != nil && !task.Reassign {
		if err := s.scheduleNext(ctx, task); err != nil {
			return nil, err
		}
	}
	return task, nil
}

// SetNotCompleted stores the non-completion flag and runs its side effects:
// the habit mirror for routine tasks, recurrence expansion for repeating
// tasks, and a next-day rollover clone for plain tasks so unfinished work
// stays visible.
func (s *TaskService) SetNotCompleted(ctx context.Context, taskID uint, notCompleted bool, date string) (*model.Task, error) {
	if err := s.tasks.SetColumn(ctx, taskID, "not_completed", notCompleted); err != nil {
		return nil, err
	}
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if notCompleted && !task.IsRoutine() && !task.Reassign {
		if err := s.rolloverNextDay(ctx, task); err != nil {
			return nil, err
		}
	}
	if isRoutineLike(task) {
		if _, err := s.habits.UpsertStatus(ctx, task.Title, date, false, notCompleted, task.Weight); err != nil {
			return nil, err
		}
		if notCompleted && task.RepeatEveryDays != nil && !task.Reassign {
			if err := s.scheduleNext(ctx, task); err != nil {
				return nil, err
			}
		}
	}
	return task, nil
}

// SetFive toggles the five-minute-rule flag.
func (s *TaskService) SetFive(ctx context.Context, taskID uint, five bool) error {
	return s.tasks.SetColumn(ctx, taskID, "five", five)
}

// SetReassign flags or unflags a task as block-scheduling input.
func (s *TaskService) SetReassign(ctx context.Context, taskID uint, reassign bool) error {
	return s.tasks.SetColumn(ctx, taskID, "reassign", reassign)
}

// SetNotes replaces the task's opaque notes blob.
func (s *TaskService) SetNotes(ctx context.Context, taskID uint, notes string) error {
	return s.tasks.SetNotes(ctx, taskID, notes)
}

// SoftDelete hides a task; Purge removes it permanently.
func (s *TaskService) SoftDelete(ctx context.Context, taskID uint) error {
	return s.tasks.SoftDelete(ctx, taskID)
}

func (s *TaskService) Purge(ctx context.Context, taskID uint) error {
	return s.tasks.Purge(ctx, taskID)
}

// DeleteHabitRecords cascades a routine task's removal into its per-day
// habit records, matched by exact task name.
func (s *TaskService) DeleteHabitRecords(ctx context.Context, taskName string) error {
	return s.habits.DeleteByTaskName(ctx, taskName)
}

// scheduleNext appends the next occurrence of a repeating task: same title,
// times, weight and interval, dated repeatEveryDays calendar days after the
// source. No dedup check is made against existing future rows, so repeated
// toggling over-generates.
func (s *TaskService) scheduleNext(ctx context.Context, task *model.Task) error {
	next, err := addDays(task.Date, *task.RepeatEveryDays)
	if err != nil {
		return fmt.Errorf("schedule next occurrence: %w", err)
	}
	clone := model.Task{
		Title:           task.Title,
		Description:     task.Description,
		Date:            next,
		StartTime:       task.StartTime,
		EndTime:         task.EndTime,
		Weight:          task.Weight,
		CategoryID:      task.CategoryID,
		RepeatEveryDays: task.RepeatEveryDays,
	}
	return s.tasks.Create(ctx, &clone)
}

// rolloverNextDay clones an unfinished plain task onto the following day
// without carrying a repeat interval.
func (s *TaskService) rolloverNextDay(ctx context.Context, task *model.Task) error {
	next, err := addDays(task.Date, 1)
	if err != nil {
		return fmt.Errorf("roll task over: %w", err)
	}
	clone := model.Task{
		Title:       task.Title,
		Description: task.Description,
		Date:        next,
		StartTime:   task.StartTime,
		EndTime:     task.EndTime,
		Weight:      task.Weight,
		CategoryID:  task.CategoryID,
	}
	return s.tasks.Create(ctx, &clone)
}

// isRoutineLike reports whether completion toggles mirror into the habit
// table: routine markers and repeating tasks both do.
func isRoutineLike(task *model.Task) bool {
	return task.IsRoutine() || task.RepeatEveryDays != nil
}

func addDays(date string, days int) (string, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(date))
	if err != nil {
		return "", fmt.Errorf("bad date %q: %w", date, err)
	}
	return t.AddDate(0, 0, days).Format(model.DateLayout), nil
}
