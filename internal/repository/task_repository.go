package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"time-planner/internal/model"
)

// TaskRepository handles CRUD and day-scoped queries for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// markerPattern matches routine-marker titles in SQL. Titles are compared
// lowercased so the match is case-insensitive.
const markerPattern = "%" + model.RoutineMarker + "%"

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, fmt.Errorf("find task %d: %w", taskID, wrapNotFound(err))
	}
	return &task, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// ListForDay returns active tasks dated on the given day plus all
// routine-marker tasks, which are evergreen and selected regardless of date.
func (r *TaskRepository) ListForDay(ctx context.Context, date string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("date = ? OR LOWER(title) LIKE ?", date, markerPattern).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks for %s: %w", date, err)
	}
	return tasks, nil
}

// ListReassignable returns the block-scheduling candidate set: active tasks
// for the day (or routine markers) flagged for reassignment.
func (r *TaskRepository) ListReassignable(ctx context.Context, date string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("(date = ? OR LOWER(title) LIKE ?) AND reassign = ?", date, markerPattern, true).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list reassignable tasks: %w", err)
	}
	return tasks, nil
}

// SearchByTitle lists active tasks whose title contains the given text; an
// empty text lists everything.
func (r *TaskRepository) SearchByTitle(ctx context.Context, text string) ([]model.Task, error) {
	q := r.db.WithContext(ctx)
	if text != "" {
		q = q.Where("title LIKE ?", "%"+text+"%")
	}
	var tasks []model.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("search tasks: %w", err)
	}
	return tasks, nil
}

// ActiveDuplicateExists reports whether an active task with the same title,
// start time and date already exists. The guard is advisory; the store does
// not enforce uniqueness.
func (r *TaskRepository) ActiveDuplicateExists(ctx context.Context, title, startTime, date string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("title = ? AND start_time = ? AND date = ?", title, startTime, date).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check duplicate: %w", err)
	}
	return count > 0, nil
}

// SetColumn updates a single boolean-ish column on one task. Used by the
// completion, non-completion, five-minute and reassign toggles.
func (r *TaskRepository) SetColumn(ctx context.Context, taskID uint, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", taskID).Update(column, value)
	if res.Error != nil {
		return fmt.Errorf("update task %d: %w", taskID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update task %d: %w", taskID, ErrNotFound)
	}
	return nil
}

// SetNotes replaces the opaque notes blob on a task.
func (r *TaskRepository) SetNotes(ctx context.Context, taskID uint, notes string) error {
	return r.SetColumn(ctx, taskID, "notes", notes)
}

// SoftDelete marks a task deleted without removing the row.
func (r *TaskRepository) SoftDelete(ctx context.Context, taskID uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, taskID)
	if res.Error != nil {
		return fmt.Errorf("delete task %d: %w", taskID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete task %d: %w", taskID, ErrNotFound)
	}
	return nil
}

// Purge removes a task row for good.
func (r *TaskRepository) Purge(ctx context.Context, taskID uint) error {
	if err := r.db.WithContext(ctx).Unscoped().Delete(&model.Task{}, taskID).Error; err != nil {
		return fmt.Errorf("purge task %d: %w", taskID, err)
	}
	return nil
}

// BulkClearReassign drops the reassign flag on every task, not just the
// candidates a scheduling run processed.
func (r *TaskRepository) BulkClearReassign(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("reassign = ?", true).
		Update("reassign", false).Error; err != nil {
		return fmt.Errorf("clear reassign flags: %w", err)
	}
	return nil
}

// DayPoints are score totals for one civil day.
type DayPoints struct {
	Date         string `json:"date"`
	Completed    int    `json:"completedPoints"`
	NotCompleted int    `json:"notCompletedPoints"`
	Total        int    `json:"totalPoints"`
}

// SumDayWeights aggregates completed, not-completed and total task weight
// for one day.
func (r *TaskRepository) SumDayWeights(ctx context.Context, date string) (DayPoints, error) {
	points := DayPoints{Date: date}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select(
			"COALESCE(SUM(CASE WHEN completed THEN weight ELSE 0 END), 0) AS completed, " +
				"COALESCE(SUM(CASE WHEN not_completed THEN weight ELSE 0 END), 0) AS not_completed, " +
				"COALESCE(SUM(weight), 0) AS total").
		Where("date = ?", date).
		Scan(&points).Error
	if err != nil {
		return DayPoints{}, fmt.Errorf("sum day weights: %w", err)
	}
	return points, nil
}

// PointsByDay aggregates per-day score totals over a date range, excluding
// routine-marker tasks, newest day first.
func (r *TaskRepository) PointsByDay(ctx context.Context, fromDate, toDate string) ([]DayPoints, error) {
	var rows []DayPoints
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select(
			"date, "+
				"COALESCE(SUM(CASE WHEN completed THEN weight ELSE 0 END), 0) AS completed, "+
				"COALESCE(SUM(CASE WHEN not_completed THEN weight ELSE 0 END), 0) AS not_completed, "+
				"COALESCE(SUM(weight), 0) AS total").
		Where("date >= ? AND date <= ? AND LOWER(title) NOT LIKE ?", fromDate, toDate, markerPattern).
		Group("date").
		Order("date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("points by day: %w", err)
	}
	return rows, nil
}

// RoutineWeight is the weight a routine-marker task contributes from its
// creation date onward.
type RoutineWeight struct {
	Date   string
	Weight int
}

// ListRoutineWeights returns weight and date of every active routine-marker
// task.
func (r *TaskRepository) ListRoutineWeights(ctx context.Context) ([]RoutineWeight, error) {
	var rows []RoutineWeight
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("date, weight").
		Where("LOWER(title) LIKE ?", markerPattern).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list routine weights: %w", err)
	}
	return rows, nil
}
