package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"time-planner/internal/model"
)

// HabitRepository handles per-day habit completion records. Writes are
// upserts keyed on (task name, date).
type HabitRepository struct {
	db *gorm.DB
}

func NewHabitRepository(db *gorm.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

// UpsertStatus creates or updates the habit record for (taskName, date),
// replacing its done/procrastinated flags and weight. Returns the row.
func (r *HabitRepository) UpsertStatus(ctx context.Context, taskName, date string, done, procrastinated bool, weight int) (*model.Habit, error) {
	habit := model.Habit{
		TaskName:       taskName,
		Date:           date,
		Done:           done,
		Procrastinated: procrastinated,
		Weight:         weight,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_name"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"done", "procrastinated", "weight", "updated_at"}),
	}).Create(&habit).Error
	if err != nil {
		return nil, fmt.Errorf("upsert habit: %w", err)
	}
	return r.findByKey(ctx, taskName, date)
}

// UpsertNotes creates or updates the habit record for (taskName, date),
// replacing only its notes.
func (r *HabitRepository) UpsertNotes(ctx context.Context, taskName, date string, weight int, notes string) (*model.Habit, error) {
	habit := model.Habit{
		TaskName: taskName,
		Date:     date,
		Weight:   weight,
		Notes:    &notes,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_name"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"notes", "updated_at"}),
	}).Create(&habit).Error
	if err != nil {
		return nil, fmt.Errorf("upsert habit notes: %w", err)
	}
	return r.findByKey(ctx, taskName, date)
}

func (r *HabitRepository) findByKey(ctx context.Context, taskName, date string) (*model.Habit, error) {
	var habit model.Habit
	if err := r.db.WithContext(ctx).
		Where("task_name = ? AND date = ?", taskName, date).
		First(&habit).Error; err != nil {
		return nil, fmt.Errorf("find habit %q/%s: %w", taskName, date, wrapNotFound(err))
	}
	return &habit, nil
}

func (r *HabitRepository) FindByID(ctx context.Context, habitID uint) (*model.Habit, error) {
	var habit model.Habit
	if err := r.db.WithContext(ctx).First(&habit, habitID).Error; err != nil {
		return nil, fmt.Errorf("find habit %d: %w", habitID, wrapNotFound(err))
	}
	return &habit, nil
}

func (r *HabitRepository) ListByDate(ctx context.Context, date string) ([]model.Habit, error) {
	var habits []model.Habit
	if err := r.db.WithContext(ctx).Where("date = ?", date).Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("list habits for %s: %w", date, err)
	}
	return habits, nil
}

// SearchByName lists habits whose task name contains the given text; an
// empty text lists everything.
func (r *HabitRepository) SearchByName(ctx context.Context, text string) ([]model.Habit, error) {
	q := r.db.WithContext(ctx)
	if text != "" {
		q = q.Where("task_name LIKE ?", "%"+text+"%")
	}
	var habits []model.Habit
	if err := q.Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("search habits: %w", err)
	}
	return habits, nil
}

func (r *HabitRepository) Save(ctx context.Context, habit *model.Habit) error {
	if err := r.db.WithContext(ctx).Save(habit).Error; err != nil {
		return fmt.Errorf("save habit: %w", err)
	}
	return nil
}

// SoftDelete marks a habit record deleted.
func (r *HabitRepository) SoftDelete(ctx context.Context, habitID uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Habit{}, habitID)
	if res.Error != nil {
		return fmt.Errorf("delete habit %d: %w", habitID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete habit %d: %w", habitID, ErrNotFound)
	}
	return nil
}

// DeleteByTaskName hard-deletes every habit record for a task name. Used as
// the explicit cascade when a routine task is removed.
func (r *HabitRepository) DeleteByTaskName(ctx context.Context, taskName string) error {
	if err := r.db.WithContext(ctx).Unscoped().
		Where("task_name = ?", taskName).
		Delete(&model.Habit{}).Error; err != nil {
		return fmt.Errorf("delete habits for %q: %w", taskName, err)
	}
	return nil
}

// HabitDayCount is a per-(name, day) completion tally for the habit graph.
type HabitDayCount struct {
	TaskName       string `json:"taskName"`
	Date           string `json:"date"`
	Total          int    `json:"total_tasks"`
	Done           int    `json:"completed_tasks"`
	Procrastinated int    `json:"not_completed_tasks"`
}

// GraphCounts tallies habit records per task name and day over a date range.
func (r *HabitRepository) GraphCounts(ctx context.Context, fromDate, toDate string) ([]HabitDayCount, error) {
	var rows []HabitDayCount
	err := r.db.WithContext(ctx).Model(&model.Habit{}).
		Select(
			"task_name, date, COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN done THEN 1 ELSE 0 END), 0) AS done, "+
				"COALESCE(SUM(CASE WHEN procrastinated THEN 1 ELSE 0 END), 0) AS procrastinated").
		Where("date >= ? AND date <= ?", fromDate, toDate).
		Group("task_name").Group("date").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("habit graph counts: %w", err)
	}
	return rows, nil
}

// HabitDayPoints are per-day weight sums of done and procrastinated habits.
type HabitDayPoints struct {
	Date           string `json:"date"`
	Done           int    `json:"habitDonePoints"`
	Procrastinated int    `json:"habitProcrastinatedPoints"`
}

// SumDayWeights aggregates done and procrastinated habit weight for one day.
func (r *HabitRepository) SumDayWeights(ctx context.Context, date string) (HabitDayPoints, error) {
	points := HabitDayPoints{Date: date}
	err := r.db.WithContext(ctx).Model(&model.Habit{}).
		Select(
			"COALESCE(SUM(CASE WHEN done THEN weight ELSE 0 END), 0) AS done, " +
				"COALESCE(SUM(CASE WHEN procrastinated THEN weight ELSE 0 END), 0) AS procrastinated").
		Where("date = ?", date).
		Scan(&points).Error
	if err != nil {
		return HabitDayPoints{}, fmt.Errorf("sum habit weights: %w", err)
	}
	return points, nil
}

// PointsByDay aggregates per-day habit weight sums over a date range, newest
// day first.
func (r *HabitRepository) PointsByDay(ctx context.Context, fromDate, toDate string) ([]HabitDayPoints, error) {
	var rows []HabitDayPoints
	err := r.db.WithContext(ctx).Model(&model.Habit{}).
		Select(
			"date, "+
				"COALESCE(SUM(CASE WHEN done THEN weight ELSE 0 END), 0) AS done, "+
				"COALESCE(SUM(CASE WHEN procrastinated THEN weight ELSE 0 END), 0) AS procrastinated").
		Where("date >= ? AND date <= ?", fromDate, toDate).
		Group("date").
		Order("date DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("habit points by day: %w", err)
	}
	return rows, nil
}
