package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"time-planner/internal/model"
)

// ReminderRepository handles due-date reminder rows.
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

// List returns all reminders ordered by date, with timed entries before
// untimed ones on the same day.
func (r *ReminderRepository) List(ctx context.Context) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Order("date, CASE WHEN time IS NULL THEN 1 ELSE 0 END, time").
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

// ListRange returns reminders dated inside [startDate, endDate], same order
// as List.
func (r *ReminderRepository) ListRange(ctx context.Context, startDate, endDate string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Where("date BETWEEN ? AND ?", startDate, endDate).
		Order("date, CASE WHEN time IS NULL THEN 1 ELSE 0 END, time").
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list reminders in range: %w", err)
	}
	return reminders, nil
}

// ListDue returns the promotion input set: reminders dated on the given day
// that have not been promoted yet.
func (r *ReminderRepository) ListDue(ctx context.Context, date string) ([]model.Reminder, error) {
	var reminders []model.Reminder
	if err := r.db.WithContext(ctx).
		Where("date = ? AND moved = ?", date, false).
		Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	return reminders, nil
}

// BulkMarkMoved flags every unpromoted reminder for the day as promoted in a
// single update, keyed exactly like ListDue.
func (r *ReminderRepository) BulkMarkMoved(ctx context.Context, date string) error {
	if err := r.db.WithContext(ctx).Model(&model.Reminder{}).
		Where("date = ? AND moved = ?", date, false).
		Update("moved", true).Error; err != nil {
		return fmt.Errorf("mark reminders moved: %w", err)
	}
	return nil
}

func (r *ReminderRepository) FindByID(ctx context.Context, reminderID uint) (*model.Reminder, error) {
	var reminder model.Reminder
	if err := r.db.WithContext(ctx).First(&reminder, reminderID).Error; err != nil {
		return nil, fmt.Errorf("find reminder %d: %w", reminderID, wrapNotFound(err))
	}
	return &reminder, nil
}

func (r *ReminderRepository) Save(ctx context.Context, reminder *model.Reminder) error {
	if err := r.db.WithContext(ctx).Save(reminder).Error; err != nil {
		return fmt.Errorf("save reminder: %w", err)
	}
	return nil
}

func (r *ReminderRepository) Delete(ctx context.Context, reminderID uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Reminder{}, reminderID)
	if res.Error != nil {
		return fmt.Errorf("delete reminder %d: %w", reminderID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete reminder %d: %w", reminderID, ErrNotFound)
	}
	return nil
}
