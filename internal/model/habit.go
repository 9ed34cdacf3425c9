package model

import (
	"time"

	"gorm.io/gorm"
)

// Habit is a per-day completion record for a routine, keyed uniquely by
// (task name, date). It is linked to tasks by name containment, not by
// foreign key.
type Habit struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TaskName string `gorm:"index:idx_habit_task_date,unique" json:"taskName"`
	Date     string `gorm:"index:idx_habit_task_date,unique" json:"date"`
	// Done and Procrastinated are intended to be mutually exclusive but the
	// store does not enforce it.
	Done           bool           `gorm:"default:false" json:"done"`
	Procrastinated bool           `gorm:"default:false" json:"procrastinated"`
	Weight         int            `json:"weight"`
	Notes          *string        `json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
