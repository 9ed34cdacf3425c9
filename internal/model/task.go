package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// DateLayout is the civil-date key format shared by tasks, habits and
// reminders.
const DateLayout = "2006-01-02"

// RoutineMarker inside a task title marks it as an evergreen routine entry
// linked to daily habit records. Matching is case-insensitive.
const RoutineMarker = "i get to do it"

// Task is a single schedulable unit in the planner.
type Task struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Date is the civil-date key (YYYY-MM-DD). Routine-marker tasks keep a
	// date too but are selected regardless of it.
	Date      string `gorm:"index" json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Weight    int    `json:"weight"`
	// Completed and NotCompleted are toggled independently; both can be set
	// at once.
	Completed       bool           `gorm:"default:false" json:"completed"`
	NotCompleted    bool           `gorm:"default:false" json:"not_completed"`
	Five            bool           `gorm:"default:false" json:"five"`
	Reassign        bool           `gorm:"default:false" json:"reassign"`
	RepeatEveryDays *int           `json:"repeat_every_days"`
	CategoryID      *uint          `gorm:"index" json:"category_id"`
	Notes           *string        `json:"notes"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsRoutine reports whether the task title carries the routine marker.
func (t Task) IsRoutine() bool {
	return ContainsRoutineMarker(t.Title)
}

// ContainsRoutineMarker checks a title for the routine marker.
func ContainsRoutineMarker(title string) bool {
	return strings.Contains(strings.ToLower(title), RoutineMarker)
}
