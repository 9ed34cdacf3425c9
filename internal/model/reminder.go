package model

import "time"

// Repeat kinds for reminders.
const (
	RepeatNone      = "none"
	RepeatWeekly    = "weekly"
	RepeatBiweekly  = "biweekly"
	RepeatMonthly   = "monthly"
	RepeatQuarterly = "quarterly"
	RepeatYearly    = "yearly"
)

// Reminder is a standalone due-date entry. Once its date arrives it is
// promoted into a Task exactly once; Moved records that the promotion
// happened.
type Reminder struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Task string `json:"task"`
	Date string `gorm:"index" json:"date"`
	// Time is an optional 24-hour "HH:MM" start; reminders without one
	// promote into untimed sentinel tasks.
	Time      *string   `json:"time"`
	Repeat    string    `gorm:"default:none" json:"repeat"`
	Completed bool      `gorm:"default:false" json:"completed"`
	Moved     bool      `gorm:"default:false" json:"moved"`
	Allotted  int       `gorm:"default:30" json:"allotted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
