package model

import (
	"time"

	"gorm.io/gorm"
)

// Event statuses driven by the approval workflow.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Event represents a stored event row. A row is either a single event or the
// parent template of a repeating series; per-occurrence instances are computed
// at query time and never written back (see internal/scheduling).
//
// StartTime and EndTime are epoch milliseconds. For a repeating event they
// bound the recurrence window, while the time-of-day portion of both defines
// one occurrence's daily span.
type Event struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"type:varchar(200);not null"`
	Description    string         `json:"description" gorm:"type:text"`
	StartTime      int64          `json:"start_time" gorm:"index;not null"`
	EndTime        int64          `json:"end_time" gorm:"not null"`
	CreatorID      uint           `json:"creator_id" gorm:"index;not null"`
	AssignedUserID uint           `json:"assigned_user_id" gorm:"index;not null"`
	Status         string         `json:"status" gorm:"type:varchar(20);index;default:pending"`
	IsRepeating    bool           `json:"is_repeating" gorm:"default:false"`
	RepeatDays     DaySet         `json:"repeat_days,omitempty" gorm:"type:text"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
