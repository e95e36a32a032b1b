package model

import "time"

// TimeLayout is the wire and storage format for event start/end times.
// Zero-padded 24h "HH:MM" strings compare correctly with plain string
// comparison, which the lifecycle rules depend on.
const TimeLayout = "15:04"

// DateLayout is the wire format for event dates.
const DateLayout = "2006-01-02"

// Event represents a scheduled event users can RSVP to.
type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Date        time.Time `json:"date" gorm:"type:date;not null;index"`
	StartTime   string    `json:"start_time" gorm:"size:5;not null"`
	EndTime     string    `json:"end_time" gorm:"size:5;not null"`
	Location    string    `json:"location" gorm:"size:500;not null"`
	CreatedBy   *uint     `json:"created_by" gorm:"index"` // nulled when the creator is deleted
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Creator *User `json:"-" gorm:"foreignKey:CreatedBy"`
}
