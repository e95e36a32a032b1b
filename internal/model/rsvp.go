package model

import "time"

// RSVPStatus represents a user's response to an event.
type RSVPStatus string

const (
	RSVPStatusGoing   RSVPStatus = "going"
	RSVPStatusMaybe   RSVPStatus = "maybe"
	RSVPStatusDecline RSVPStatus = "decline"
)

// RSVPStatusOrder is the fixed presentation order for statuses in counts and
// groupings.
var RSVPStatusOrder = []RSVPStatus{RSVPStatusGoing, RSVPStatusMaybe, RSVPStatusDecline}

// Valid reports whether s is one of the three known statuses.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPStatusGoing, RSVPStatusMaybe, RSVPStatusDecline:
		return true
	}
	return false
}

// RSVP represents a user's response to an event. The composite unique index on
// (user_id, event_id) is what guarantees at most one row per pair even under
// concurrent upserts; the application reacts to duplicate-key errors by
// retrying as an update.
type RSVP struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_rsvp_user_event,priority:1;index"`
	EventID   uint       `json:"event_id" gorm:"not null;uniqueIndex:idx_rsvp_user_event,priority:2;index"`
	Status    RSVPStatus `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	User  User  `json:"-" gorm:"foreignKey:UserID"`
	Event Event `json:"-" gorm:"foreignKey:EventID"`
}
