package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"gatherly/internal/model"
)

// UserRsvpRow is an RSVP joined with its event and the event's organizer.
// OrganizerName is nil when the organizer account has been deleted, which
// nulls events.created_by but keeps the event and its RSVPs.
type UserRsvpRow struct {
	model.RSVP
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Date          time.Time `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Location      string    `json:"location"`
	OrganizerName *string   `json:"organizer_name" gorm:"column:organizer_name"`
}

// AttendeeRow is one event RSVP joined with the responding user, the raw
// material for per-event summaries.
type AttendeeRow struct {
	Status   model.RSVPStatus `json:"status"`
	UserID   uint             `json:"user_id" gorm:"column:user_id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	RsvpDate time.Time        `json:"rsvp_date" gorm:"column:rsvp_date"`
}

// StatusCount is a per-status RSVP tally.
type StatusCount struct {
	Status model.RSVPStatus `json:"status"`
	Count  int64            `json:"count"`
}

// RsvpRepository defines RSVP persistence operations.
type RsvpRepository interface {
	Create(ctx context.Context, rsvp *model.RSVP) error
	UpdateStatus(ctx context.Context, userID, eventID uint, status model.RSVPStatus) (*model.RSVP, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*model.RSVP, error)
	Delete(ctx context.Context, userID, eventID uint) error
	ListByUser(ctx context.Context, userID uint, upcomingOnly bool, limit, offset int) ([]UserRsvpRow, error)
	ListByEvent(ctx context.Context, eventID uint) ([]AttendeeRow, error)
	UserStats(ctx context.Context, userID uint) ([]StatusCount, error)
}

type rsvpRepository struct {
	db *gorm.DB
}

// NewRsvpRepository builds a GORM-backed RSVP repository.
func NewRsvpRepository(db *gorm.DB) RsvpRepository {
	return &rsvpRepository{db: db}
}

func (r *rsvpRepository) Create(ctx context.Context, rsvp *model.RSVP) error {
	return r.db.WithContext(ctx).Create(rsvp).Error
}

// UpdateStatus updates an existing pair's status in place and returns the
// refreshed row. CreatedAt is untouched; UpdatedAt advances.
func (r *rsvpRepository) UpdateStatus(ctx context.Context, userID, eventID uint, status model.RSVPStatus) (*model.RSVP, error) {
	res := r.db.WithContext(ctx).Model(&model.RSVP{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByUserAndEvent(ctx, userID, eventID)
}

func (r *rsvpRepository) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*model.RSVP, error) {
	var rsvp model.RSVP
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&rsvp).Error; err != nil {
		return nil, err
	}
	return &rsvp, nil
}

func (r *rsvpRepository) Delete(ctx context.Context, userID, eventID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&model.RSVP{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByUser returns the user's RSVPs with event details, most recent event
// date first, then latest start time. The descending order is deliberate and
// matches what clients already expect.
func (r *rsvpRepository) ListByUser(ctx context.Context, userID uint, upcomingOnly bool, limit, offset int) ([]UserRsvpRow, error) {
	q := r.db.WithContext(ctx).Table("rsvps").
		Select(`rsvps.*, events.title, events.description, events.date,
events.start_time, events.end_time, events.location,
users.name AS organizer_name`).
		Joins("JOIN events ON rsvps.event_id = events.id").
		Joins("LEFT JOIN users ON events.created_by = users.id").
		Where("rsvps.user_id = ?", userID)

	if upcomingOnly {
		q = q.Where("events.date >= CURRENT_DATE")
	}

	var rows []UserRsvpRow
	err := q.Order("events.date DESC, events.start_time DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByEvent returns every RSVP for an event with responder details, ordered
// alphabetically by name. Status ordering is applied by the aggregator.
func (r *rsvpRepository) ListByEvent(ctx context.Context, eventID uint) ([]AttendeeRow, error) {
	var rows []AttendeeRow
	err := r.db.WithContext(ctx).Table("rsvps").
		Select("rsvps.status, users.id AS user_id, users.name, users.email, rsvps.created_at AS rsvp_date").
		Joins("JOIN users ON rsvps.user_id = users.id").
		Where("rsvps.event_id = ?", eventID).
		Order("users.name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UserStats tallies the user's RSVPs to upcoming events per status.
func (r *rsvpRepository) UserStats(ctx context.Context, userID uint) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).Table("rsvps").
		Select("rsvps.status, COUNT(*) AS count").
		Joins("JOIN events ON rsvps.event_id = events.id").
		Where("rsvps.user_id = ? AND events.date >= CURRENT_DATE", userID).
		Group("rsvps.status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
