package repository

import (
	"context"

	"gorm.io/gorm"

	"gatherly/internal/model"
)

// EventListOptions controls the event listing query shape.
type EventListOptions struct {
	UpcomingOnly  bool
	IncludeCounts bool
	Limit         int
	Offset        int
}

// EventWithCounts is an event row enriched with the organizer name and,
// when requested, per-status RSVP counts. The counts come from conditional
// aggregation, so absent statuses surface as zero rather than being omitted.
type EventWithCounts struct {
	model.Event
	CreatedByName *string `json:"created_by_name" gorm:"column:created_by_name"`
	TotalRsvps    int64   `json:"total_rsvps" gorm:"column:total_rsvps"`
	GoingCount    int64   `json:"going_count" gorm:"column:going_count"`
	MaybeCount    int64   `json:"maybe_count" gorm:"column:maybe_count"`
	DeclineCount  int64   `json:"decline_count" gorm:"column:decline_count"`
}

const eventCountColumns = `events.*, users.name AS created_by_name,
COUNT(rsvps.id) AS total_rsvps,
COUNT(CASE WHEN rsvps.status = 'going' THEN 1 END) AS going_count,
COUNT(CASE WHEN rsvps.status = 'maybe' THEN 1 END) AS maybe_count,
COUNT(CASE WHEN rsvps.status = 'decline' THEN 1 END) AS decline_count`

// EventRepository defines event persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	Update(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	FindByIDWithCounts(ctx context.Context, id uint) (*EventWithCounts, error)
	List(ctx context.Context, opts EventListOptions) ([]EventWithCounts, error)
	ListByCreator(ctx context.Context, userID uint, limit, offset int) ([]EventWithCounts, error)
	DeleteWithRsvps(ctx context.Context, id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository builds a GORM-backed event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDWithCounts loads a single event with organizer name and zero-filled
// RSVP counts.
func (r *eventRepository) FindByIDWithCounts(ctx context.Context, id uint) (*EventWithCounts, error) {
	var row EventWithCounts
	err := r.db.WithContext(ctx).
		Table("events").
		Select(eventCountColumns).
		Joins("LEFT JOIN users ON events.created_by = users.id").
		Joins("LEFT JOIN rsvps ON rsvps.event_id = events.id").
		Where("events.id = ?", id).
		Group("events.id, users.name").
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		// Aggregation over zero rows yields an all-NULL row instead of no row.
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// List returns events ordered by date then start time, ascending. Counts are
// joined in only when requested; the plain listing leaves them zero-valued.
func (r *eventRepository) List(ctx context.Context, opts EventListOptions) ([]EventWithCounts, error) {
	q := r.db.WithContext(ctx).Table("events").
		Joins("LEFT JOIN users ON events.created_by = users.id")

	if opts.IncludeCounts {
		q = q.Select(eventCountColumns).
			Joins("LEFT JOIN rsvps ON rsvps.event_id = events.id").
			Group("events.id, users.name")
	} else {
		q = q.Select("events.*, users.name AS created_by_name")
	}

	if opts.UpcomingOnly {
		q = q.Where("events.date >= CURRENT_DATE")
	}

	var rows []EventWithCounts
	err := q.Order("events.date ASC, events.start_time ASC").
		Limit(opts.Limit).Offset(opts.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *eventRepository) ListByCreator(ctx context.Context, userID uint, limit, offset int) ([]EventWithCounts, error) {
	var rows []EventWithCounts
	err := r.db.WithContext(ctx).Table("events").
		Select("events.*, users.name AS created_by_name").
		Joins("LEFT JOIN users ON events.created_by = users.id").
		Where("events.created_by = ?", userID).
		Order("events.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteWithRsvps removes an event together with every RSVP referencing it.
// The RSVPs go first; there is no storage-level cascade.
func (r *eventRepository) DeleteWithRsvps(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.RSVP{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
