package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"gatherly/internal/cache"
	apperrors "gatherly/internal/errors"
	"gatherly/internal/model"
	"gatherly/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// UserRsvp is a user's RSVP with event details and the derived past/upcoming
// state.
type UserRsvp struct {
	repository.UserRsvpRow
	EventStatus string `json:"event_status"`
}

// RsvpListOptions controls the user RSVP listing.
type RsvpListOptions struct {
	UpcomingOnly bool
	Page         int
	Limit        int
}

// RsvpService handles RSVP submission and lookup.
type RsvpService interface {
	// Upsert records the user's response to an event. The second return value
	// reports whether a new RSVP row was created rather than updated in place.
	Upsert(ctx context.Context, userID, eventID uint, status model.RSVPStatus) (*model.RSVP, bool, error)
	Delete(ctx context.Context, userID, eventID uint) error
	ListByUser(ctx context.Context, userID uint, opts RsvpListOptions) ([]UserRsvp, error)
	GetForEvent(ctx context.Context, userID, eventID uint) (*model.RSVP, error)
	UserStats(ctx context.Context, userID uint) ([]repository.StatusCount, error)
}

type rsvpService struct {
	rsvpRepo  repository.RsvpRepository
	eventRepo repository.EventRepository
	guard     *LifecycleGuard
	cache     *cache.Client
}

// NewRsvpService creates a new RSVP service.
func NewRsvpService(rsvpRepo repository.RsvpRepository, eventRepo repository.EventRepository, guard *LifecycleGuard, cache *cache.Client) RsvpService {
	return &rsvpService{
		rsvpRepo:  rsvpRepo,
		eventRepo: eventRepo,
		guard:     guard,
		cache:     cache,
	}
}

// Upsert enforces at-most-one RSVP per (user, event). An existing row is
// updated in place; otherwise a row is inserted. If a concurrent insert for
// the same pair wins the race, the store's unique index rejects ours and the
// call falls back to an update, so two near-simultaneous upserts can never
// produce two rows.
func (s *rsvpService) Upsert(ctx context.Context, userID, eventID uint, status model.RSVPStatus) (*model.RSVP, bool, error) {
	if !status.Valid() {
		return nil, false, apperrors.ErrInvalidStatus
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperrors.ErrEventNotFound
		}
		return nil, false, storageErr("find event", err)
	}

	if err := s.guard.ValidateRsvpEligibility(event); err != nil {
		return nil, false, err
	}

	defer s.invalidateEvent(ctx, eventID)

	_, err = s.rsvpRepo.FindByUserAndEvent(ctx, userID, eventID)
	switch {
	case err == nil:
		updated, uerr := s.rsvpRepo.UpdateStatus(ctx, userID, eventID, status)
		if uerr != nil {
			return nil, false, storageErr("update rsvp", uerr)
		}
		return updated, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		rsvp := &model.RSVP{UserID: userID, EventID: eventID, Status: status}
		if cerr := s.rsvpRepo.Create(ctx, rsvp); cerr != nil {
			if errors.Is(cerr, gorm.ErrDuplicatedKey) {
				// Lost the insert race for this pair; apply as an update.
				updated, uerr := s.rsvpRepo.UpdateStatus(ctx, userID, eventID, status)
				if uerr != nil {
					return nil, false, storageErr("update rsvp after conflict", uerr)
				}
				return updated, false, nil
			}
			return nil, false, storageErr("create rsvp", cerr)
		}
		return rsvp, true, nil
	default:
		return nil, false, storageErr("find rsvp", err)
	}
}

// Delete removes the user's RSVP for an event.
func (s *rsvpService) Delete(ctx context.Context, userID, eventID uint) error {
	if err := s.rsvpRepo.Delete(ctx, userID, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRsvpNotFound
		}
		return storageErr("delete rsvp", err)
	}
	s.invalidateEvent(ctx, eventID)
	return nil
}

// ListByUser returns the user's RSVPs joined with event details, event date
// descending then start time descending, each annotated past/upcoming.
func (s *rsvpService) ListByUser(ctx context.Context, userID uint, opts RsvpListOptions) ([]UserRsvp, error) {
	limit, offset := pageBounds(opts.Page, opts.Limit)
	rows, err := s.rsvpRepo.ListByUser(ctx, userID, opts.UpcomingOnly, limit, offset)
	if err != nil {
		return nil, storageErr("list rsvps", err)
	}

	result := make([]UserRsvp, 0, len(rows))
	for _, row := range rows {
		result = append(result, UserRsvp{
			UserRsvpRow: row,
			EventStatus: s.guard.EventStatus(row.Date, row.EndTime),
		})
	}
	return result, nil
}

// GetForEvent returns the user's RSVP for one event, or ErrRsvpNotFound.
func (s *rsvpService) GetForEvent(ctx context.Context, userID, eventID uint) (*model.RSVP, error) {
	rsvp, err := s.rsvpRepo.FindByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRsvpNotFound
		}
		return nil, storageErr("find rsvp", err)
	}
	return rsvp, nil
}

// UserStats tallies the user's RSVPs to upcoming events per status.
func (s *rsvpService) UserStats(ctx context.Context, userID uint) ([]repository.StatusCount, error) {
	stats, err := s.rsvpRepo.UserStats(ctx, userID)
	if err != nil {
		return nil, storageErr("user stats", err)
	}
	return stats, nil
}

func (s *rsvpService) invalidateEvent(ctx context.Context, eventID uint) {
	_ = s.cache.Delete(ctx, eventCacheKey(eventID))
	_ = s.cache.Delete(ctx, summaryCacheKey(eventID))
}

func pageBounds(page, limit int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return limit, (page - 1) * limit
}
