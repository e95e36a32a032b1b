package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"gatherly/internal/cache"
	apperrors "gatherly/internal/errors"
	"gatherly/internal/model"
	"gatherly/internal/repository"
)

const (
	eventCacheTTL   = 5 * time.Minute
	summaryCacheTTL = time.Minute
)

// EventInput carries the fields for event creation.
type EventInput struct {
	Title       string
	Description string
	Date        time.Time
	StartTime   string
	EndTime     string
	Location    string
}

// EventListOptions controls the event listing.
type EventListOptions struct {
	UpcomingOnly      bool
	IncludeRsvpCounts bool
	Page              int
	Limit             int
}

// EventService handles event CRUD and read-side enrichment.
type EventService interface {
	List(ctx context.Context, opts EventListOptions) ([]repository.EventWithCounts, error)
	Get(ctx context.Context, id uint) (*repository.EventWithCounts, error)
	Create(ctx context.Context, input EventInput, createdBy uint) (*model.Event, error)
	Update(ctx context.Context, id uint, patch EventPatch) (*model.Event, error)
	Delete(ctx context.Context, id uint) error
	ListByCreator(ctx context.Context, userID uint, page, limit int) ([]repository.EventWithCounts, error)
	RsvpSummary(ctx context.Context, eventID uint) (*RsvpSummary, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	rsvpRepo  repository.RsvpRepository
	guard     *LifecycleGuard
	cache     *cache.Client
}

// NewEventService creates a new event service.
func NewEventService(eventRepo repository.EventRepository, rsvpRepo repository.RsvpRepository, guard *LifecycleGuard, cache *cache.Client) EventService {
	return &eventService{
		eventRepo: eventRepo,
		rsvpRepo:  rsvpRepo,
		guard:     guard,
		cache:     cache,
	}
}

func eventCacheKey(id uint) string {
	return fmt.Sprintf("event:%d", id)
}

func summaryCacheKey(id uint) string {
	return fmt.Sprintf("event_summary:%d", id)
}

// List returns events ordered by date then start time, ascending. RSVP counts,
// when included, are zero-filled per status.
func (s *eventService) List(ctx context.Context, opts EventListOptions) ([]repository.EventWithCounts, error) {
	limit, offset := pageBounds(opts.Page, opts.Limit)
	events, err := s.eventRepo.List(ctx, repository.EventListOptions{
		UpcomingOnly:  opts.UpcomingOnly,
		IncludeCounts: opts.IncludeRsvpCounts,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, storageErr("list events", err)
	}
	return events, nil
}

// Get retrieves one event with organizer name and RSVP counts, cache-aside.
func (s *eventService) Get(ctx context.Context, id uint) (*repository.EventWithCounts, error) {
	if data, _ := s.cache.Get(ctx, eventCacheKey(id)); data != nil {
		var cached repository.EventWithCounts
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.eventRepo.FindByIDWithCounts(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, storageErr("find event", err)
	}

	if payload, err := json.Marshal(event); err == nil {
		_ = s.cache.Set(ctx, eventCacheKey(id), payload, eventCacheTTL)
	}
	return event, nil
}

// Create validates the event window and persists the event.
func (s *eventService) Create(ctx context.Context, input EventInput, createdBy uint) (*model.Event, error) {
	if err := s.guard.ValidateEventWindow(input.Date, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	event := &model.Event{
		Title:       input.Title,
		Description: input.Description,
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Location:    input.Location,
		CreatedBy:   &createdBy,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, storageErr("create event", err)
	}
	return event, nil
}

// Update applies the supplied fields only. Validation follows the same
// partial-update rules: omitted fields are neither checked nor written.
func (s *eventService) Update(ctx context.Context, id uint, patch EventPatch) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, storageErr("find event", err)
	}

	if err := s.guard.ValidateEventPatch(patch); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Date != nil {
		event.Date = *patch.Date
	}
	if patch.StartTime != nil {
		event.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		event.EndTime = *patch.EndTime
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, storageErr("update event", err)
	}
	s.invalidate(ctx, id)
	return event, nil
}

// Delete removes the event and every RSVP referencing it.
func (s *eventService) Delete(ctx context.Context, id uint) error {
	if err := s.eventRepo.DeleteWithRsvps(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrEventNotFound
		}
		return storageErr("delete event", err)
	}
	s.invalidate(ctx, id)
	return nil
}

// ListByCreator returns the events a user organizes, newest first.
func (s *eventService) ListByCreator(ctx context.Context, userID uint, page, limit int) ([]repository.EventWithCounts, error) {
	l, offset := pageBounds(page, limit)
	events, err := s.eventRepo.ListByCreator(ctx, userID, l, offset)
	if err != nil {
		return nil, storageErr("list events by creator", err)
	}
	return events, nil
}

// RsvpSummary computes grouped counts and per-status user listings for an
// event, cache-aside with a short TTL since mutations invalidate it anyway.
func (s *eventService) RsvpSummary(ctx context.Context, eventID uint) (*RsvpSummary, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, storageErr("find event", err)
	}

	if data, _ := s.cache.Get(ctx, summaryCacheKey(eventID)); data != nil {
		var cached RsvpSummary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	rows, err := s.rsvpRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, storageErr("list event rsvps", err)
	}
	summary := buildRsvpSummary(rows)

	if payload, err := json.Marshal(summary); err == nil {
		_ = s.cache.Set(ctx, summaryCacheKey(eventID), payload, summaryCacheTTL)
	}
	return summary, nil
}

func (s *eventService) invalidate(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, eventCacheKey(id))
	_ = s.cache.Delete(ctx, summaryCacheKey(id))
}
