package service

import (
	"time"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/model"
)

// Derived event state relative to the current moment.
const (
	EventStatusPast     = "past"
	EventStatusUpcoming = "upcoming"
)

// EventPatch carries a partial event update. Nil fields were not supplied and
// are neither validated nor applied.
type EventPatch struct {
	Title       *string
	Description *string
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	Location    *string
}

// LifecycleGuard enforces the temporal rules gating event and RSVP mutations.
//
// Creating an event is blocked only by calendar date: a same-day event is
// always acceptable no matter the clock. RSVPing is blocked by the full
// date+time end of the event, so an event that is today but already over
// rejects RSVPs. The two granularities are intentionally different.
type LifecycleGuard struct {
	now func() time.Time
}

// NewLifecycleGuard builds a guard running on the system clock.
func NewLifecycleGuard() *LifecycleGuard {
	return &LifecycleGuard{now: time.Now}
}

func (g *LifecycleGuard) today() time.Time {
	return dateOnly(g.now())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidateEventWindow checks creation rules: the date must not be before
// today, and the end time must be strictly after the start time. Equal times
// are rejected.
func (g *LifecycleGuard) ValidateEventWindow(date time.Time, startTime, endTime string) error {
	if dateOnly(date).Before(g.today()) {
		return apperrors.ErrPastDate
	}
	if startTime >= endTime {
		return apperrors.ErrInvalidTimeRange
	}
	return nil
}

// ValidateEventPatch applies the creation rules to a partial update. A check
// only runs when its inputs were supplied: no date, no past-date check; the
// range check needs both times present.
func (g *LifecycleGuard) ValidateEventPatch(patch EventPatch) error {
	if patch.Date != nil && dateOnly(*patch.Date).Before(g.today()) {
		return apperrors.ErrPastDate
	}
	if patch.StartTime != nil && patch.EndTime != nil && *patch.StartTime >= *patch.EndTime {
		return apperrors.ErrInvalidTimeRange
	}
	return nil
}

// ValidateRsvpEligibility rejects RSVPs to events whose end timestamp is
// already behind the current moment.
func (g *LifecycleGuard) ValidateRsvpEligibility(event *model.Event) error {
	if g.eventEnd(event).Before(g.now()) {
		return apperrors.ErrEventPassed
	}
	return nil
}

// EventStatus derives past/upcoming for an event: past once its date is behind
// today, or today's date with an end time behind the current clock.
func (g *LifecycleGuard) EventStatus(date time.Time, endTime string) string {
	now := g.now()
	today := dateOnly(now)
	d := dateOnly(date)
	switch {
	case d.Before(today):
		return EventStatusPast
	case d.Equal(today) && endTime < now.Format(model.TimeLayout):
		return EventStatusPast
	default:
		return EventStatusUpcoming
	}
}

// eventEnd combines the event date with its end time into one timestamp.
func (g *LifecycleGuard) eventEnd(event *model.Event) time.Time {
	d := event.Date
	t, err := time.Parse(model.TimeLayout, event.EndTime)
	if err != nil {
		// Stored times are validated on the way in; treat a malformed one as
		// end-of-day so the event stays open rather than silently closing.
		return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, g.now().Location())
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, g.now().Location())
}
