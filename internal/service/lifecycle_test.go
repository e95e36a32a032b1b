package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/model"
)

// fixedGuard returns a guard pinned to 2026-06-15 11:00 local time.
func fixedGuard() *LifecycleGuard {
	fixed := time.Date(2026, time.June, 15, 11, 0, 0, 0, time.Local)
	return &LifecycleGuard{now: func() time.Time { return fixed }}
}

func day(offset int) time.Time {
	return time.Date(2026, time.June, 15+offset, 0, 0, 0, 0, time.Local)
}

func TestLifecycleGuard_ValidateEventWindow(t *testing.T) {
	tests := []struct {
		name          string
		date          time.Time
		startTime     string
		endTime       string
		expectedError error
	}{
		{
			name:      "future date",
			date:      day(1),
			startTime: "10:00",
			endTime:   "12:00",
		},
		{
			// Padded single-digit hours sort correctly: "09:05" < "10:00".
			name:      "early morning before a double-digit hour",
			date:      day(1),
			startTime: "09:05",
			endTime:   "10:00",
		},
		{
			name: "today is allowed even though the clock is past the times",
			// Now is 11:00; a 09:00-10:00 event today is still creatable
			// because creation only checks the calendar date.
			date:      day(0),
			startTime: "09:00",
			endTime:   "10:00",
		},
		{
			name:          "yesterday is rejected",
			date:          day(-1),
			startTime:     "10:00",
			endTime:       "12:00",
			expectedError: apperrors.ErrPastDate,
		},
		{
			name:          "start after end",
			date:          day(1),
			startTime:     "14:00",
			endTime:       "12:00",
			expectedError: apperrors.ErrInvalidTimeRange,
		},
		{
			name:          "start equal to end",
			date:          day(1),
			startTime:     "12:00",
			endTime:       "12:00",
			expectedError: apperrors.ErrInvalidTimeRange,
		},
		{
			name:          "past date reported before time range",
			date:          day(-1),
			startTime:     "14:00",
			endTime:       "12:00",
			expectedError: apperrors.ErrPastDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fixedGuard().ValidateEventWindow(tt.date, tt.startTime, tt.endTime)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLifecycleGuard_ValidateEventPatch(t *testing.T) {
	strPtr := func(s string) *string { return &s }
	datePtr := func(d time.Time) *time.Time { return &d }

	tests := []struct {
		name          string
		patch         EventPatch
		expectedError error
	}{
		{
			name:  "empty patch passes",
			patch: EventPatch{},
		},
		{
			name:  "title only skips temporal checks",
			patch: EventPatch{Title: strPtr("New title")},
		},
		{
			name:          "past date rejected",
			patch:         EventPatch{Date: datePtr(day(-3))},
			expectedError: apperrors.ErrPastDate,
		},
		{
			name:  "start time alone is not range-checked",
			patch: EventPatch{StartTime: strPtr("23:00")},
		},
		{
			name:  "end time alone is not range-checked",
			patch: EventPatch{EndTime: strPtr("00:30")},
		},
		{
			name: "both times invalid",
			patch: EventPatch{
				StartTime: strPtr("18:00"),
				EndTime:   strPtr("17:00"),
			},
			expectedError: apperrors.ErrInvalidTimeRange,
		},
		{
			name: "both times valid",
			patch: EventPatch{
				StartTime: strPtr("17:00"),
				EndTime:   strPtr("18:00"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fixedGuard().ValidateEventPatch(tt.patch)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLifecycleGuard_ValidateRsvpEligibility(t *testing.T) {
	tests := []struct {
		name          string
		event         *model.Event
		expectedError error
	}{
		{
			name:  "event tomorrow",
			event: &model.Event{Date: day(1), StartTime: "09:00", EndTime: "10:00"},
		},
		{
			name: "event today that already ended",
			// Now is 11:00; the event ended at 10:00, so unlike creation the
			// RSVP check looks at the clock and rejects it.
			event:         &model.Event{Date: day(0), StartTime: "09:00", EndTime: "10:00"},
			expectedError: apperrors.ErrEventPassed,
		},
		{
			name:  "event today still running",
			event: &model.Event{Date: day(0), StartTime: "09:00", EndTime: "12:00"},
		},
		{
			name:  "event today starting later",
			event: &model.Event{Date: day(0), StartTime: "14:00", EndTime: "16:00"},
		},
		{
			name:          "event yesterday",
			event:         &model.Event{Date: day(-1), StartTime: "09:00", EndTime: "23:00"},
			expectedError: apperrors.ErrEventPassed,
		},
		{
			name:  "malformed end time falls back to end of day",
			event: &model.Event{Date: day(0), StartTime: "09:00", EndTime: "bogus"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fixedGuard().ValidateRsvpEligibility(tt.event)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLifecycleGuard_EventStatus(t *testing.T) {
	guard := fixedGuard()

	assert.Equal(t, EventStatusPast, guard.EventStatus(day(-1), "23:00"))
	assert.Equal(t, EventStatusPast, guard.EventStatus(day(0), "10:00"))
	assert.Equal(t, EventStatusUpcoming, guard.EventStatus(day(0), "12:00"))
	assert.Equal(t, EventStatusUpcoming, guard.EventStatus(day(1), "08:00"))
}
