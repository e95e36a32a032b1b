package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/model"
	"gatherly/internal/repository"
)

func TestEventService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         EventInput
		setupMock     func(*MockEventRepository)
		expectedError error
	}{
		{
			name: "valid event",
			input: EventInput{
				Title:     "Go Meetup",
				Date:      day(1),
				StartTime: "18:30",
				EndTime:   "21:00",
				Location:  "Downtown Hub",
			},
			setupMock: func(m *MockEventRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Event")).Return(nil)
			},
		},
		{
			name: "past date rejected before any write",
			input: EventInput{
				Title:     "Retro",
				Date:      day(-1),
				StartTime: "10:00",
				EndTime:   "11:00",
			},
			setupMock:     func(m *MockEventRepository) {},
			expectedError: apperrors.ErrPastDate,
		},
		{
			name: "inverted time range rejected",
			input: EventInput{
				Title:     "Backwards",
				Date:      day(1),
				StartTime: "12:00",
				EndTime:   "10:00",
			},
			setupMock:     func(m *MockEventRepository) {},
			expectedError: apperrors.ErrInvalidTimeRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEventRepo := new(MockEventRepository)
			tt.setupMock(mockEventRepo)

			service := NewEventService(mockEventRepo, new(MockRsvpRepository), fixedGuard(), nil)
			event, err := service.Create(context.Background(), tt.input, 1)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, event)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, event)
				assert.Equal(t, tt.input.Title, event.Title)
				if assert.NotNil(t, event.CreatedBy) {
					assert.Equal(t, uint(1), *event.CreatedBy)
				}
			}

			mockEventRepo.AssertExpectations(t)
		})
	}
}

func TestEventService_Update(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	t.Run("applies only supplied fields", func(t *testing.T) {
		mockEventRepo := new(MockEventRepository)
		existing := upcomingEvent(10)
		existing.Location = "Harbor View Loft"
		mockEventRepo.On("FindByID", mock.Anything, uint(10)).Return(existing, nil)
		mockEventRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Event")).Return(nil)

		service := NewEventService(mockEventRepo, new(MockRsvpRepository), fixedGuard(), nil)
		event, err := service.Update(context.Background(), 10, EventPatch{Title: strPtr("Renamed")})

		assert.NoError(t, err)
		assert.Equal(t, "Renamed", event.Title)
		assert.Equal(t, "Harbor View Loft", event.Location)
		mockEventRepo.AssertExpectations(t)
	})

	t.Run("missing event", func(t *testing.T) {
		mockEventRepo := new(MockEventRepository)
		mockEventRepo.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewEventService(mockEventRepo, new(MockRsvpRepository), fixedGuard(), nil)
		event, err := service.Update(context.Background(), 10, EventPatch{Title: strPtr("Renamed")})

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		assert.Nil(t, event)
	})

	t.Run("invalid patch stops before write", func(t *testing.T) {
		mockEventRepo := new(MockEventRepository)
		mockEventRepo.On("FindByID", mock.Anything, uint(10)).Return(upcomingEvent(10), nil)

		service := NewEventService(mockEventRepo, new(MockRsvpRepository), fixedGuard(), nil)
		_, err := service.Update(context.Background(), 10, EventPatch{
			StartTime: strPtr("20:00"),
			EndTime:   strPtr("19:00"),
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidTimeRange)
		mockEventRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestEventService_Delete(t *testing.T) {
	t.Run("removes event and rsvps", func(t *testing.T) {
		mockEventRepo := new(MockEventRepository)
		mockEventRepo.On("DeleteWithRsvps", mock.Anything, uint(10)).Return(nil)

		service := NewEventService(mockEventRepo, new(MockRsvpRepository), fixedGuard(), nil)
		err := service.Delete(context.Background(), 10)

		assert.NoError(t, err)
		mockEventRepo.AssertExpectations(t)
	})

	t.Run("missing event", func(t *testing.T) {
		mockEventRepo := new(MockEventRepository)
		mockEventRepo.On("DeleteWithRsvps", mock.Anything, uint(10)).Return(gorm.ErrRecordNotFound)

		service := NewEventService(mockEventRepo, new(MockRsvpRepository), fixedGuard(), nil)
		err := service.Delete(context.Background(), 10)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	})
}

func TestEventService_Get(t *testing.T) {
	t.Run("returns event with counts", func(t *testing.T) {
		mockEventRepo := new(MockEventRepository)
		name := "Admin"
		mockEventRepo.On("FindByIDWithCounts", mock.Anything, uint(10)).Return(&repository.EventWithCounts{
			Event:         *upcomingEvent(10),
			CreatedByName: &name,
			TotalRsvps:    3,
			GoingCount:    2,
			MaybeCount:    1,
		}, nil)

		service := NewEventService(mockEventRepo, new(MockRsvpRepository), fixedGuard(), nil)
		event, err := service.Get(context.Background(), 10)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), event.TotalRsvps)
		assert.Equal(t, int64(0), event.DeclineCount)
	})

	t.Run("missing event", func(t *testing.T) {
		mockEventRepo := new(MockEventRepository)
		mockEventRepo.On("FindByIDWithCounts", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewEventService(mockEventRepo, new(MockRsvpRepository), fixedGuard(), nil)
		event, err := service.Get(context.Background(), 10)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		assert.Nil(t, event)
	})
}

func TestEventService_RsvpSummary(t *testing.T) {
	t.Run("aggregates attendee rows", func(t *testing.T) {
		mockEventRepo := new(MockEventRepository)
		mockRsvpRepo := new(MockRsvpRepository)
		mockEventRepo.On("FindByID", mock.Anything, uint(10)).Return(upcomingEvent(10), nil)
		mockRsvpRepo.On("ListByEvent", mock.Anything, uint(10)).Return([]repository.AttendeeRow{
			{Status: model.RSVPStatusGoing, UserID: 1, Name: "alice", Email: "alice@example.com"},
			{Status: model.RSVPStatusGoing, UserID: 2, Name: "bob", Email: "bob@example.com"},
		}, nil)

		service := NewEventService(mockEventRepo, mockRsvpRepo, fixedGuard(), nil)
		summary, err := service.RsvpSummary(context.Background(), 10)

		assert.NoError(t, err)
		assert.Equal(t, []repository.StatusCount{
			{Status: model.RSVPStatusGoing, Count: 2},
		}, summary.Counts)
		assert.Len(t, summary.Users[model.RSVPStatusGoing], 2)
	})

	t.Run("missing event", func(t *testing.T) {
		mockEventRepo := new(MockEventRepository)
		mockEventRepo.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := NewEventService(mockEventRepo, new(MockRsvpRepository), fixedGuard(), nil)
		summary, err := service.RsvpSummary(context.Background(), 10)

		assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
		assert.Nil(t, summary)
	})
}
