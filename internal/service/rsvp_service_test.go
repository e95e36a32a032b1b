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

func upcomingEvent(id uint) *model.Event {
	return &model.Event{
		ID:        id,
		Title:     "Team Offsite",
		Date:      day(1),
		StartTime: "10:00",
		EndTime:   "17:00",
	}
}

func TestRsvpService_Upsert(t *testing.T) {
	tests := []struct {
		name            string
		setupMock       func(*MockEventRepository, *MockRsvpRepository)
		expectedCreated bool
		expectedStatus  model.RSVPStatus
		expectedError   error
	}{
		{
			name: "creates when no prior rsvp exists",
			setupMock: func(mEvent *MockEventRepository, mRsvp *MockRsvpRepository) {
				mEvent.On("FindByID", mock.Anything, uint(10)).Return(upcomingEvent(10), nil)
				mRsvp.On("FindByUserAndEvent", mock.Anything, uint(1), uint(10)).Return(nil, gorm.ErrRecordNotFound)
				mRsvp.On("Create", mock.Anything, mock.AnythingOfType("*model.RSVP")).Return(nil)
			},
			expectedCreated: true,
			expectedStatus:  model.RSVPStatusGoing,
		},
		{
			name: "updates existing rsvp in place",
			setupMock: func(mEvent *MockEventRepository, mRsvp *MockRsvpRepository) {
				mEvent.On("FindByID", mock.Anything, uint(10)).Return(upcomingEvent(10), nil)
				mRsvp.On("FindByUserAndEvent", mock.Anything, uint(1), uint(10)).
					Return(&model.RSVP{ID: 5, UserID: 1, EventID: 10, Status: model.RSVPStatusMaybe}, nil)
				mRsvp.On("UpdateStatus", mock.Anything, uint(1), uint(10), model.RSVPStatusGoing).
					Return(&model.RSVP{ID: 5, UserID: 1, EventID: 10, Status: model.RSVPStatusGoing}, nil)
			},
			expectedCreated: false,
			expectedStatus:  model.RSVPStatusGoing,
		},
		{
			name: "lost insert race falls back to update",
			setupMock: func(mEvent *MockEventRepository, mRsvp *MockRsvpRepository) {
				mEvent.On("FindByID", mock.Anything, uint(10)).Return(upcomingEvent(10), nil)
				mRsvp.On("FindByUserAndEvent", mock.Anything, uint(1), uint(10)).Return(nil, gorm.ErrRecordNotFound)
				mRsvp.On("Create", mock.Anything, mock.AnythingOfType("*model.RSVP")).Return(gorm.ErrDuplicatedKey)
				mRsvp.On("UpdateStatus", mock.Anything, uint(1), uint(10), model.RSVPStatusGoing).
					Return(&model.RSVP{ID: 7, UserID: 1, EventID: 10, Status: model.RSVPStatusGoing}, nil)
			},
			expectedCreated: false,
			expectedStatus:  model.RSVPStatusGoing,
		},
		{
			name: "event not found",
			setupMock: func(mEvent *MockEventRepository, mRsvp *MockRsvpRepository) {
				mEvent.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrEventNotFound,
		},
		{
			name: "event already ended",
			setupMock: func(mEvent *MockEventRepository, mRsvp *MockRsvpRepository) {
				passed := &model.Event{ID: 10, Date: day(0), StartTime: "09:00", EndTime: "10:00"}
				mEvent.On("FindByID", mock.Anything, uint(10)).Return(passed, nil)
			},
			expectedError: apperrors.ErrEventPassed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEventRepo := new(MockEventRepository)
			mockRsvpRepo := new(MockRsvpRepository)
			tt.setupMock(mockEventRepo, mockRsvpRepo)

			service := NewRsvpService(mockRsvpRepo, mockEventRepo, fixedGuard(), nil)
			rsvp, created, err := service.Upsert(context.Background(), 1, 10, model.RSVPStatusGoing)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, rsvp)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, rsvp)
				assert.Equal(t, tt.expectedCreated, created)
				assert.Equal(t, tt.expectedStatus, rsvp.Status)
			}

			mockEventRepo.AssertExpectations(t)
			mockRsvpRepo.AssertExpectations(t)
		})
	}
}

func TestRsvpService_Upsert_InvalidStatus(t *testing.T) {
	mockEventRepo := new(MockEventRepository)
	mockRsvpRepo := new(MockRsvpRepository)

	service := NewRsvpService(mockRsvpRepo, mockEventRepo, fixedGuard(), nil)
	rsvp, created, err := service.Upsert(context.Background(), 1, 10, model.RSVPStatus("attending"))

	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	assert.Nil(t, rsvp)
	assert.False(t, created)
	mockEventRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestRsvpService_Delete(t *testing.T) {
	t.Run("deletes existing rsvp", func(t *testing.T) {
		mockRsvpRepo := new(MockRsvpRepository)
		mockRsvpRepo.On("Delete", mock.Anything, uint(1), uint(10)).Return(nil)

		service := NewRsvpService(mockRsvpRepo, new(MockEventRepository), fixedGuard(), nil)
		err := service.Delete(context.Background(), 1, 10)

		assert.NoError(t, err)
		mockRsvpRepo.AssertExpectations(t)
	})

	t.Run("missing rsvp maps to not found", func(t *testing.T) {
		mockRsvpRepo := new(MockRsvpRepository)
		mockRsvpRepo.On("Delete", mock.Anything, uint(1), uint(10)).Return(gorm.ErrRecordNotFound)

		service := NewRsvpService(mockRsvpRepo, new(MockEventRepository), fixedGuard(), nil)
		err := service.Delete(context.Background(), 1, 10)

		assert.ErrorIs(t, err, apperrors.ErrRsvpNotFound)
	})
}

func TestRsvpService_ListByUser(t *testing.T) {
	mockRsvpRepo := new(MockRsvpRepository)
	organizer := "Admin"
	rows := []repository.UserRsvpRow{
		{
			RSVP:          model.RSVP{ID: 1, UserID: 1, EventID: 10, Status: model.RSVPStatusGoing},
			Title:         "Go Meetup",
			Date:          day(1),
			EndTime:       "21:00",
			OrganizerName: &organizer,
		},
		{
			RSVP:    model.RSVP{ID: 2, UserID: 1, EventID: 11, Status: model.RSVPStatusMaybe},
			Title:   "Morning Run",
			Date:    day(-1),
			EndTime: "08:00",
		},
		{
			// Organizer account deleted: created_by is null, the event and
			// this RSVP remain and must still be listed.
			RSVP:          model.RSVP{ID: 3, UserID: 1, EventID: 12, Status: model.RSVPStatusGoing},
			Title:         "Team Offsite",
			Date:          day(2),
			EndTime:       "17:00",
			OrganizerName: nil,
		},
	}
	mockRsvpRepo.On("ListByUser", mock.Anything, uint(1), false, defaultPageSize, 0).Return(rows, nil)

	service := NewRsvpService(mockRsvpRepo, new(MockEventRepository), fixedGuard(), nil)
	result, err := service.ListByUser(context.Background(), 1, RsvpListOptions{})

	assert.NoError(t, err)
	assert.Len(t, result, 3)
	assert.Equal(t, EventStatusUpcoming, result[0].EventStatus)
	assert.Equal(t, EventStatusPast, result[1].EventStatus)
	assert.Nil(t, result[2].OrganizerName)
	assert.Equal(t, EventStatusUpcoming, result[2].EventStatus)
	mockRsvpRepo.AssertExpectations(t)
}

func TestRsvpService_GetForEvent(t *testing.T) {
	t.Run("returns the rsvp", func(t *testing.T) {
		mockRsvpRepo := new(MockRsvpRepository)
		mockRsvpRepo.On("FindByUserAndEvent", mock.Anything, uint(1), uint(10)).
			Return(&model.RSVP{ID: 3, UserID: 1, EventID: 10, Status: model.RSVPStatusDecline}, nil)

		service := NewRsvpService(mockRsvpRepo, new(MockEventRepository), fixedGuard(), nil)
		rsvp, err := service.GetForEvent(context.Background(), 1, 10)

		assert.NoError(t, err)
		assert.Equal(t, model.RSVPStatusDecline, rsvp.Status)
	})

	t.Run("missing rsvp maps to not found", func(t *testing.T) {
		mockRsvpRepo := new(MockRsvpRepository)
		mockRsvpRepo.On("FindByUserAndEvent", mock.Anything, uint(1), uint(10)).
			Return(nil, gorm.ErrRecordNotFound)

		service := NewRsvpService(mockRsvpRepo, new(MockEventRepository), fixedGuard(), nil)
		rsvp, err := service.GetForEvent(context.Background(), 1, 10)

		assert.ErrorIs(t, err, apperrors.ErrRsvpNotFound)
		assert.Nil(t, rsvp)
	})
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		limit          int
		expectedLimit  int
		expectedOffset int
	}{
		{"defaults", 0, 0, defaultPageSize, 0},
		{"second page", 2, 10, 10, 10},
		{"limit capped", 1, 1000, maxPageSize, 0},
		{"negative page clamps to first", -3, 25, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := pageBounds(tt.page, tt.limit)
			assert.Equal(t, tt.expectedLimit, limit)
			assert.Equal(t, tt.expectedOffset, offset)
		})
	}
}
