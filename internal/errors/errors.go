package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEventNotFound is returned when an event is not found.
	ErrEventNotFound = errors.New("event not found")
	// ErrRsvpNotFound is returned when an RSVP is not found.
	ErrRsvpNotFound = errors.New("rsvp not found")
	// ErrPastDate is returned when an event date is before today.
	ErrPastDate = errors.New("event date cannot be in the past")
	// ErrInvalidTimeRange is returned when an event's end time is not after its start time.
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	// ErrEventPassed is returned when RSVPing to an event that has already ended.
	ErrEventPassed = errors.New("cannot rsvp to past events")
	// ErrInvalidStatus is returned when an RSVP status is not going, maybe or decline.
	ErrInvalidStatus = errors.New("invalid rsvp status")
	// ErrEmailTaken is returned when registering or updating to an email that is already in use.
	ErrEmailTaken = errors.New("email is already taken")
	// ErrUnavailable is returned when the storage layer cannot be reached or the pool is exhausted.
	ErrUnavailable = errors.New("service temporarily unavailable")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unexpected errors collapse
// into a generic 500 so internal detail is never exposed.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrEventNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EVENT_NOT_FOUND")
	case errors.Is(err, ErrRsvpNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RSVP_NOT_FOUND")
	case errors.Is(err, ErrPastDate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "PAST_DATE")
	case errors.Is(err, ErrInvalidTimeRange):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TIME_RANGE")
	case errors.Is(err, ErrEventPassed):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EVENT_PASSED")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "SERVICE_UNAVAILABLE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
