package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "gatherly/internal/errors"
	"gatherly/internal/model"
	"gatherly/internal/service"
)

// RsvpHandler handles RSVP endpoints.
type RsvpHandler struct {
	rsvpService service.RsvpService
}

// NewRsvpHandler creates a new RSVP handler.
func NewRsvpHandler(rsvpService service.RsvpService) *RsvpHandler {
	return &RsvpHandler{rsvpService: rsvpService}
}

// UpsertRsvpRequest represents an RSVP submission. Re-submitting for the same
// event updates the existing RSVP in place.
type UpsertRsvpRequest struct {
	EventID uint   `json:"event_id" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=going maybe decline"`
}

// Upsert godoc
// @Summary Submit or change an RSVP
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertRsvpRequest true "RSVP data"
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rsvps [post]
func (h *RsvpHandler) Upsert(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req UpsertRsvpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rsvp, created, err := h.rsvpService.Upsert(c.Request().Context(), claims.UserID, req.EventID, model.RSVPStatus(req.Status))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	status := http.StatusOK
	message := "rsvp updated successfully"
	if created {
		status = http.StatusCreated
		message = "rsvp created successfully"
	}
	return c.JSON(status, map[string]interface{}{
		"message": message,
		"rsvp":    rsvp,
	})
}

// ListMine godoc
// @Summary List the current user's RSVPs
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param upcoming_only query bool false "Only events dated today or later"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {array} service.UserRsvp
// @Failure 401 {object} errors.ErrorResponse
// @Router /rsvps [get]
func (h *RsvpHandler) ListMine(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	rsvps, err := h.rsvpService.ListByUser(c.Request().Context(), claims.UserID, service.RsvpListOptions{
		UpcomingOnly: queryBool(c, "upcoming_only", false),
		Page:         queryInt(c, "page", 1),
		Limit:        queryInt(c, "limit", 10),
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rsvps)
}

// GetForEvent godoc
// @Summary Get the current user's RSVP for an event
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param event_id path int true "Event ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /rsvps/{event_id} [get]
func (h *RsvpHandler) GetForEvent(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	eventID, err := pathID(c, "event_id")
	if err != nil {
		return err
	}

	rsvp, err := h.rsvpService.GetForEvent(c.Request().Context(), claims.UserID, eventID)
	if err != nil {
		if err == apperrors.ErrRsvpNotFound {
			// No RSVP yet is a normal state for this endpoint, not an error.
			return c.JSON(http.StatusOK, map[string]interface{}{"rsvp": nil})
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"rsvp": rsvp})
}

// Delete godoc
// @Summary Delete the current user's RSVP for an event
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param event_id path int true "Event ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rsvps/{event_id} [delete]
func (h *RsvpHandler) Delete(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	eventID, err := pathID(c, "event_id")
	if err != nil {
		return err
	}

	if err := h.rsvpService.Delete(c.Request().Context(), claims.UserID, eventID); err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "rsvp deleted"})
}

// Stats godoc
// @Summary Per-status RSVP counts for the current user's upcoming events
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.StatusCount
// @Failure 401 {object} errors.ErrorResponse
// @Router /rsvps/stats [get]
func (h *RsvpHandler) Stats(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	stats, err := h.rsvpService.UserStats(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
