package service

import (
	"time"

	"gatherly/internal/model"
	"gatherly/internal/repository"
)

// RsvpUser is one responder in a per-event summary.
type RsvpUser struct {
	UserID   uint      `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	RsvpDate time.Time `json:"rsvp_date"`
}

// RsvpSummary groups an event's RSVPs: per-status counts in fixed
// going/maybe/decline order, and per-status user listings sorted by name.
// Statuses with no RSVPs are omitted entirely; callers must not assume all
// three keys are present.
type RsvpSummary struct {
	Counts []repository.StatusCount        `json:"summary"`
	Users  map[model.RSVPStatus][]RsvpUser `json:"users"`
}

// buildRsvpSummary aggregates attendee rows. Rows arrive ordered by user name,
// so each status bucket stays alphabetical.
func buildRsvpSummary(rows []repository.AttendeeRow) *RsvpSummary {
	byStatus := make(map[model.RSVPStatus][]RsvpUser)
	for _, row := range rows {
		byStatus[row.Status] = append(byStatus[row.Status], RsvpUser{
			UserID:   row.UserID,
			Name:     row.Name,
			Email:    row.Email,
			RsvpDate: row.RsvpDate,
		})
	}

	summary := &RsvpSummary{
		Counts: make([]repository.StatusCount, 0, len(byStatus)),
		Users:  make(map[model.RSVPStatus][]RsvpUser, len(byStatus)),
	}
	for _, status := range model.RSVPStatusOrder {
		users, ok := byStatus[status]
		if !ok {
			continue
		}
		summary.Counts = append(summary.Counts, repository.StatusCount{
			Status: status,
			Count:  int64(len(users)),
		})
		summary.Users[status] = users
	}
	return summary
}
