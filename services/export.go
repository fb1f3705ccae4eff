package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yashrajz/EventHorizon-sub001/models"
)

const exportHeader = "Registration ID,Event ID,User,Ticket Type,Created At"

// ExportRegistrationsCSV renders the registrations of one event as CSV.
// Data fields are always double-quote wrapped with internal quotes doubled,
// so names containing commas, quotes or newlines survive a spreadsheet
// round trip. With no matching registrations only the header is returned.
func (r *Repository) ExportRegistrationsCSV(ctx context.Context, eventID string) (string, error) {
	regs, err := r.RegistrationsByEvent(ctx, eventID)
	if err != nil {
		return "", err
	}
	users, err := r.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	events, err := r.ListEvents(ctx)
	if err != nil {
		return "", err
	}

	usersByID := make(map[string]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	ticketNames := make(map[string]string)
	for _, ev := range events {
		if ev.ID != eventID {
			continue
		}
		for _, tt := range ev.TicketTypes {
			ticketNames[tt.ID] = tt.Name
		}
	}

	lines := make([]string, 0, len(regs)+1)
	lines = append(lines, exportHeader)

	for _, reg := range regs {
		userLabel := reg.UserID
		if u, ok := usersByID[reg.UserID]; ok {
			userLabel = fmt.Sprintf("%s <%s>", u.Name, u.Email)
		}

		ticketLabel := reg.TicketTypeID
		if name, ok := ticketNames[reg.TicketTypeID]; ok {
			ticketLabel = name
		}

		fields := []string{
			csvField(reg.ID),
			csvField(reg.EventID),
			csvField(userLabel),
			csvField(ticketLabel),
			csvField(reg.CreatedAt.Format(time.RFC3339)),
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return strings.Join(lines, "\n"), nil
}

func csvField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
