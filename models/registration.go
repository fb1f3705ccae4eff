package models

import "time"

// Registration links a user to an event and one of its ticket types.
// ID and CreatedAt are assigned by the repository at creation, never by callers.
type Registration struct {
	ID           string    `json:"id"`
	EventID      string    `json:"event_id"`
	UserID       string    `json:"user_id"`
	TicketTypeID string    `json:"ticket_type_id"`
	CreatedAt    time.Time `json:"created_at"`
}
