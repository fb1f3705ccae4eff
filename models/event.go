package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Editorial status values stored on the event record. Lifecycle states
// (upcoming, live, ended, removed) are derived from the clock and never stored.
const (
	EventDraft     = "draft"
	EventPublished = "published"
	EventCancelled = "cancelled"
)

// Ticket kinds.
const (
	TicketFree = "free"
	TicketPaid = "paid"
	TicketVIP  = "vip"
)

type TicketType struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Kind     string           `json:"kind"` // free, paid, vip
	Price    *decimal.Decimal `json:"price,omitempty"`
	Capacity *int             `json:"capacity,omitempty"`
}

type Location struct {
	Type    string `json:"type"` // venue, online
	Venue   string `json:"venue,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// Event is the listing record. Date is "2006-01-02"; StartTime and EndTime
// are local times of day "15:04". TicketTypes is always a slice, never nil.
type Event struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Date        string       `json:"date"`
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time"`
	Timezone    string       `json:"timezone"`
	Location    Location     `json:"location"`
	Status      string       `json:"status"` // draft, published, cancelled
	TicketTypes []TicketType `json:"ticket_types"`
	TicketCap   *int         `json:"ticket_cap,omitempty"`
	Views       int          `json:"views"`
	CreatedAt   time.Time    `json:"created_at"`
}
