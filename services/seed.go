package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/yashrajz/EventHorizon-sub001/models"
	"github.com/yashrajz/EventHorizon-sub001/utils"
)

func defaultSettings() models.Settings {
	return models.Settings{
		Theme:                "dark",
		RegistrationsEnabled: true,
		SiteTitle:            "EventHorizon",
	}
}

// seedEvents builds the sample dataset shown on a fresh install. Content is
// fixed; only identities and the creation timestamp vary per run. Schedules
// are laid out relative to the seed time so the samples always classify as
// upcoming.
func seedEvents(now time.Time) ([]models.Event, error) {
	conferencePrice := decimal.NewFromInt(149)
	vipPrice := decimal.NewFromInt(399)
	concertPrice := decimal.NewFromInt(45)
	workshopCap := 30

	events := []models.Event{
		{
			Title:       "Horizon Tech Conference",
			Description: "Two stages of talks on cloud infrastructure, developer tooling and open source.",
			Category:    "conference",
			Date:        now.AddDate(0, 0, 14).Format("2006-01-02"),
			StartTime:   "09:00",
			EndTime:     "18:00",
			Timezone:    "local",
			Location:    models.Location{Type: "venue", Venue: "Riverside Convention Center", City: "Portland", Country: "US"},
			Status:      models.EventPublished,
			TicketTypes: []models.TicketType{
				{Name: "General Admission", Kind: models.TicketPaid, Price: &conferencePrice},
				{Name: "VIP", Kind: models.TicketVIP, Price: &vipPrice},
			},
		},
		{
			Title:       "Intro to Screen Printing",
			Description: "Hands-on workshop, all materials included. Limited seats.",
			Category:    "workshop",
			Date:        now.AddDate(0, 0, 7).Format("2006-01-02"),
			StartTime:   "18:00",
			EndTime:     "21:00",
			Timezone:    "local",
			Location:    models.Location{Type: "venue", Venue: "Makers Hall", City: "Portland", Country: "US"},
			Status:      models.EventPublished,
			TicketTypes: []models.TicketType{
				{Name: "Workshop Seat", Kind: models.TicketFree, Capacity: &workshopCap},
			},
		},
		{
			Title:       "Jazz on the Waterfront",
			Description: "Open-air evening concert featuring three local quartets.",
			Category:    "music",
			Date:        now.AddDate(0, 0, 30).Format("2006-01-02"),
			StartTime:   "19:30",
			EndTime:     "23:00",
			Timezone:    "local",
			Location:    models.Location{Type: "venue", Venue: "Pier Stage", City: "Portland", Country: "US"},
			Status:      models.EventPublished,
			TicketTypes: []models.TicketType{
				{Name: "Lawn", Kind: models.TicketPaid, Price: &concertPrice},
			},
		},
	}

	for i := range events {
		id, err := utils.NewID()
		if err != nil {
			return nil, err
		}
		events[i].ID = id
		events[i].Views = 0
		events[i].CreatedAt = now
		for j := range events[i].TicketTypes {
			tid, err := utils.NewID()
			if err != nil {
				return nil, err
			}
			events[i].TicketTypes[j].ID = tid
		}
	}

	return events, nil
}

func seedUsers() ([]models.User, error) {
	users := []models.User{
		{Name: "Ava Thompson", Email: "ava@example.com"},
		{Name: "Liam Carter", Email: "liam@example.com"},
		{Name: "Maya Patel", Email: "maya@example.com"},
	}

	for i := range users {
		id, err := utils.NewID()
		if err != nil {
			return nil, err
		}
		users[i].ID = id
	}

	return users, nil
}
