package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_TicketPriceSerialization(t *testing.T) {
	price := decimal.NewFromFloat(149.50)
	event := Event{
		ID:     "evt-1",
		Title:  "Priced Event",
		Status: EventPublished,
		TicketTypes: []TicketType{
			{ID: "tkt-1", Name: "General", Kind: TicketPaid, Price: &price},
			{ID: "tkt-2", Name: "Community", Kind: TicketFree},
		},
	}

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded.TicketTypes, 2)
	require.NotNil(t, decoded.TicketTypes[0].Price)
	assert.True(t, price.Equal(*decoded.TicketTypes[0].Price))
	assert.Nil(t, decoded.TicketTypes[1].Price, "free tickets carry no price")
	assert.Nil(t, decoded.TicketTypes[1].Capacity)
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(Session{ID: "u1", Role: RoleAdmin}))
	assert.False(t, IsAdmin(Session{ID: "u1", Role: "attendant"}))
	assert.False(t, IsAdmin(Session{}))
}
