package services

import (
	"context"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashrajz/EventHorizon-sub001/store"
)

// fixtureStore pre-writes all four collections with fixed identities so the
// export output is byte-stable.
func fixtureStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	st := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, store.KeyEvents, `[
		{
			"id": "evt1", "title": "Launch Party", "status": "published",
			"date": "2024-03-10", "start_time": "18:00", "end_time": "22:00",
			"ticket_types": [
				{"id": "tkt1", "name": "General", "kind": "free"},
				{"id": "tkt2", "name": "Backstage", "kind": "vip"}
			],
			"views": 0, "created_at": "2024-03-01T09:00:00Z"
		}
	]`))
	require.NoError(t, st.Set(ctx, store.KeyUsers, `[
		{"id": "usr1", "name": "O'Brien, \"Jay\"", "email": "jay@example.com"},
		{"id": "usr2", "name": "Ava Thompson", "email": "ava@example.com"}
	]`))
	require.NoError(t, st.Set(ctx, store.KeyRegistrations, `[
		{"id": "reg2", "event_id": "evt1", "user_id": "usr2", "ticket_type_id": "tkt2", "created_at": "2024-03-02T14:30:00Z"},
		{"id": "reg1", "event_id": "evt1", "user_id": "usr1", "ticket_type_id": "tkt1", "created_at": "2024-03-01T10:00:00Z"},
		{"id": "reg3", "event_id": "evt9", "user_id": "usr1", "ticket_type_id": "tkt1", "created_at": "2024-03-03T08:00:00Z"}
	]`))

	return st
}

func TestExportRegistrationsCSV_Golden(t *testing.T) {
	repo := NewRepository(fixtureStore(t), nil)

	csv, err := repo.ExportRegistrationsCSV(context.Background(), "evt1")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "registrations_export", []byte(csv))
}

func TestExportRegistrationsCSV_EscapesUserField(t *testing.T) {
	repo := NewRepository(fixtureStore(t), nil)

	csv, err := repo.ExportRegistrationsCSV(context.Background(), "evt1")
	require.NoError(t, err)

	assert.Contains(t, csv, `"O'Brien, ""Jay"" <jay@example.com>"`)
}

func TestExportRegistrationsCSV_UnknownReferencesFallBackToRawIDs(t *testing.T) {
	repo := NewRepository(fixtureStore(t), nil)

	// evt9 has no stored event and its registration references usr1/tkt1;
	// ticket names resolve against the exported event only.
	csv, err := repo.ExportRegistrationsCSV(context.Background(), "evt9")
	require.NoError(t, err)

	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"tkt1"`, "unresolvable ticket type renders its raw id")
	assert.Contains(t, lines[1], `"O'Brien, ""Jay"" <jay@example.com>"`)
}

func TestExportRegistrationsCSV_NoMatchesReturnsHeaderOnly(t *testing.T) {
	repo := NewRepository(fixtureStore(t), nil)

	csv, err := repo.ExportRegistrationsCSV(context.Background(), "evt-none")
	require.NoError(t, err)

	assert.Equal(t, "Registration ID,Event ID,User,Ticket Type,Created At", csv)
}
