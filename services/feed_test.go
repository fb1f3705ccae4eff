package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashrajz/EventHorizon-sub001/models"
	"github.com/yashrajz/EventHorizon-sub001/store"
)

type stubSink struct {
	mu     sync.Mutex
	keys   []string
	err    error
	closed bool
}

func (s *stubSink) Publish(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
	return s.err
}

func (s *stubSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func TestFeed_ForwardsChangeKeys(t *testing.T) {
	repo := NewRepository(store.NewMemoryStore(), nil)
	sink := &stubSink{}
	feed := NewFeed(repo, sink)

	_, err := repo.SaveEvent(context.Background(), models.Event{Title: "Broadcast"})
	require.NoError(t, err)

	assert.Contains(t, sink.keys, store.KeyEvents)

	feed.Close()
	assert.True(t, sink.closed)

	seen := len(sink.keys)
	_, err = repo.SaveEvent(context.Background(), models.Event{Title: "Silent"})
	require.NoError(t, err)
	assert.Len(t, sink.keys, seen, "closed feed no longer forwards")
}

func TestFeed_SinkFailureDoesNotBreakWrites(t *testing.T) {
	repo := NewRepository(store.NewMemoryStore(), nil)
	failing := &stubSink{err: errors.New("broker unreachable")}
	healthy := &stubSink{}
	feed := NewFeed(repo, failing, healthy)
	defer feed.Close()

	saved, err := repo.SaveEvent(context.Background(), models.Event{Title: "Resilient"})
	require.NoError(t, err, "sink errors never reach the write path")

	assert.Contains(t, healthy.keys, store.KeyEvents)

	events, err := repo.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, saved.ID, events[0].ID)
}
