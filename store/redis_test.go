package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_GetMissingKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	st := NewRedisStoreWithClient(client)

	mock.ExpectGet(KeyEvents).RedisNil()

	_, ok, err := st.Get(context.Background(), KeyEvents)
	require.NoError(t, err, "a missing key is not an error")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_RoundTrip(t *testing.T) {
	client, mock := redismock.NewClientMock()
	st := NewRedisStoreWithClient(client)
	ctx := context.Background()

	mock.ExpectSet(KeyUsers, `[{"id":"u1"}]`, time.Duration(0)).SetVal("OK")
	mock.ExpectGet(KeyUsers).SetVal(`[{"id":"u1"}]`)
	mock.ExpectDel(KeyUsers).SetVal(1)

	require.NoError(t, st.Set(ctx, KeyUsers, `[{"id":"u1"}]`))

	val, ok, err := st.Get(ctx, KeyUsers)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"u1"}]`, val)

	require.NoError(t, st.Remove(ctx, KeyUsers))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_PropagatesErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	st := NewRedisStoreWithClient(client)
	ctx := context.Background()

	boom := errors.New("connection refused")
	mock.ExpectGet(KeyEvents).SetErr(boom)
	mock.ExpectSet(KeyEvents, "[]", time.Duration(0)).SetErr(boom)

	_, _, err := st.Get(ctx, KeyEvents)
	assert.ErrorIs(t, err, boom)

	err = st.Set(ctx, KeyEvents, "[]")
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}
