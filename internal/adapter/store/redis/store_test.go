package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
)

// newTestStore connects to REDIS_ADDR or skips the test.
func newTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping redis store tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	store, err := New(ctx, Config{Addr: addr, TTL: ttl})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "wizard:session:abc", sessionKey("abc"))
}

func TestNew_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := New(ctx, Config{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis")
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t, time.Minute)
	ctx := context.Background()

	id := uuid.NewString()
	t.Cleanup(func() { _ = store.Delete(ctx, id) })

	session := domain.NewSession(id, time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC))
	session.Step = domain.StepFlightResults
	session.Query = domain.BookingQuery{
		Origin:         "Manila",
		Destination:    "Cebu",
		TripType:       domain.TripOneWay,
		DepartureDate:  domain.MustParseDate("2025-10-20"),
		PassengerCount: 2,
	}
	session.Results = []domain.Flight{}

	require.NoError(t, store.Create(ctx, session))
	assert.ErrorIs(t, store.Create(ctx, session), domain.ErrSessionExists)

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, session.Step, got.Step)
	assert.Equal(t, session.Query, got.Query)
	assert.NotNil(t, got.Results, "empty results survive encoding")
	assert.True(t, session.StartedAt.Equal(got.StartedAt))

	got.Step = domain.StepBooking
	got.Results = nil
	require.NoError(t, store.Save(ctx, got))

	again, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StepBooking, again.Step)
	assert.Nil(t, again.Results)

	ttl, err := store.client.(*redis.Client).TTL(ctx, sessionKey(id)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_SaveUnknown(t *testing.T) {
	store := newTestStore(t, time.Minute)

	err := store.Save(context.Background(), domain.NewSession(uuid.NewString(), time.Now()))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func newFakeStore(ttl time.Duration) (*Store, *fakeClient) {
	fake := newFakeClient()
	return newStore(fake, ttl), fake
}

func searchedSession(id string, results []domain.Flight) domain.Session {
	session := domain.NewSession(id, time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC))
	session.Step = domain.StepFlightResults
	session.Query = domain.BookingQuery{
		Origin:         "Manila",
		Destination:    "Cebu",
		TripType:       domain.TripOneWay,
		DepartureDate:  domain.MustParseDate("2025-10-20"),
		PassengerCount: 1,
	}
	session.Results = results
	return session
}

func TestDecodeSession_Results(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantNil bool
	}{
		{name: "null results mean not yet searched", payload: `{"id":"a","step":"booking","results":null}`, wantNil: true},
		{name: "missing results mean not yet searched", payload: `{"id":"a","step":"booking"}`, wantNil: true},
		{name: "empty array means searched with no matches", payload: `{"id":"a","step":"flights","results":[]}`, wantNil: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeSession([]byte(tt.payload))
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got.Results)
			} else {
				assert.NotNil(t, got.Results)
				assert.Empty(t, got.Results)
			}
		})
	}
}

func TestEncodeSession_Results(t *testing.T) {
	unsearched, err := encodeSession(domain.NewSession("a", time.Now()))
	require.NoError(t, err)
	assert.Contains(t, string(unsearched), `"results":null`)

	empty, err := encodeSession(searchedSession("a", []domain.Flight{}))
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"results":[]`)
}

func TestStore_FakeRoundTrip(t *testing.T) {
	store, fake := newFakeStore(time.Minute)
	ctx := context.Background()

	session := searchedSession("s-1", []domain.Flight{})
	require.NoError(t, store.Create(ctx, session))
	assert.Equal(t, time.Minute, fake.ttl(sessionKey("s-1")))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, session.Step, got.Step)
	assert.Equal(t, session.Query, got.Query)
	require.NotNil(t, got.Results)
	assert.Empty(t, got.Results)

	got.Step = domain.StepBooking
	got.Results = nil
	require.NoError(t, store.Save(ctx, got))

	again, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepBooking, again.Step)
	assert.Nil(t, again.Results)

	require.NoError(t, store.Delete(ctx, "s-1"))
	_, ok := fake.raw(sessionKey("s-1"))
	assert.False(t, ok)
}

func TestStore_FakeCreateExisting(t *testing.T) {
	store, _ := newFakeStore(time.Minute)
	ctx := context.Background()

	session := searchedSession("s-1", nil)
	require.NoError(t, store.Create(ctx, session))

	err := store.Create(ctx, session)
	assert.ErrorIs(t, err, domain.ErrSessionExists)
}

func TestStore_FakeSaveMissing(t *testing.T) {
	store, fake := newFakeStore(time.Minute)

	err := store.Save(context.Background(), searchedSession("gone", nil))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, ok := fake.raw(sessionKey("gone"))
	assert.False(t, ok, "save must not create the key")
}

func TestStore_FakeGetMissing(t *testing.T) {
	store, _ := newFakeStore(time.Minute)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_FakeGetRefreshesTTL(t *testing.T) {
	store, fake := newFakeStore(time.Minute)
	ctx := context.Background()

	fake.put(sessionKey("s-1"), `{"id":"s-1","step":"booking"}`)
	assert.Zero(t, fake.ttl(sessionKey("s-1")))

	_, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, fake.ttl(sessionKey("s-1")))
}

func TestStore_FakeCorruptPayload(t *testing.T) {
	store, fake := newFakeStore(time.Minute)
	fake.put(sessionKey("bad"), "{not json")

	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode session bad")
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestStore_FakeBackendError(t *testing.T) {
	store, fake := newFakeStore(time.Minute)
	ctx := context.Background()
	boom := errors.New("connection reset")
	fake.failWith(boom)

	tests := []struct {
		name   string
		prefix string
		call   func() error
	}{
		{name: "create", prefix: "redis setnx", call: func() error { return store.Create(ctx, searchedSession("s", nil)) }},
		{name: "get", prefix: "redis get", call: func() error { _, err := store.Get(ctx, "s"); return err }},
		{name: "save", prefix: "redis setxx", call: func() error { return store.Save(ctx, searchedSession("s", nil)) }},
		{name: "delete", prefix: "redis del", call: func() error { return store.Delete(ctx, "s") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, boom)
			assert.Contains(t, err.Error(), tt.prefix)
		})
	}
}

func TestStore_FakeClose(t *testing.T) {
	store, fake := newFakeStore(0)

	require.NoError(t, store.Close())
	assert.True(t, fake.closed)
}
