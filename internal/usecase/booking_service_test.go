package usecase

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-search/flight-booking-wizard/internal/adapter/store/memory"
	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/logger"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/retry"
)

// fastRetry keeps publish retries quick in tests.
var fastRetry = retry.Config{
	MaxAttempts:  3,
	InitialDelay: time.Millisecond,
	MaxDelay:     2 * time.Millisecond,
	Multiplier:   2,
	RetryIf:      retry.SkipPermanent,
}

func newTestService(t *testing.T, store domain.SessionStore, publisher domain.EventPublisher, log *logger.Logger) BookingService {
	t.Helper()
	w, _ := newTestWizard()
	return NewBookingService(store, w, &ServiceConfig{
		Publisher:    publisher,
		PublishRetry: fastRetry,
		Logger:       log,
		NewID:        func() string { return "sess-1" },
	})
}

// driveToSummary walks a started session through search, select and passengers.
func driveToSummary(t *testing.T, ctx context.Context, svc BookingService, id string) {
	t.Helper()

	_, err := svc.StartBooking(ctx, id)
	require.NoError(t, err)
	_, err = svc.SubmitQuery(ctx, id, oneWayForm("Manila", "Cebu", "2025-10-20", "2"))
	require.NoError(t, err)
	_, err = svc.SelectFlight(ctx, id, "FL 101")
	require.NoError(t, err)
	_, err = svc.SubmitPassengers(ctx, id, []PassengerForm{validPassenger("Juan"), validPassenger("Maria")})
	require.NoError(t, err)
}

func TestBookingService_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := domain.NewMockEventPublisher(ctrl)
	publisher.EXPECT().Name().Return("mock").AnyTimes()

	var published domain.BookingConfirmedEvent
	publisher.EXPECT().
		PublishBookingConfirmed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e domain.BookingConfirmedEvent) error {
			published = e
			return nil
		}).
		Times(1)

	ctx := context.Background()
	store := memory.New()
	svc := newTestService(t, store, publisher, nil)

	view, err := svc.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", view.SessionID)
	assert.Equal(t, domain.StepHome, view.Step)

	driveToSummary(t, ctx, svc, view.SessionID)

	view, err = svc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepSummary, view.Step)
	assert.Equal(t, 6000.0, view.Summary.Total.Amount)

	view, err = svc.Confirm(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepSuccess, view.Step)
	require.NotNil(t, view.Confirmation)

	assert.Equal(t, "sess-1", published.SessionID)
	assert.Equal(t, "BK-TEST0001", published.Reference)
	assert.Equal(t, "FL 101", published.FlightNumber)
	assert.Equal(t, 2, published.PassengerCount)
	assert.Len(t, published.Passengers, 2)
	assert.Equal(t, 6000.0, published.Total.Amount)

	session, err := svc.Session(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepSuccess, session.Step)

	view, err = svc.ReturnHome(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepHome, view.Step)
	assert.Nil(t, view.Query)
}

func TestBookingService_UnknownSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, memory.New(), nil, nil)

	calls := map[string]func() error{
		"get":     func() error { _, err := svc.Get(ctx, "nope"); return err },
		"start":   func() error { _, err := svc.StartBooking(ctx, "nope"); return err },
		"search":  func() error { _, err := svc.SubmitQuery(ctx, "nope", BookingForm{}); return err },
		"confirm": func() error { _, err := svc.Confirm(ctx, "nope"); return err },
		"session": func() error { _, err := svc.Session(ctx, "nope"); return err },
		"abandon": func() error { return svc.Abandon(ctx, "nope") },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			assert.True(t, domain.IsSessionNotFound(err))
		})
	}
}

func TestBookingService_RejectedTransitionKeepsStoredSession(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := newTestService(t, store, nil, nil)

	_, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.StartBooking(ctx, "sess-1")
	require.NoError(t, err)

	view, err := svc.SubmitQuery(ctx, "sess-1", BookingForm{
		Origin:        "Manila",
		Destination:   "Davao",
		TripType:      "roundtrip",
		DepartureDate: "2025-10-10",
		ReturnDate:    "2025-10-05",
		Passengers:    "1",
	})
	require.Error(t, err)
	assert.True(t, domain.IsInvalidRequest(err))
	assert.Equal(t, domain.StepBooking, view.Step, "view of the unchanged session")

	stored, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepBooking, stored.Step)
	assert.True(t, stored.Query.IsZero())

	_, err = svc.Confirm(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestBookingService_SaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockSessionStore(ctrl)
	ctx := context.Background()

	session := domain.NewSession("sess-1", testNow)
	saveErr := errors.New("connection reset")

	store.EXPECT().Get(gomock.Any(), "sess-1").Return(session, nil)
	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(saveErr)

	svc := newTestService(t, store, nil, nil)

	view, err := svc.StartBooking(ctx, "sess-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, saveErr)
	assert.Equal(t, domain.StepHome, view.Step)
}

func TestBookingService_StartCreateFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockSessionStore(ctrl)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(domain.ErrSessionExists)

	svc := newTestService(t, store, nil, nil)

	_, err := svc.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionExists)
}

func TestBookingService_ConfirmSurvivesPublishFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := domain.NewMockEventPublisher(ctrl)
	publisher.EXPECT().Name().Return("mock").AnyTimes()
	publisher.EXPECT().
		PublishBookingConfirmed(gomock.Any(), gomock.Any()).
		Return(errors.New("broker down")).
		Times(fastRetry.MaxAttempts)

	var logs bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "info", Format: "json"}, &logs)

	ctx := context.Background()
	svc := newTestService(t, memory.New(), publisher, log)
	_, err := svc.Start(ctx)
	require.NoError(t, err)
	driveToSummary(t, ctx, svc, "sess-1")

	view, err := svc.Confirm(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepSuccess, view.Step)

	assert.Contains(t, logs.String(), "Failed to publish booking confirmation")
	assert.Contains(t, logs.String(), `"session_id":"sess-1"`)
	assert.Contains(t, logs.String(), "broker down")
}

func TestBookingService_PermanentPublishErrorIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := domain.NewMockEventPublisher(ctrl)
	publisher.EXPECT().Name().Return("mock").AnyTimes()
	publisher.EXPECT().
		PublishBookingConfirmed(gomock.Any(), gomock.Any()).
		Return(retry.NewPermanent(errors.New("payload rejected"))).
		Times(1)

	ctx := context.Background()
	svc := newTestService(t, memory.New(), publisher, nil)
	_, err := svc.Start(ctx)
	require.NoError(t, err)
	driveToSummary(t, ctx, svc, "sess-1")

	_, err = svc.Confirm(ctx, "sess-1")
	assert.NoError(t, err)
}

func TestBookingService_PublishUsesDetachedContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := domain.NewMockEventPublisher(ctrl)
	publisher.EXPECT().Name().Return("mock").AnyTimes()
	publisher.EXPECT().
		PublishBookingConfirmed(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.BookingConfirmedEvent) error {
			return ctx.Err()
		}).
		Times(1)

	store := memory.New()
	svc := newTestService(t, store, publisher, nil)
	_, err := svc.Start(context.Background())
	require.NoError(t, err)
	driveToSummary(t, context.Background(), svc, "sess-1")

	// A client that already went away must not stop the event.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Confirm(ctx, "sess-1")
	require.NoError(t, err)
}

func TestBookingService_Abandon(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := newTestService(t, store, nil, nil)

	_, err := svc.Start(ctx)
	require.NoError(t, err)
	driveToSummary(t, ctx, svc, "sess-1")

	require.NoError(t, svc.Abandon(ctx, "sess-1"))
	assert.Equal(t, 0, store.Len())

	_, err = svc.Get(ctx, "sess-1")
	assert.True(t, domain.IsSessionNotFound(err))

	err = svc.Abandon(ctx, "sess-1")
	assert.True(t, domain.IsSessionNotFound(err), "second abandon finds nothing")
}

func TestBookingService_AbandonDeleteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := domain.NewMockSessionStore(ctrl)
	deleteErr := errors.New("connection reset")

	store.EXPECT().Get(gomock.Any(), "sess-1").Return(domain.NewSession("sess-1", testNow), nil)
	store.EXPECT().Delete(gomock.Any(), "sess-1").Return(deleteErr)

	svc := newTestService(t, store, nil, nil)

	err := svc.Abandon(context.Background(), "sess-1")
	assert.ErrorIs(t, err, deleteErr)
	assert.False(t, domain.IsSessionNotFound(err))
}

func TestBookingService_FindFlights(t *testing.T) {
	svc := newTestService(t, memory.New(), nil, nil)

	got := svc.FindFlights(context.Background(), "manila", "davao", domain.MustParseDate("2025-10-10"))
	assert.Len(t, got, 2)
}

func TestBookingService_SerializesSameSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, memory.New(), nil, nil)
	_, err := svc.Start(ctx)
	require.NoError(t, err)

	// Exactly one of many concurrent StartBooking calls can win.
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.StartBooking(ctx, "sess-1"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
}

func TestNewBookingConfirmedEvent(t *testing.T) {
	_, ok := NewBookingConfirmedEvent(domain.NewSession("x", testNow))
	assert.False(t, ok)
}

func TestKeyedMutex_ReleasesKeys(t *testing.T) {
	k := newKeyedMutex()

	unlockA := k.Lock("a")
	unlockB := k.Lock("b")
	assert.Len(t, k.locks, 2)

	unlockA()
	unlockB()
	assert.Empty(t, k.locks)
}
