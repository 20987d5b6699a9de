// Package integration provides helpers and integration tests for the booking wizard.
// Integration tests drive the real HTTP handlers, booking service, wizard,
// flight catalog and in-memory session store together; only the event
// publisher is replaced by a recording mock.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	httpAdapter "github.com/flight-search/flight-booking-wizard/internal/adapter/http"
	"github.com/flight-search/flight-booking-wizard/internal/adapter/http/middleware"
	"github.com/flight-search/flight-booking-wizard/internal/adapter/http/response"
	"github.com/flight-search/flight-booking-wizard/internal/adapter/render/pdf"
	"github.com/flight-search/flight-booking-wizard/internal/adapter/store/memory"
	"github.com/flight-search/flight-booking-wizard/internal/catalog"
	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/retry"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/timeutil"
	"github.com/flight-search/flight-booking-wizard/internal/usecase"
	"github.com/flight-search/flight-booking-wizard/test/mock"
	"github.com/flight-search/flight-booking-wizard/test/testutil"
)

// CatalogSeed fixes the generated catalog across runs.
const CatalogSeed = 42

// Now is the wizard clock's start time.
var Now = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

// TestServer wires the full stack behind an Echo instance.
type TestServer struct {
	Echo      *echo.Echo
	Service   usecase.BookingService
	Store     *memory.Store
	Publisher *mock.Publisher
	Clock     *timeutil.MockClock
}

// NewTestServer builds a server over the bundled catalog configuration.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg, err := catalog.LoadFile(testutil.CatalogConfigPath(t))
	if err != nil {
		t.Fatalf("Failed to load catalog config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Invalid catalog config: %v", err)
	}

	return NewTestServerWithCatalog(catalog.Build(cfg, catalog.NewRandomSource(CatalogSeed)), mock.NewPublisher("mock"))
}

// NewTestServerWithFlights builds a server over a fixed flight list.
func NewTestServerWithFlights(flights []domain.Flight, publisher *mock.Publisher) *TestServer {
	return NewTestServerWithCatalog(catalog.New(flights), publisher)
}

// NewTestServerWithCatalog builds a server over cat, publishing through publisher.
func NewTestServerWithCatalog(cat *catalog.Catalog, publisher *mock.Publisher) *TestServer {
	clock := timeutil.NewMockClock(Now)
	store := memory.New()

	wizard := usecase.NewWizard(usecase.NewSearchEngine(cat), clock)
	service := usecase.NewBookingService(store, wizard, &usecase.ServiceConfig{
		Publisher: publisher,
		PublishRetry: retry.Config{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     2 * time.Millisecond,
			Multiplier:   2,
			RetryIf:      retry.SkipPermanent,
		},
	})

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.Setup(e, zerolog.Nop())

	handler := httpAdapter.NewWizardHandler(service, pdf.NewRenderer(), nil)
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:      e,
		Service:   service,
		Store:     store,
		Publisher: publisher,
		Clock:     clock,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method string
	Path   string
	Body   interface{}
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var body []byte
	if req.Body != nil {
		body, _ = json.Marshal(req.Body)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bytes.NewReader(body))
	if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// CreateSession starts a wizard session and returns its ID.
func (ts *TestServer) CreateSession(t *testing.T) string {
	t.Helper()

	resp := ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/wizard"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("Create session: status %d: %s", resp.Code, resp.Body)
	}
	return resp.MustView(t).SessionID
}

// Action posts body to a wizard action such as "search" or "confirm".
func (ts *TestServer) Action(id, action string, body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/v1/wizard/%s/%s", id, action),
		Body:   body,
	})
}

// View fetches the current view of a session.
func (ts *TestServer) View(id string) Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/wizard/" + id})
}

// Itinerary downloads the itinerary PDF of a session.
func (ts *TestServer) Itinerary(id string) Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/wizard/" + id + "/itinerary.pdf"})
}

// MustView decodes the body as a wizard view.
func (r Response) MustView(t *testing.T) httpAdapter.ViewResponse {
	t.Helper()
	var view httpAdapter.ViewResponse
	if err := json.Unmarshal(r.Body, &view); err != nil {
		t.Fatalf("Failed to decode view %s: %v", r.Body, err)
	}
	return view
}

// MustError decodes the body as an error response.
func (r Response) MustError(t *testing.T) response.ErrorDetail {
	t.Helper()
	var detail response.ErrorDetail
	if err := json.Unmarshal(r.Body, &detail); err != nil {
		t.Fatalf("Failed to decode error %s: %v", r.Body, err)
	}
	return detail
}

// SearchBody builds a search request.
func SearchBody(origin, destination, date, passengers string) httpAdapter.SearchRequest {
	return httpAdapter.SearchRequest{
		Origin:        origin,
		Destination:   destination,
		TripType:      string(domain.TripOneWay),
		DepartureDate: date,
		Passengers:    passengers,
	}
}

// PassengersBody builds a passengers request from n valid slots.
func PassengersBody(n int) httpAdapter.PassengersRequest {
	forms := testutil.PassengerForms(n)
	body := httpAdapter.PassengersRequest{Passengers: make([]httpAdapter.PassengerRequest, n)}
	for i, f := range forms {
		body.Passengers[i] = httpAdapter.PassengerRequest{Name: f.Name, Age: f.Age, Email: f.Email}
	}
	return body
}

// DriveToSummary walks a new session from Home to Summary with one
// search for origin -> destination on date and returns its ID.
func (ts *TestServer) DriveToSummary(t *testing.T, origin, destination, date string, passengers int) string {
	t.Helper()

	id := ts.CreateSession(t)
	mustStep(t, ts.Action(id, "start", nil), domain.StepBooking)

	view := mustStep(t, ts.Action(id, "search", SearchBody(origin, destination, date, fmt.Sprint(passengers))), domain.StepFlightResults)
	if len(view.Results) == 0 {
		t.Fatalf("No flights for %s -> %s on %s", origin, destination, date)
	}

	mustStep(t, ts.Action(id, "select", httpAdapter.SelectRequest{FlightNumber: view.Results[0].FlightNumber}), domain.StepPassengerInfo)
	mustStep(t, ts.Action(id, "passengers", PassengersBody(passengers)), domain.StepSummary)
	return id
}

func mustStep(t *testing.T, resp Response, want domain.Step) httpAdapter.ViewResponse {
	t.Helper()
	if resp.Code != http.StatusOK {
		t.Fatalf("Expected 200 at %s, got %d: %s", want, resp.Code, resp.Body)
	}
	view := resp.MustView(t)
	if view.Step != want.String() {
		t.Fatalf("Expected step %s, got %s", want, view.Step)
	}
	return view
}
