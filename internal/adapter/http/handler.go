package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/flight-search/flight-booking-wizard/internal/adapter/http/middleware"
	"github.com/flight-search/flight-booking-wizard/internal/adapter/http/response"
	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/logger"
	"github.com/flight-search/flight-booking-wizard/internal/usecase"
)

// ItineraryRenderer turns a confirmed session into a document.
type ItineraryRenderer interface {
	Render(s domain.Session) ([]byte, error)
}

// WizardHandler handles HTTP requests for the booking wizard endpoints.
type WizardHandler struct {
	service  usecase.BookingService
	renderer ItineraryRenderer
	log      *logger.Logger
}

// NewWizardHandler creates a WizardHandler. A nil log disables error logging.
func NewWizardHandler(svc usecase.BookingService, renderer ItineraryRenderer, log *logger.Logger) *WizardHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &WizardHandler{
		service:  svc,
		renderer: renderer,
		log:      log,
	}
}

// Create handles POST /api/v1/wizard
//
// @Summary Start a booking session
// @Description Creates a wizard session at the home step
// @Tags wizard
// @Produce json
// @Success 201 {object} ViewResponse
// @Failure 500 {object} response.ErrorDetail "Internal error"
// @Router /wizard [post]
func (h *WizardHandler) Create(c echo.Context) error {
	view, err := h.service.Start(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}
	return response.Created(c, ToViewResponse(view))
}

// Get handles GET /api/v1/wizard/:id
//
// @Summary Get the current view
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} ViewResponse
// @Failure 404 {object} response.ErrorDetail "Unknown session"
// @Router /wizard/{id} [get]
func (h *WizardHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	return h.respond(c, view, err)
}

// StartBooking handles POST /api/v1/wizard/:id/start
//
// @Summary Open the booking form
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} ViewResponse
// @Failure 404 {object} response.ErrorDetail "Unknown session"
// @Failure 409 {object} response.ErrorDetail "Not allowed from the current step"
// @Router /wizard/{id}/start [post]
func (h *WizardHandler) StartBooking(c echo.Context) error {
	view, err := h.service.StartBooking(c.Request().Context(), c.Param("id"))
	return h.respond(c, view, err)
}

// Search handles POST /api/v1/wizard/:id/search
//
// @Summary Submit the booking form
// @Description Validates the form and searches the catalog. An empty result is not an error.
// @Tags wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SearchRequest true "Booking form"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Unknown session"
// @Failure 409 {object} response.ErrorDetail "Not allowed from the current step"
// @Router /wizard/{id}/search [post]
func (h *WizardHandler) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	view, err := h.service.SubmitQuery(c.Request().Context(), c.Param("id"), ToBookingForm(&req))
	return h.respond(c, view, err)
}

// Select handles POST /api/v1/wizard/:id/select
//
// @Summary Select a flight
// @Tags wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SelectRequest true "Flight to book"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Unknown session"
// @Failure 409 {object} response.ErrorDetail "Flight not in the shown results"
// @Router /wizard/{id}/select [post]
func (h *WizardHandler) Select(c echo.Context) error {
	var req SelectRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}
	if strings.TrimSpace(req.FlightNumber) == "" {
		return response.ValidationError(c, map[string]string{"flightNumber": "flightNumber is required"})
	}

	view, err := h.service.SelectFlight(c.Request().Context(), c.Param("id"), req.FlightNumber)
	return h.respond(c, view, err)
}

// Back handles POST /api/v1/wizard/:id/back
//
// @Summary Return to the booking form
// @Description The last accepted query stays prefilled.
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} ViewResponse
// @Failure 404 {object} response.ErrorDetail "Unknown session"
// @Failure 409 {object} response.ErrorDetail "Not allowed from the current step"
// @Router /wizard/{id}/back [post]
func (h *WizardHandler) Back(c echo.Context) error {
	view, err := h.service.BackToBooking(c.Request().Context(), c.Param("id"))
	return h.respond(c, view, err)
}

// Passengers handles POST /api/v1/wizard/:id/passengers
//
// @Summary Submit passenger details
// @Description One form per passenger. Any invalid field rejects all of them.
// @Tags wizard
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body PassengersRequest true "Passenger forms"
// @Success 200 {object} ViewResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 404 {object} response.ErrorDetail "Unknown session"
// @Failure 409 {object} response.ErrorDetail "Not allowed from the current step"
// @Router /wizard/{id}/passengers [post]
func (h *WizardHandler) Passengers(c echo.Context) error {
	var req PassengersRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	view, err := h.service.SubmitPassengers(c.Request().Context(), c.Param("id"), ToPassengerForms(&req))
	return h.respond(c, view, err)
}

// Confirm handles POST /api/v1/wizard/:id/confirm
//
// @Summary Confirm the booking
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} ViewResponse
// @Failure 404 {object} response.ErrorDetail "Unknown session"
// @Failure 409 {object} response.ErrorDetail "Not allowed from the current step"
// @Router /wizard/{id}/confirm [post]
func (h *WizardHandler) Confirm(c echo.Context) error {
	view, err := h.service.Confirm(c.Request().Context(), c.Param("id"))
	return h.respond(c, view, err)
}

// Home handles POST /api/v1/wizard/:id/home
//
// @Summary Start over
// @Description Clears the session after a confirmed booking.
// @Tags wizard
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} ViewResponse
// @Failure 404 {object} response.ErrorDetail "Unknown session"
// @Failure 409 {object} response.ErrorDetail "Not allowed from the current step"
// @Router /wizard/{id}/home [post]
func (h *WizardHandler) Home(c echo.Context) error {
	view, err := h.service.ReturnHome(c.Request().Context(), c.Param("id"))
	return h.respond(c, view, err)
}

// Abandon handles DELETE /api/v1/wizard/:id
//
// @Summary Abandon a session
// @Description Drops the session from any step; later calls with its ID return 404.
// @Tags wizard
// @Param id path string true "Session ID"
// @Success 204 "Session removed"
// @Failure 404 {object} response.ErrorDetail "Unknown session"
// @Router /wizard/{id} [delete]
func (h *WizardHandler) Abandon(c echo.Context) error {
	if err := h.service.Abandon(c.Request().Context(), c.Param("id")); err != nil {
		return h.handleError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Itinerary handles GET /api/v1/wizard/:id/itinerary.pdf
//
// @Summary Download the itinerary
// @Tags wizard
// @Produce application/pdf
// @Param id path string true "Session ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorDetail "Unknown session"
// @Failure 409 {object} response.ErrorDetail "Booking not confirmed"
// @Router /wizard/{id}/itinerary.pdf [get]
func (h *WizardHandler) Itinerary(c echo.Context) error {
	session, err := h.service.Session(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err)
	}

	doc, err := h.renderer.Render(session)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Attachment(c, "application/pdf", session.Confirmation.Reference+".pdf", doc)
}

// Flights handles GET /api/v1/flights
//
// @Summary Search the catalog
// @Description Read-only search outside any wizard session
// @Tags flights
// @Produce json
// @Param origin query string true "Departure city"
// @Param destination query string true "Arrival city"
// @Param date query string true "Departure date (YYYY-MM-DD)"
// @Success 200 {object} FlightsResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /flights [get]
func (h *WizardHandler) Flights(c echo.Context) error {
	var q FlightsQuery
	if err := c.Bind(&q); err != nil {
		return response.InvalidRequestBody(c)
	}

	date, err := q.Validate()
	if err != nil {
		return h.handleError(c, err)
	}

	flights := h.service.FindFlights(c.Request().Context(), q.Origin, q.Destination, date)
	return response.OK(c, &FlightsResponse{
		Flights: ToFlightDTOs(flights),
		Total:   len(flights),
	})
}

// Health handles GET /health
// Simple health check endpoint.
func (h *WizardHandler) Health(c echo.Context) error {
	return response.Health(c)
}

func (h *WizardHandler) respond(c echo.Context, view usecase.View, err error) error {
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, ToViewResponse(view))
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *WizardHandler) handleError(c echo.Context, err error) error {
	var validationErrs *domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	var fieldErr *domain.ValidationError
	if errors.As(err, &fieldErr) {
		return response.ValidationError(c, map[string]string{fieldErr.Field: fieldErr.Message})
	}

	if domain.IsInvalidRequest(err) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	if domain.IsSessionNotFound(err) {
		return response.NotFound(c)
	}

	if domain.IsInvalidTransition(err) {
		return response.InvalidTransition(c, err.Error())
	}

	h.log.WithRequestID(middleware.GetRequestID(c)).
		WithSession(c.Param("id")).
		Error().
		Err(err).
		Msg("Request failed")

	return response.InternalServerError(c)
}
