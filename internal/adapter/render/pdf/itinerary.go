// Package pdf renders a confirmed booking as a printable itinerary.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/flight-search/flight-booking-wizard/internal/domain"
	"github.com/flight-search/flight-booking-wizard/internal/infrastructure/timeutil"
)

// ContentType is the MIME type of rendered itineraries.
const ContentType = "application/pdf"

// Renderer builds itinerary documents.
type Renderer struct {
	timezone string
	brand    string
	compress bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTimezone sets the zone used for the confirmation time.
func WithTimezone(tz string) Option {
	return func(r *Renderer) { r.timezone = tz }
}

// WithBrand sets the title printed in the header bar.
func WithBrand(brand string) Option {
	return func(r *Renderer) { r.brand = brand }
}

// WithCompression toggles stream compression. Enabled by default.
func WithCompression(on bool) Option {
	return func(r *Renderer) { r.compress = on }
}

// NewRenderer creates a Renderer printing times in Philippine time.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		timezone: timeutil.PHT,
		brand:    "Flight Booking",
		compress: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render returns the itinerary for a confirmed session.
// Sessions not at the Success step are rejected with an invalid transition error.
func (r *Renderer) Render(s domain.Session) ([]byte, error) {
	if s.Step != domain.StepSuccess || s.Confirmation == nil || s.SelectedFlight == nil {
		return nil, domain.NewInvalidTransitionError("download itinerary", s.Step)
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(r.compress)
	doc.SetCreationDate(s.Confirmation.ConfirmedAt)
	doc.SetTitle("Itinerary "+s.Confirmation.Reference, false)
	doc.SetMargins(20, 20, 20)
	doc.AddPage()

	r.header(doc, s.Confirmation.Reference)

	section := func(title string) {
		doc.SetFillColor(13, 24, 37)
		doc.SetTextColor(255, 255, 255)
		doc.SetFont("Helvetica", "B", 11)
		doc.CellFormat(170, 8, "  "+title, "", 1, "L", true, 0, "")
		doc.SetTextColor(0, 0, 0)
		doc.Ln(2)
	}

	row := func(label, value string) {
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(100, 100, 100)
		doc.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		doc.SetTextColor(20, 20, 20)
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(115, 7, value, "", 1, "L", false, 0, "")
	}

	f := s.SelectedFlight
	section("Flight")
	row("Flight", f.FlightNumber)
	row("Route", f.Origin+" to "+f.Destination)
	row("Date", f.Date.String())
	row("Departure", f.DepartureTime.String()+" from "+f.Terminal)
	row("Duration", f.Duration)
	row("Fare class", string(f.FareClass))
	doc.Ln(4)

	section("Passengers")
	for i, p := range s.Passengers {
		row(fmt.Sprintf("%d. %s", i+1, p.FullName), "Age "+strconv.Itoa(p.Age)+", "+p.Email)
	}
	doc.Ln(4)

	section("Payment")
	row("Fare per passenger", price(f.Price))
	row("Passengers", strconv.Itoa(len(s.Passengers)))

	doc.SetFillColor(212, 168, 67)
	doc.SetTextColor(13, 24, 37)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(55, 9, "TOTAL", "", 0, "L", true, 0, "")
	doc.CellFormat(115, 9, price(s.Confirmation.Total), "", 1, "L", true, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(4)

	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(100, 100, 100)
	doc.CellFormat(170, 6, "Confirmed "+timeutil.FormatIn(s.Confirmation.ConfirmedAt, r.timezone), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render itinerary %s: %w", s.Confirmation.Reference, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(doc *gofpdf.Fpdf, reference string) {
	doc.SetFillColor(13, 24, 37)
	doc.Rect(0, 0, 210, 28, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 18)
	doc.SetXY(20, 8)
	doc.CellFormat(100, 10, r.brand, "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(212, 168, 67)
	doc.SetXY(20, 18)
	doc.CellFormat(170, 6, "Booking reference "+reference, "", 1, "L", false, 0, "")
	doc.SetY(35)
	doc.SetTextColor(0, 0, 0)
}

// price prints the currency code; the core fonts have no peso sign.
func price(p domain.PriceInfo) string {
	amount := domain.PriceInfo{Amount: p.Amount}.Formatted()
	if p.Currency == "" {
		return amount
	}
	return p.Currency + " " + amount
}
