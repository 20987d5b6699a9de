package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all booking wizard API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *WizardHandler) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware on the API group.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *WizardHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)

	api.GET("/flights", h.Flights)

	wizard := api.Group("/wizard")
	wizard.POST("", h.Create)
	wizard.POST("/", h.Create)
	wizard.GET("/:id", h.Get)
	wizard.DELETE("/:id", h.Abandon)
	wizard.POST("/:id/start", h.StartBooking)
	wizard.POST("/:id/search", h.Search)
	wizard.POST("/:id/select", h.Select)
	wizard.POST("/:id/back", h.Back)
	wizard.POST("/:id/passengers", h.Passengers)
	wizard.POST("/:id/confirm", h.Confirm)
	wizard.POST("/:id/home", h.Home)
	wizard.GET("/:id/itinerary.pdf", h.Itinerary)
}
