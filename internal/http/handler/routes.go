package handler

import (
	"github.com/gofiber/fiber/v2"

	"hancock/internal/service"
	"hancock/internal/storage"
)

// Dependencies are what the routes are served from. Pinger and Store may be nil.
type Dependencies struct {
	Pinger    Pinger
	Envelopes service.EnvelopeService
	Callbacks service.CallbackService
	Store     storage.Storage
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/health", HealthCheck(deps.Pinger))
	app.Get("/healthz", LivenessProbe())

	app.Post("/envelopes", SubmitEnvelope(deps.Envelopes, deps.Store))
	app.Get("/envelopes/:id", GetEnvelope(deps.Envelopes))

	app.Get("/callbacks", ListCallbacks(deps.Callbacks))
	app.Put("/callbacks", SaveCallback(deps.Callbacks))
}
