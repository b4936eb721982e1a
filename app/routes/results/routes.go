package results

import (
	"github.com/gofiber/fiber/v2"

	"result-portal/app/routes/auth"
)

func SetupResultsRoutes(app *fiber.App, h *Handler, guard *auth.Handler) {
	// Anonymous student lookup, rate limited per client IP.
	app.Post("/results/lookup", h.LookupAPI)

	// Admin surface
	app.Get("/results", guard.RequireAuth, h.ListResultsAPI)
	app.Get("/results/:id", guard.RequireAuth, h.GetResultAPI)
	app.Post("/results", guard.RequireAuth, h.CreateResultAPI)
	app.Put("/results/:id", guard.RequireAuth, h.UpdateResultAPI)
	app.Delete("/results/:id", guard.RequireAuth, h.DeleteResultAPI)
}
