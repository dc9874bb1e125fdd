package routes

import (
	"github.com/gofiber/fiber/v3"

	"github.com/sebastupa/testAssist/internal/delivery/http/handler"
	"github.com/sebastupa/testAssist/internal/delivery/http/middleware"
	"github.com/sebastupa/testAssist/internal/ws"
)

type Deps struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Preferences *handler.PreferenceHandler
	Jobs        *handler.JobHandler

	AuthMw *middleware.AuthMiddleware
	WS     *ws.Handler
}

// Register wires every endpoint. The job routes run behind optional bearer
// auth so a verified token can supply the creator identity; the legacy
// X-AUTH-USER header remains the fallback.
func Register(app *fiber.App, d Deps) {
	if app == nil {
		return
	}

	d.Health.RegisterRoutes(app)
	d.Auth.RegisterRoutes(app)
	d.Preferences.RegisterRoutes(app)

	jobs := app.Group("", d.AuthMw.Optional())
	d.Jobs.RegisterRoutes(jobs)

	if d.WS != nil {
		app.Get("/ws/jobs", d.WS.HandleJobsWS)
	}
}
