package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/campaign-calendar/internal/api/http/handlers"
	"github.com/spec-kit/campaign-calendar/internal/auth"
	"github.com/spec-kit/campaign-calendar/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health           *handlers.HealthHandler
	Events           *handlers.EventsHandler
	Activity         *handlers.ActivityHandler
	Directory        *handlers.DirectoryHandler
	Access           *handlers.AccessHandler
	AccessMiddleware *auth.AccessMiddleware
	Metrics          *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}
	app.Get("/holidays", handlers.Holidays)

	scoped := app.Group("", cfg.AccessMiddleware.Handle)
	designer := auth.RequireDesigner()

	scoped.Get("/access/me", cfg.Access.Me)

	events := scoped.Group("/events")
	events.Get("/", cfg.Events.ListEvents)
	events.Get("/:id", cfg.Events.GetEvent)
	events.Post("/", designer, cfg.Events.CreateEvent)
	events.Delete("/", designer, cfg.Events.DeleteAllEvents)
	events.Delete("/:id", designer, cfg.Events.DeleteEvent)

	notifications := scoped.Group("/notifications", designer)
	notifications.Get("/", cfg.Activity.ListNotifications)
	notifications.Post("/read", cfg.Activity.MarkNotificationsRead)
	notifications.Delete("/", cfg.Activity.ClearNotifications)

	activity := scoped.Group("/activity-log", designer)
	activity.Get("/", cfg.Activity.ListActivityLog)
	activity.Delete("/", cfg.Activity.ClearActivityLog)

	directory := scoped.Group("/directory")
	directory.Get("/users", cfg.Directory.ListUsers)
	directory.Post("/users", designer, cfg.Directory.CreateUser)
	directory.Delete("/users/:id", designer, cfg.Directory.DeleteUser)
	directory.Get("/departments", cfg.Directory.ListDepartments)
	directory.Post("/departments", designer, cfg.Directory.CreateDepartment)
	directory.Delete("/departments/:id", designer, cfg.Directory.DeleteDepartment)
	directory.Get("/access-map", designer, cfg.Directory.GetAccessMap)
	directory.Put("/access-map", designer, cfg.Directory.ReplaceAccessMap)
	directory.Put("/access-map/departments/:address", designer, cfg.Directory.SetDepartmentAddress)
	directory.Delete("/access-map/departments/:address", designer, cfg.Directory.RemoveDepartmentAddress)
}
