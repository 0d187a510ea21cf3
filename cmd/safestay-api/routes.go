package main

import (
	"github.com/YOUBAZ/SafeStay/auth"
	"github.com/goliatone/go-router"
)

func comingSoon(feature string) router.HandlerFunc {
	return func(ctx router.Context) error {
		return ctx.JSON(router.StatusOK, map[string]any{
			"message": feature + " endpoint - Coming soon",
		})
	}
}

// RegisterAppRoutes mounts the health check and the placeholder resource
// routes that the marketplace modules will replace.
func RegisterAppRoutes(app *App, cfg auth.Config, protected router.MiddlewareFunc) {
	r := app.srv.Router()

	r.Get("/health", func(ctx router.Context) error {
		return ctx.JSON(router.StatusOK, map[string]any{
			"status":  "OK",
			"message": "SafeStay API is running",
		})
	}).SetName("app.health")

	api := r.Group("/api")

	api.Get("/properties", comingSoon("Properties")).SetName("properties.list")
	api.Post("/properties",
		comingSoon("Property creation"),
		protected,
		auth.RequireRole(cfg, auth.RoleOwner, auth.RoleAdmin),
	).SetName("properties.create")

	api.Get("/bookings", comingSoon("Bookings")).SetName("bookings.list")
	api.Get("/payments", comingSoon("Payments")).SetName("payments.list")

	// Catch-all runs after every registered route.
	r.Use(func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			return ctx.JSON(router.StatusNotFound, map[string]any{
				"error": "Route not found",
			})
		}
	})
}
