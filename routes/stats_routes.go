package routes

import (
	"github.com/skilllink/skilllink/handlers"
	"github.com/gofiber/fiber/v2"
)

func StatsRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/stats", handlers.GetStats)
	api.Get("/categories", handlers.GetCategories)
}
