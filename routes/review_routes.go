package routes

import (
	"github.com/skilllink/skilllink/handlers"
	"github.com/skilllink/skilllink/middleware"
	"github.com/gofiber/fiber/v2"
)

func ReviewRoutes(app *fiber.App) {
	reviews := app.Group("/api/reviews", middleware.Protected())
	reviews.Post("", handlers.CreateReview)
}
