package routes

import (
	"github.com/skilllink/skilllink/handlers"
	"github.com/skilllink/skilllink/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	auth := app.Group("/api/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Get("/me", middleware.Protected(), handlers.GetMe)
}
