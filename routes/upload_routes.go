package routes

import (
	"github.com/skilllink/skilllink/handlers"
	"github.com/skilllink/skilllink/middleware"
	"github.com/gofiber/fiber/v2"
)

func UploadRoutes(app *fiber.App) {
	api := app.Group("/api", middleware.Protected())
	api.Post("/uploads/signature", handlers.GenerateUploadSignature)
	api.Patch("/profile/avatar", handlers.UpdateAvatar)
}
