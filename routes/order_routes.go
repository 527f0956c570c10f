package routes

import (
	"github.com/skilllink/skilllink/handlers"
	"github.com/skilllink/skilllink/middleware"
	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	orders := app.Group("/api/orders", middleware.Protected())
	orders.Post("", handlers.CreateOrder)
	orders.Get("", handlers.GetOrders)
	orders.Get("/:orderId", handlers.GetOrder)
	orders.Patch("/:orderId/status", handlers.UpdateOrderStatus)
}
