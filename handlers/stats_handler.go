package handlers

import (
	"github.com/skilllink/skilllink/services"
	"github.com/gofiber/fiber/v2"
)

func GetStats(c *fiber.Ctx) error {
	stats, err := services.GetPlatformStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve stats"})
	}
	return c.JSON(stats)
}

func GetCategories(c *fiber.Ctx) error {
	counts, err := services.GetCategoryCounts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve categories"})
	}
	return c.JSON(fiber.Map{"categories": counts})
}
