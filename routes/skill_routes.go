package routes

import (
	"github.com/skilllink/skilllink/handlers"
	"github.com/skilllink/skilllink/middleware"
	"github.com/gofiber/fiber/v2"
)

func SkillRoutes(app *fiber.App) {
	skills := app.Group("/api/skills")
	skills.Get("", handlers.GetSkills)
	skills.Post("", middleware.Protected(), middleware.ProviderRequired(), handlers.CreateSkill)
	skills.Get("/:skillId", handlers.GetSkill)
	skills.Get("/:skillId/reviews", handlers.GetSkillReviews)
	skills.Get("/:skillId/stats", handlers.GetSkillStats)
}
