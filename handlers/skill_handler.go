package handlers

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/skilllink/skilllink/database"
	"github.com/skilllink/skilllink/models"
	"github.com/skilllink/skilllink/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateSkillRequest struct {
	Title           string   `json:"title" validate:"required,min=2,max=100"`
	Description     string   `json:"description" validate:"required,min=10,max=2000"`
	Category        string   `json:"category" validate:"required"`
	PricePerHour    float64  `json:"price_per_hour" validate:"required,gt=0"`
	DurationMinutes int      `json:"duration_minutes" validate:"omitempty,gt=0"`
	ServiceMode     string   `json:"service_mode" validate:"required"`
	Location        *string  `json:"location,omitempty"`
	Tags            []string `json:"tags"`
}

type SkillResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProviderID         uuid.UUID `json:"provider_id"`
	ProviderName       string    `json:"provider_name"`
	ProviderAvatar     *string   `json:"provider_avatar"`
	ProviderUniversity *string   `json:"provider_university"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	PricePerHour       float64   `json:"price_per_hour"`
	DurationMinutes    int       `json:"duration_minutes"`
	ServiceMode        string    `json:"service_mode"`
	Location           *string   `json:"location"`
	Tags               []string  `json:"tags"`
	IsActive           bool      `json:"is_active"`
	ViewsCount         int       `json:"views_count"`
	OrdersCount        int       `json:"orders_count"`
	AverageRating      float64   `json:"average_rating"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type SkillListResponse struct {
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	Items      []SkillResponse `json:"items"`
}

func skillResponse(s models.Skill) SkillResponse {
	resp := SkillResponse{
		ID:              s.ID,
		ProviderID:      s.ProviderID,
		Title:           s.Title,
		Description:     s.Description,
		Category:        s.Category,
		PricePerHour:    s.PricePerHour,
		DurationMinutes: s.DurationMinutes,
		ServiceMode:     s.ServiceMode,
		Location:        s.Location,
		Tags:            s.TagList(),
		IsActive:        s.IsActive,
		ViewsCount:      s.ViewsCount,
		OrdersCount:     s.OrdersCount,
		AverageRating:   s.AverageRating,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.Provider.ID != uuid.Nil {
		resp.ProviderName = s.Provider.Username
		resp.ProviderAvatar = s.Provider.Avatar
		resp.ProviderUniversity = s.Provider.University
	}
	return resp
}

func GetSkills(c *fiber.Ctx) error {
	var filters services.SkillFilters
	filters.Keyword = c.Query("keyword")

	if category := c.Query("category"); category != "" {
		if !models.ValidCategory(category) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown category"})
		}
		filters.Category = category
	}
	if mode := c.Query("service_mode"); mode != "" {
		if !models.ValidServiceMode(mode) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown service mode"})
		}
		filters.ServiceMode = mode
	}
	if raw := c.Query("min_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinPrice = &v
		}
	}
	if raw := c.Query("max_price"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxPrice = &v
		}
	}
	if raw := c.Query("min_rating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinRating = &v
		}
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	skills, total, err := services.ListSkills(filters, page, pageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve skills"})
	}

	items := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		items = append(items, skillResponse(s))
	}

	return c.JSON(SkillListResponse{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		Items:      items,
	})
}

func GetSkill(c *fiber.Ctx) error {
	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid skill id"})
	}

	skill, err := services.GetSkillByID(skillID)
	if err != nil {
		if errors.Is(err, services.ErrSkillNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve skill"})
	}

	return c.JSON(skillResponse(skill))
}

func CreateSkill(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	providerID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if !models.ValidCategory(req.Category) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown category"})
	}
	if !models.ValidServiceMode(req.ServiceMode) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown service mode"})
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = 60
	}

	skill := models.Skill{
		ProviderID:      providerID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		PricePerHour:    req.PricePerHour,
		DurationMinutes: duration,
		ServiceMode:     req.ServiceMode,
		Location:        req.Location,
		Tags:            strings.Join(req.Tags, ","),
		IsActive:        true,
	}
	if err := database.DB.Create(&skill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create skill"})
	}

	if err := database.DB.Preload("Provider").First(&skill, "id = ?", skill.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load created skill"})
	}

	return c.Status(fiber.StatusCreated).JSON(skillResponse(skill))
}

func GetSkillReviews(c *fiber.Ctx) error {
	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid skill id"})
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	reviews, total, err := services.ListSkillReviews(skillID, page, pageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve reviews"})
	}

	items := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		items = append(items, reviewResponse(r))
	}

	return c.JSON(ReviewListResponse{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		Items:      items,
	})
}

func GetSkillStats(c *fiber.Ctx) error {
	skillID, err := uuid.Parse(c.Params("skillId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid skill id"})
	}

	stats, err := services.GetSkillStats(skillID)
	if err != nil {
		if errors.Is(err, services.ErrSkillNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve skill stats"})
	}

	return c.JSON(stats)
}
