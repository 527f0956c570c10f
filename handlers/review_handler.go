package handlers

import (
	"errors"
	"time"

	"github.com/skilllink/skilllink/database"
	"github.com/skilllink/skilllink/models"
	"github.com/skilllink/skilllink/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=5,max=500"`
}

type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	OrderID    uuid.UUID `json:"order_id"`
	SkillID    uuid.UUID `json:"skill_id"`
	UserID     uuid.UUID `json:"user_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	UserName   string    `json:"user_name"`
	UserAvatar *string   `json:"user_avatar"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
	Items      []ReviewResponse `json:"items"`
}

func reviewResponse(r models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:         r.ID,
		OrderID:    r.OrderID,
		SkillID:    r.SkillID,
		UserID:     r.UserID,
		ProviderID: r.ProviderID,
		Rating:     r.Rating,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
	if r.User.ID != uuid.Nil {
		resp.UserName = r.User.Username
		resp.UserAvatar = r.User.Avatar
	}
	return resp
}

func CreateReview(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	orderID, _ := uuid.Parse(req.OrderID)

	review, err := services.CreateReview(userID, orderID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		case errors.Is(err, services.ErrNotOrderRequester):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only review your own orders"})
		case errors.Is(err, services.ErrOrderNotCompleted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order is not completed"})
		case errors.Is(err, services.ErrAlreadyReviewed):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "This order has already been reviewed"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create review"})
	}

	if err := database.DB.Preload("User").First(&review, "id = ?", review.ID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load created review"})
	}

	return c.Status(fiber.StatusCreated).JSON(reviewResponse(review))
}
