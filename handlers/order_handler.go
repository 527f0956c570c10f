package handlers

import (
	"errors"
	"math"
	"time"

	"github.com/skilllink/skilllink/models"
	"github.com/skilllink/skilllink/services"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	SkillID       string    `json:"skill_id" validate:"required,uuid"`
	ScheduledDate time.Time `json:"scheduled_date" validate:"required"`
	Message       *string   `json:"message,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderResponse struct {
	ID             uuid.UUID          `json:"id"`
	OrderNumber    string             `json:"order_number"`
	UserID         uuid.UUID          `json:"user_id"`
	ProviderID     uuid.UUID          `json:"provider_id"`
	SkillID        uuid.UUID          `json:"skill_id"`
	Status         models.OrderStatus `json:"status"`
	ScheduledDate  time.Time          `json:"scheduled_date"`
	TotalAmount    float64            `json:"total_amount"`
	PlatformFee    float64            `json:"platform_fee"`
	ProviderAmount float64            `json:"provider_amount"`
	Message        *string            `json:"message"`
	SkillTitle     string             `json:"skill_title"`
	UserName       string             `json:"user_name"`
	ProviderName   string             `json:"provider_name"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	CompletedAt    *time.Time         `json:"completed_at"`
}

type OrderListResponse struct {
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	Items      []OrderResponse `json:"items"`
}

func orderResponse(o models.Order) OrderResponse {
	return OrderResponse{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		UserID:         o.UserID,
		ProviderID:     o.ProviderID,
		SkillID:        o.SkillID,
		Status:         o.Status,
		ScheduledDate:  o.ScheduledDate,
		TotalAmount:    o.TotalAmount,
		PlatformFee:    o.PlatformFee,
		ProviderAmount: o.ProviderAmount,
		Message:        o.Message,
		SkillTitle:     o.Skill.Title,
		UserName:       o.User.Username,
		ProviderName:   o.Provider.Username,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		CompletedAt:    o.CompletedAt,
	}
}

func CreateOrder(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	skillID, _ := uuid.Parse(req.SkillID)

	order, err := services.CreateOrder(userID, skillID, req.ScheduledDate, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrSkillNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Skill not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}

	order, err = services.GetOrder(order.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load created order"})
	}

	return c.Status(fiber.StatusCreated).JSON(orderResponse(order))
}

func GetOrders(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var statusFilter *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		status := models.OrderStatus(raw)
		if !models.ValidOrderStatus(status) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown order status"})
		}
		statusFilter = &status
	}

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	orders, total, err := services.ListOrders(userID, statusFilter, page, pageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve orders"})
	}

	items := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, orderResponse(o))
	}

	return c.JSON(OrderListResponse{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		Items:      items,
	})
}

func GetOrder(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	orderID, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	order, err := services.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve order"})
	}

	if order.UserID != userID && order.ProviderID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have access to this order"})
	}

	return c.JSON(orderResponse(order))
}

func UpdateOrderStatus(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	role, _ := claims["role"].(string)

	orderID, err := uuid.Parse(c.Params("orderId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	newStatus := models.OrderStatus(req.Status)
	if !models.ValidOrderStatus(newStatus) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown order status"})
	}

	order, err := services.UpdateOrderStatus(orderID, userID, role, newStatus)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		case errors.Is(err, services.ErrNotOrderParticipant):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You do not have access to this order"})
		case errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Status transition not allowed"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update order status"})
	}

	order, err = services.GetOrder(order.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load updated order"})
	}

	return c.JSON(orderResponse(order))
}
