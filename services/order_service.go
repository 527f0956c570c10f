package services

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/skilllink/skilllink/database"
	"github.com/skilllink/skilllink/models"
	"github.com/skilllink/skilllink/utils"
	"gorm.io/gorm"
)

// PlatformCommissionRate is the fixed share of every order retained by the
// platform.
const PlatformCommissionRate = 0.15

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateOrder books a skill for a user. The total is price_per_hour scaled by
// the session duration; the platform fee and provider payout are derived from
// it. All three amounts are rounded to two decimals independently, so the fee
// and payout can drift from the total by at most one cent. The skill's order
// counter is bumped in the same transaction.
func CreateOrder(userID, skillID uuid.UUID, scheduledDate time.Time, message *string) (models.Order, error) {
	var order models.Order

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var skill models.Skill
		if err := tx.First(&skill, "id = ?", skillID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSkillNotFound
			}
			return err
		}

		totalAmount := skill.PricePerHour * (float64(skill.DurationMinutes) / 60)
		platformFee := totalAmount * PlatformCommissionRate
		providerAmount := totalAmount - platformFee

		orderNumber, err := utils.GenerateUniqueOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderNumber:    orderNumber,
			UserID:         userID,
			ProviderID:     skill.ProviderID,
			SkillID:        skill.ID,
			Status:         models.OrderStatusPending,
			ScheduledDate:  scheduledDate,
			TotalAmount:    round2(totalAmount),
			PlatformFee:    round2(platformFee),
			ProviderAmount: round2(providerAmount),
			Message:        message,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Model(&models.Skill{}).Where("id = ?", skill.ID).
			UpdateColumn("orders_count", gorm.Expr("orders_count + 1")).Error
	})

	return order, err
}

// UpdateOrderStatus advances an order through its lifecycle. Only the
// requester or the provider may act on the order; the transition table on
// the model decides which moves are legal, except for admins, who may force
// any known status. Entering completed stamps completed_at with the current
// time, even when forced again.
func UpdateOrderStatus(orderID, actorID uuid.UUID, role string, newStatus models.OrderStatus) (models.Order, error) {
	var order models.Order

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.UserID != actorID && order.ProviderID != actorID && role != "admin" {
			return ErrNotOrderParticipant
		}

		if !models.ValidOrderStatus(newStatus) {
			return ErrInvalidTransition
		}
		if role != "admin" && !order.Status.CanTransitionTo(newStatus) {
			return ErrInvalidTransition
		}

		now := time.Now()
		order.Status = newStatus
		order.UpdatedAt = now
		if newStatus == models.OrderStatusCompleted {
			order.CompletedAt = &now
		}

		return tx.Save(&order).Error
	})

	return order, err
}

// ListOrders returns the page of orders in which the user appears as either
// requester or provider, most recent first.
func ListOrders(userID uuid.UUID, status *models.OrderStatus, page, pageSize int) ([]models.Order, int64, error) {
	query := database.DB.Model(&models.Order{}).
		Where("user_id = ? OR provider_id = ?", userID, userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.Session(&gorm.Session{}).
		Preload("Skill").Preload("User").Preload("Provider").
		Order("created_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func GetOrder(orderID uuid.UUID) (models.Order, error) {
	var order models.Order
	err := database.DB.
		Preload("Skill").Preload("User").Preload("Provider").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}
