package services

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/skilllink/skilllink/database"
	"github.com/skilllink/skilllink/models"
	"gorm.io/gorm"
)

// CreateReview records a review for a completed order and refreshes the
// skill's average rating inside the same transaction. An order can be
// reviewed exactly once, only by the user who placed it.
func CreateReview(userID, orderID uuid.UUID, rating int, comment string) (models.Review, error) {
	var review models.Review

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.UserID != userID {
			return ErrNotOrderRequester
		}
		if order.Status != models.OrderStatusCompleted {
			return ErrOrderNotCompleted
		}

		var existing models.Review
		err := tx.Where("order_id = ?", orderID).First(&existing).Error
		if err == nil {
			return ErrAlreadyReviewed
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		review = models.Review{
			OrderID:    order.ID,
			SkillID:    order.SkillID,
			UserID:     userID,
			ProviderID: order.ProviderID,
			Rating:     rating,
			Comment:    comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			// The unique index on order_id catches the race two concurrent
			// submissions for the same order would otherwise win together.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyReviewed
			}
			return err
		}

		return recomputeSkillRating(tx, order.SkillID)
	})

	return review, err
}

// recomputeSkillRating sets the skill's denormalized average_rating to the
// mean over every review referencing it, rounded to one decimal, or 0.0 when
// no reviews exist.
func recomputeSkillRating(tx *gorm.DB, skillID uuid.UUID) error {
	var result struct {
		Avg float64
	}
	err := tx.Model(&models.Review{}).
		Where("skill_id = ?", skillID).
		Select("COALESCE(AVG(rating), 0) as avg").
		Scan(&result).Error
	if err != nil {
		return err
	}

	rounded := math.Round(result.Avg*10) / 10
	return tx.Model(&models.Skill{}).Where("id = ?", skillID).
		UpdateColumn("average_rating", rounded).Error
}

func ReviewExistsForOrder(orderID uuid.UUID) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Review{}).
		Where("order_id = ?", orderID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListSkillReviews returns the page of reviews for a skill, most recent
// first.
func ListSkillReviews(skillID uuid.UUID, page, pageSize int) ([]models.Review, int64, error) {
	query := database.DB.Model(&models.Review{}).Where("skill_id = ?", skillID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Session(&gorm.Session{}).
		Preload("User").
		Order("created_at desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
