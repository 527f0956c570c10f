package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/skilllink/skilllink/database"
	"github.com/skilllink/skilllink/models"
	"gorm.io/gorm"
)

type SkillFilters struct {
	Keyword     string
	Category    string
	MinPrice    *float64
	MaxPrice    *float64
	ServiceMode string
	MinRating   *float64
}

// ListSkills returns the page of active skills matching the filters, best
// rated and most ordered first.
func ListSkills(filters SkillFilters, page, pageSize int) ([]models.Skill, int64, error) {
	query := database.DB.Model(&models.Skill{}).Where("is_active = ?", true)

	if filters.Keyword != "" {
		term := "%" + strings.ToLower(filters.Keyword) + "%"
		query = query.Where(
			"(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?)",
			term, term, term,
		)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.MinPrice != nil {
		query = query.Where("price_per_hour >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price_per_hour <= ?", *filters.MaxPrice)
	}
	if filters.ServiceMode != "" {
		query = query.Where(
			"(service_mode = ? OR service_mode = ?)",
			filters.ServiceMode, models.ServiceModeBoth,
		)
	}
	if filters.MinRating != nil {
		query = query.Where("average_rating >= ?", *filters.MinRating)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var skills []models.Skill
	err := query.Session(&gorm.Session{}).
		Preload("Provider").
		Order("average_rating desc, orders_count desc").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&skills).Error
	if err != nil {
		return nil, 0, err
	}

	return skills, total, nil
}

// GetSkillByID fetches a skill for a detail view and bumps its view counter.
// Every fetch counts, including repeats by the same caller.
func GetSkillByID(skillID uuid.UUID) (models.Skill, error) {
	var skill models.Skill
	err := database.DB.Preload("Provider").First(&skill, "id = ?", skillID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Skill{}, ErrSkillNotFound
		}
		return models.Skill{}, err
	}

	err = database.DB.Model(&models.Skill{}).Where("id = ?", skillID).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
	if err != nil {
		return models.Skill{}, err
	}
	skill.ViewsCount++

	return skill, nil
}

type SkillStats struct {
	SkillID       uuid.UUID `json:"skill_id"`
	ViewsCount    int       `json:"views_count"`
	OrdersCount   int       `json:"orders_count"`
	ReviewsCount  int64     `json:"reviews_count"`
	AverageRating float64   `json:"average_rating"`
}

// GetSkillStats reports a skill's counters and rating without touching the
// view counter.
func GetSkillStats(skillID uuid.UUID) (SkillStats, error) {
	var skill models.Skill
	err := database.DB.First(&skill, "id = ?", skillID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SkillStats{}, ErrSkillNotFound
		}
		return SkillStats{}, err
	}

	var reviewsCount int64
	err = database.DB.Model(&models.Review{}).
		Where("skill_id = ?", skillID).Count(&reviewsCount).Error
	if err != nil {
		return SkillStats{}, err
	}

	return SkillStats{
		SkillID:       skill.ID,
		ViewsCount:    skill.ViewsCount,
		OrdersCount:   skill.OrdersCount,
		ReviewsCount:  reviewsCount,
		AverageRating: skill.AverageRating,
	}, nil
}
