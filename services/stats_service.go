package services

import (
	"github.com/skilllink/skilllink/database"
	"github.com/skilllink/skilllink/models"
)

type PlatformStats struct {
	TotalUsers      int64   `json:"total_users"`
	TotalSkills     int64   `json:"total_skills"`
	TotalOrders     int64   `json:"total_orders"`
	TotalReviews    int64   `json:"total_reviews"`
	ActiveProviders int64   `json:"active_providers"`
	TotalRevenue    float64 `json:"total_revenue"`
}

// GetPlatformStats aggregates platform-wide totals. Revenue counts completed
// orders only.
func GetPlatformStats() (PlatformStats, error) {
	var stats PlatformStats

	if err := database.DB.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return stats, err
	}
	if err := database.DB.Model(&models.Skill{}).Count(&stats.TotalSkills).Error; err != nil {
		return stats, err
	}
	if err := database.DB.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return stats, err
	}
	if err := database.DB.Model(&models.Review{}).Count(&stats.TotalReviews).Error; err != nil {
		return stats, err
	}
	if err := database.DB.Model(&models.User{}).Where("role = ?", "provider").Count(&stats.ActiveProviders).Error; err != nil {
		return stats, err
	}

	var result struct {
		Revenue float64
	}
	err := database.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0) as revenue").
		Scan(&result).Error
	if err != nil {
		return stats, err
	}
	stats.TotalRevenue = round2(result.Revenue)

	return stats, nil
}

type CategoryCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// GetCategoryCounts returns the number of active skills per category.
func GetCategoryCounts() ([]CategoryCount, error) {
	var counts []CategoryCount
	err := database.DB.Model(&models.Skill{}).
		Where("is_active = ?", true).
		Select("category as label, COUNT(*) as count").
		Group("category").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
