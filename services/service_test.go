package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/skilllink/skilllink/database"
	"github.com/skilllink/skilllink/models"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access underlying database: %v", err)
	}
	// A second pooled connection would see a fresh, empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.Skill{}, &models.Order{}, &models.Review{})
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	database.DB = db
}

var testUserSeq int

func createTestUser(t *testing.T, role string) models.User {
	t.Helper()

	testUserSeq++
	user := models.User{
		Email:    fmt.Sprintf("user%d@example.com", testUserSeq),
		Username: fmt.Sprintf("user%d", testUserSeq),
		Password: "not-a-real-hash",
		Role:     role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createTestSkill(t *testing.T, provider models.User, pricePerHour float64, durationMinutes int) models.Skill {
	t.Helper()

	skill := models.Skill{
		ProviderID:      provider.ID,
		Title:           "Guitar lessons",
		Description:     "One-on-one guitar lessons for beginners",
		Category:        models.CategoryMusic,
		PricePerHour:    pricePerHour,
		DurationMinutes: durationMinutes,
		ServiceMode:     models.ServiceModeOffline,
		IsActive:        true,
	}
	if err := database.DB.Create(&skill).Error; err != nil {
		t.Fatalf("Failed to create test skill: %v", err)
	}
	return skill
}

func createCompletedOrder(t *testing.T, user models.User, skill models.Skill) models.Order {
	t.Helper()

	order, err := CreateOrder(user.ID, skill.ID, time.Now().Add(24*time.Hour), nil)
	if err != nil {
		t.Fatalf("Failed to create test order: %v", err)
	}
	err = database.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusCompleted).Error
	if err != nil {
		t.Fatalf("Failed to complete test order: %v", err)
	}
	order.Status = models.OrderStatusCompleted
	return order
}

func skillByID(t *testing.T, id uuid.UUID) models.Skill {
	t.Helper()

	var skill models.Skill
	if err := database.DB.First(&skill, "id = ?", id).Error; err != nil {
		t.Fatalf("Failed to reload skill: %v", err)
	}
	return skill
}
