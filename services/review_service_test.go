package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/skilllink/skilllink/database"
	"github.com/skilllink/skilllink/models"
)

func TestCreateReview(t *testing.T) {
	setupTestDB(t)
	provider := createTestUser(t, "provider")
	user := createTestUser(t, "user")

	t.Run("Ratings are averaged and rounded to one decimal", func(t *testing.T) {
		skill := createTestSkill(t, provider, 50, 60)

		for _, rating := range []int{5, 4, 5} {
			order := createCompletedOrder(t, user, skill)
			if _, err := CreateReview(user.ID, order.ID, rating, "Great session, learned a lot"); err != nil {
				t.Fatalf("CreateReview failed: %v", err)
			}
		}

		if got := skillByID(t, skill.ID).AverageRating; got != 4.7 {
			t.Errorf("Expected average_rating 4.7, got %.1f", got)
		}
	})

	t.Run("Skill without reviews keeps rating zero", func(t *testing.T) {
		skill := createTestSkill(t, provider, 50, 60)

		if got := skillByID(t, skill.ID).AverageRating; got != 0.0 {
			t.Errorf("Expected average_rating 0.0, got %.1f", got)
		}
	})

	t.Run("Second review for the same order is rejected", func(t *testing.T) {
		skill := createTestSkill(t, provider, 50, 60)
		order := createCompletedOrder(t, user, skill)

		first, err := CreateReview(user.ID, order.ID, 5, "Really enjoyed this class")
		if err != nil {
			t.Fatalf("CreateReview failed: %v", err)
		}

		_, err = CreateReview(user.ID, order.ID, 1, "Changed my mind about it")
		if !errors.Is(err, ErrAlreadyReviewed) {
			t.Fatalf("Expected ErrAlreadyReviewed, got %v", err)
		}

		var stored models.Review
		if err := database.DB.First(&stored, "order_id = ?", order.ID).Error; err != nil {
			t.Fatalf("Failed to reload review: %v", err)
		}
		if stored.ID != first.ID || stored.Rating != 5 {
			t.Error("Expected the first review to remain unchanged")
		}
	})

	t.Run("Order must be completed", func(t *testing.T) {
		skill := createTestSkill(t, provider, 50, 60)
		order, err := CreateOrder(user.ID, skill.ID, time.Now().Add(24*time.Hour), nil)
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		_, err = CreateReview(user.ID, order.ID, 4, "Trying to review too early")
		if !errors.Is(err, ErrOrderNotCompleted) {
			t.Errorf("Expected ErrOrderNotCompleted, got %v", err)
		}
	})

	t.Run("Only the requester may review", func(t *testing.T) {
		skill := createTestSkill(t, provider, 50, 60)
		order := createCompletedOrder(t, user, skill)
		stranger := createTestUser(t, "user")

		_, err := CreateReview(stranger.ID, order.ID, 4, "This was not my order")
		if !errors.Is(err, ErrNotOrderRequester) {
			t.Errorf("Expected ErrNotOrderRequester, got %v", err)
		}
	})

	t.Run("Unknown order", func(t *testing.T) {
		_, err := CreateReview(user.ID, uuid.New(), 4, "Reviewing a ghost order")
		if !errors.Is(err, ErrOrderNotFound) {
			t.Errorf("Expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestReviewExistsForOrder(t *testing.T) {
	setupTestDB(t)
	provider := createTestUser(t, "provider")
	user := createTestUser(t, "user")
	skill := createTestSkill(t, provider, 50, 60)
	order := createCompletedOrder(t, user, skill)

	exists, err := ReviewExistsForOrder(order.ID)
	if err != nil {
		t.Fatalf("ReviewExistsForOrder failed: %v", err)
	}
	if exists {
		t.Error("Expected no review yet")
	}

	if _, err := CreateReview(user.ID, order.ID, 3, "It was fine, nothing special"); err != nil {
		t.Fatalf("CreateReview failed: %v", err)
	}

	exists, err = ReviewExistsForOrder(order.ID)
	if err != nil {
		t.Fatalf("ReviewExistsForOrder failed: %v", err)
	}
	if !exists {
		t.Error("Expected review to exist")
	}
}

func TestListSkillReviews(t *testing.T) {
	setupTestDB(t)
	provider := createTestUser(t, "provider")
	user := createTestUser(t, "user")
	skill := createTestSkill(t, provider, 50, 60)

	for i, rating := range []int{5, 4, 3} {
		order := createCompletedOrder(t, user, skill)
		if _, err := CreateReview(user.ID, order.ID, rating, "Detailed feedback for the class"); err != nil {
			t.Fatalf("CreateReview %d failed: %v", i, err)
		}
	}

	reviews, total, err := ListSkillReviews(skill.ID, 1, 2)
	if err != nil {
		t.Fatalf("ListSkillReviews failed: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	if len(reviews) != 2 {
		t.Errorf("Expected 2 reviews on the first page, got %d", len(reviews))
	}
	for _, r := range reviews {
		if r.User.Username == "" {
			t.Error("Expected review author to be preloaded")
		}
	}
}
