package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/skilllink/skilllink/database"
	"github.com/skilllink/skilllink/models"
)

func TestCreateOrder(t *testing.T) {
	setupTestDB(t)
	provider := createTestUser(t, "provider")
	user := createTestUser(t, "user")

	t.Run("Hourly skill yields 15 percent fee", func(t *testing.T) {
		skill := createTestSkill(t, provider, 80, 60)

		order, err := CreateOrder(user.ID, skill.ID, time.Now().Add(24*time.Hour), nil)
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		if order.TotalAmount != 80.00 {
			t.Errorf("Expected total_amount 80.00, got %.2f", order.TotalAmount)
		}
		if order.PlatformFee != 12.00 {
			t.Errorf("Expected platform_fee 12.00, got %.2f", order.PlatformFee)
		}
		if order.ProviderAmount != 68.00 {
			t.Errorf("Expected provider_amount 68.00, got %.2f", order.ProviderAmount)
		}
		if order.Status != models.OrderStatusPending {
			t.Errorf("Expected initial status pending, got %s", order.Status)
		}
		if order.ProviderID != provider.ID {
			t.Errorf("Expected provider_id %s, got %s", provider.ID, order.ProviderID)
		}
	})

	t.Run("Ninety minute skill scales the total", func(t *testing.T) {
		skill := createTestSkill(t, provider, 100, 90)

		order, err := CreateOrder(user.ID, skill.ID, time.Now().Add(24*time.Hour), nil)
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		if order.TotalAmount != 150.00 {
			t.Errorf("Expected total_amount 150.00, got %.2f", order.TotalAmount)
		}
		if order.PlatformFee != 22.50 {
			t.Errorf("Expected platform_fee 22.50, got %.2f", order.PlatformFee)
		}
		if order.ProviderAmount != 127.50 {
			t.Errorf("Expected provider_amount 127.50, got %.2f", order.ProviderAmount)
		}
	})

	t.Run("Order number has the expected shape", func(t *testing.T) {
		skill := createTestSkill(t, provider, 50, 60)

		order, err := CreateOrder(user.ID, skill.ID, time.Now().Add(24*time.Hour), nil)
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		matched, _ := regexp.MatchString(`^SK\d{20}$`, order.OrderNumber)
		if !matched {
			t.Errorf("Unexpected order number format: %s", order.OrderNumber)
		}
	})

	t.Run("Order counter is incremented", func(t *testing.T) {
		skill := createTestSkill(t, provider, 50, 60)

		for i := 0; i < 3; i++ {
			if _, err := CreateOrder(user.ID, skill.ID, time.Now().Add(24*time.Hour), nil); err != nil {
				t.Fatalf("CreateOrder failed: %v", err)
			}
		}

		if got := skillByID(t, skill.ID).OrdersCount; got != 3 {
			t.Errorf("Expected orders_count 3, got %d", got)
		}
	})

	t.Run("Unknown skill leaves nothing behind", func(t *testing.T) {
		var before int64
		database.DB.Model(&models.Order{}).Count(&before)

		_, err := CreateOrder(user.ID, uuid.New(), time.Now().Add(24*time.Hour), nil)
		if !errors.Is(err, ErrSkillNotFound) {
			t.Fatalf("Expected ErrSkillNotFound, got %v", err)
		}

		var after int64
		database.DB.Model(&models.Order{}).Count(&after)
		if after != before {
			t.Errorf("Expected no order to be persisted, count went from %d to %d", before, after)
		}
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	setupTestDB(t)
	provider := createTestUser(t, "provider")
	user := createTestUser(t, "user")
	admin := createTestUser(t, "admin")
	skill := createTestSkill(t, provider, 60, 60)

	t.Run("Lifecycle progresses through the allowed chain", func(t *testing.T) {
		order, err := CreateOrder(user.ID, skill.ID, time.Now().Add(24*time.Hour), nil)
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		chain := []models.OrderStatus{
			models.OrderStatusConfirmed,
			models.OrderStatusPaid,
			models.OrderStatusInProgress,
			models.OrderStatusCompleted,
		}
		for _, next := range chain {
			order, err = UpdateOrderStatus(order.ID, provider.ID, "provider", next)
			if err != nil {
				t.Fatalf("Transition to %s failed: %v", next, err)
			}
		}

		if order.CompletedAt == nil {
			t.Error("Expected completed_at to be set after completion")
		}
	})

	t.Run("Skipping ahead is rejected", func(t *testing.T) {
		order, err := CreateOrder(user.ID, skill.ID, time.Now().Add(24*time.Hour), nil)
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		_, err = UpdateOrderStatus(order.ID, user.ID, "user", models.OrderStatusCompleted)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("Admin may force any known status", func(t *testing.T) {
		order, err := CreateOrder(user.ID, skill.ID, time.Now().Add(24*time.Hour), nil)
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		forced, err := UpdateOrderStatus(order.ID, admin.ID, "admin", models.OrderStatusRefunded)
		if err != nil {
			t.Fatalf("Admin override failed: %v", err)
		}
		if forced.Status != models.OrderStatusRefunded {
			t.Errorf("Expected status refunded, got %s", forced.Status)
		}
	})

	t.Run("Strangers cannot touch the order", func(t *testing.T) {
		order, err := CreateOrder(user.ID, skill.ID, time.Now().Add(24*time.Hour), nil)
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}

		stranger := createTestUser(t, "user")
		_, err = UpdateOrderStatus(order.ID, stranger.ID, "user", models.OrderStatusConfirmed)
		if !errors.Is(err, ErrNotOrderParticipant) {
			t.Errorf("Expected ErrNotOrderParticipant, got %v", err)
		}
	})

	t.Run("Unknown order", func(t *testing.T) {
		_, err := UpdateOrderStatus(uuid.New(), user.ID, "user", models.OrderStatusConfirmed)
		if !errors.Is(err, ErrOrderNotFound) {
			t.Errorf("Expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestListOrders(t *testing.T) {
	setupTestDB(t)
	provider := createTestUser(t, "provider")
	alice := createTestUser(t, "user")
	bob := createTestUser(t, "user")
	skill := createTestSkill(t, provider, 40, 60)

	for i := 0; i < 3; i++ {
		if _, err := CreateOrder(alice.ID, skill.ID, time.Now().Add(24*time.Hour), nil); err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}
	}
	if _, err := CreateOrder(bob.ID, skill.ID, time.Now().Add(24*time.Hour), nil); err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	t.Run("Requester sees only their own orders", func(t *testing.T) {
		orders, total, err := ListOrders(alice.ID, nil, 1, 20)
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if total != 3 {
			t.Errorf("Expected total 3, got %d", total)
		}
		for _, o := range orders {
			if o.UserID != alice.ID && o.ProviderID != alice.ID {
				t.Errorf("Order %s does not belong to the user", o.ID)
			}
		}
	})

	t.Run("Provider sees orders from both sides", func(t *testing.T) {
		_, total, err := ListOrders(provider.ID, nil, 1, 20)
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if total != 4 {
			t.Errorf("Expected total 4, got %d", total)
		}
	})

	t.Run("Status filter applies", func(t *testing.T) {
		pending := models.OrderStatusPending
		_, total, err := ListOrders(bob.ID, &pending, 1, 20)
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if total != 1 {
			t.Errorf("Expected total 1, got %d", total)
		}

		completed := models.OrderStatusCompleted
		_, total, err = ListOrders(bob.ID, &completed, 1, 20)
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if total != 0 {
			t.Errorf("Expected total 0, got %d", total)
		}
	})

	t.Run("Pagination caps the page", func(t *testing.T) {
		orders, total, err := ListOrders(alice.ID, nil, 1, 2)
		if err != nil {
			t.Fatalf("ListOrders failed: %v", err)
		}
		if total != 3 {
			t.Errorf("Expected total 3, got %d", total)
		}
		if len(orders) != 2 {
			t.Errorf("Expected 2 orders on the first page, got %d", len(orders))
		}
	})
}
