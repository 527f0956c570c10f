package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusRefunded   OrderStatus = "refunded"
)

// orderTransitions is the single source of truth for the order lifecycle.
// cancelled and refunded are terminal; refunded stays reachable from
// completed so post-completion disputes can be settled.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusInProgress, OrderStatusRefunded},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusRefunded},
	OrderStatusCompleted:  {OrderStatusRefunded},
	OrderStatusCancelled:  {},
	OrderStatusRefunded:   {},
}

func ValidOrderStatus(status OrderStatus) bool {
	_, ok := orderTransitions[status]
	return ok
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// Admin overrides are decided by the caller, not here.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	OrderNumber string      `gorm:"size:50;not null;uniqueIndex" json:"order_number"`
	UserID      uuid.UUID   `gorm:"not null;index" json:"user_id"`
	ProviderID  uuid.UUID   `gorm:"not null;index" json:"provider_id"`
	SkillID     uuid.UUID   `gorm:"not null;index" json:"skill_id"`
	Status      OrderStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`

	ScheduledDate time.Time `gorm:"not null" json:"scheduled_date"`

	TotalAmount    float64 `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	PlatformFee    float64 `gorm:"type:numeric(10,2);not null" json:"platform_fee"`
	ProviderAmount float64 `gorm:"type:numeric(10,2);not null" json:"provider_amount"`

	Message *string `gorm:"type:text" json:"message"`

	User     User  `gorm:"foreignkey:UserID" json:"-"`
	Provider User  `gorm:"foreignkey:ProviderID" json:"-"`
	Skill    Skill `gorm:"foreignkey:SkillID" json:"-"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
