package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is immutable once created. The unique index on OrderID enforces the
// one-review-per-order rule at the storage level.
type Review struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID `gorm:"not null;uniqueIndex" json:"order_id"`
	SkillID    uuid.UUID `gorm:"not null;index" json:"skill_id"`
	UserID     uuid.UUID `gorm:"not null" json:"user_id"`
	ProviderID uuid.UUID `gorm:"not null;index" json:"provider_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text;not null" json:"comment"`

	Order Order `gorm:"foreignkey:OrderID" json:"-"`
	Skill Skill `gorm:"foreignkey:SkillID" json:"-"`
	User  User  `gorm:"foreignkey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
