package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email      string    `gorm:"size:255;not null;unique" json:"email"`
	Username   string    `gorm:"size:100;not null" json:"username"`
	Password   string    `gorm:"size:255;not null" json:"-"`
	Phone      *string   `gorm:"size:20" json:"phone"`
	Role       string    `gorm:"size:20;not null;default:'user'" json:"role"`
	Avatar     *string   `gorm:"size:500" json:"avatar"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	IsStudent  bool      `gorm:"default:false" json:"is_student"`
	University *string   `gorm:"size:200" json:"university"`
	Major      *string   `gorm:"size:200" json:"major"`

	CreatedAt time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
