package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill categories form a closed set; anything else is rejected at the API
// boundary.
const (
	CategorySports      = "sports"
	CategoryMusic       = "music"
	CategoryProgramming = "programming"
	CategoryLanguage    = "language"
	CategoryVolunteer   = "volunteer"
	CategoryArt         = "art"
	CategoryOther       = "other"
)

const (
	ServiceModeOnline  = "online"
	ServiceModeOffline = "offline"
	ServiceModeBoth    = "both"
)

type Skill struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProviderID      uuid.UUID `gorm:"not null;index" json:"provider_id"`
	Title           string    `gorm:"size:200;not null;index" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Category        string    `gorm:"size:20;not null;index" json:"category"`
	PricePerHour    float64   `gorm:"type:numeric(10,2);not null" json:"price_per_hour"`
	DurationMinutes int       `gorm:"not null;default:60" json:"duration_minutes"`
	ServiceMode     string    `gorm:"size:10;not null" json:"service_mode"`
	Location        *string   `gorm:"size:500" json:"location"`
	Tags            string    `gorm:"type:text" json:"-"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	ViewsCount      int       `gorm:"default:0" json:"views_count"`
	OrdersCount     int       `gorm:"default:0" json:"orders_count"`
	AverageRating   float64   `gorm:"default:0" json:"average_rating"`

	Provider User `gorm:"foreignkey:ProviderID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TagList splits the comma-joined tags column back into a slice for API
// responses. An empty column yields an empty slice, not [""].
func (s *Skill) TagList() []string {
	if s.Tags == "" {
		return []string{}
	}
	return strings.Split(s.Tags, ",")
}

func ValidCategory(category string) bool {
	switch category {
	case CategorySports, CategoryMusic, CategoryProgramming, CategoryLanguage, CategoryVolunteer, CategoryArt, CategoryOther:
		return true
	}
	return false
}

func ValidServiceMode(mode string) bool {
	switch mode {
	case ServiceModeOnline, ServiceModeOffline, ServiceModeBoth:
		return true
	}
	return false
}
