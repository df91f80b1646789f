package models

import (
	"time"
)

// Comment is a user's review text on a restaurant.
type Comment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Text         string    `gorm:"not null" json:"text"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	RestaurantID uint      `gorm:"not null;index" json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Restaurant Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
}
