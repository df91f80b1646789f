package models

import (
	"time"
)

// Restaurant represents a listed restaurant with its category and
// user-generated activity.
type Restaurant struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	CategoryID  uint      `gorm:"index" json:"category_id"`
	ViewCounts  uint      `gorm:"not null;default:0" json:"view_counts"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Category       Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Comments       []Comment `gorm:"foreignKey:RestaurantID" json:"comments,omitempty"`
	FavoritedUsers []User    `gorm:"many2many:favorites" json:"favorited_users,omitempty"`
	LikedUsers     []User    `gorm:"many2many:likes" json:"liked_users,omitempty"`
}

// Category groups restaurants by cuisine.
type Category struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"uniqueIndex;not null" json:"name"`
	Restaurants []Restaurant `gorm:"foreignKey:CategoryID" json:"restaurants,omitempty"`
}
