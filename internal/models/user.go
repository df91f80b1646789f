// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account on the platform.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Comments             []Comment    `gorm:"foreignKey:UserID" json:"comments,omitempty"`
	FavoritedRestaurants []Restaurant `gorm:"many2many:favorites" json:"favorited_restaurants,omitempty"`
	LikedRestaurants     []Restaurant `gorm:"many2many:likes" json:"liked_restaurants,omitempty"`
	Followers            []User       `gorm:"many2many:followships;joinForeignKey:FollowingID;joinReferences:FollowerID" json:"followers,omitempty"`
	Followings           []User       `gorm:"many2many:followships;joinForeignKey:FollowerID;joinReferences:FollowingID" json:"followings,omitempty"`
}
