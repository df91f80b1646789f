package models

import (
	"time"
)

// Favorite is the join row between a user and a favorited restaurant.
// The composite primary key makes duplicate rows impossible at the
// storage layer; the handler-level existence check is only an early exit.
type Favorite struct {
	UserID       uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RestaurantID uint      `gorm:"primaryKey;autoIncrement:false" json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Favorite) TableName() string {
	return "favorites"
}

// Like is the join row between a user and a liked restaurant.
type Like struct {
	UserID       uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	RestaurantID uint      `gorm:"primaryKey;autoIncrement:false" json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "likes"
}

// Followship is the self-referential join row between a follower and the
// user being followed.
type Followship struct {
	FollowerID  uint      `gorm:"primaryKey;autoIncrement:false" json:"follower_id"`
	FollowingID uint      `gorm:"primaryKey;autoIncrement:false" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Followship) TableName() string {
	return "followships"
}
