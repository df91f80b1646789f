package repository

import (
	"context"
	"errors"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// RelationRepository toggles the join-table relations: favorites, likes and
// followships. Creates run the existence check and the insert inside one
// transaction; the composite primary keys on the join tables are the hard
// guard against concurrent duplicates.
type RelationRepository interface {
	AddFavorite(ctx context.Context, userID, restaurantID uint) error
	RemoveFavorite(ctx context.Context, userID, restaurantID uint) error
	AddLike(ctx context.Context, userID, restaurantID uint) error
	RemoveLike(ctx context.Context, userID, restaurantID uint) error
	Follow(ctx context.Context, followerID, followingID uint) error
	Unfollow(ctx context.Context, followerID, followingID uint) error
}

type relationRepository struct {
	db *gorm.DB
}

// NewRelationRepository creates a new relation repository
func NewRelationRepository(db *gorm.DB) RelationRepository {
	return &relationRepository{db: db}
}

func (r *relationRepository) AddFavorite(ctx context.Context, userID, restaurantID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Favorite
		err := tx.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
			First(&existing).Error
		if err == nil {
			return ErrDuplicateRelation
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.Favorite{UserID: userID, RestaurantID: restaurantID}).Error
	})
}

func (r *relationRepository) RemoveFavorite(ctx context.Context, userID, restaurantID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRelationNotFound
	}
	return nil
}

func (r *relationRepository) AddLike(ctx context.Context, userID, restaurantID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		err := tx.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
			First(&existing).Error
		if err == nil {
			return ErrDuplicateRelation
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.Like{UserID: userID, RestaurantID: restaurantID}).Error
	})
}

func (r *relationRepository) RemoveLike(ctx context.Context, userID, restaurantID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRelationNotFound
	}
	return nil
}

func (r *relationRepository) Follow(ctx context.Context, followerID, followingID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Followship
		err := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			First(&existing).Error
		if err == nil {
			return ErrDuplicateRelation
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.Followship{FollowerID: followerID, FollowingID: followingID}).Error
	})
}

func (r *relationRepository) Unfollow(ctx context.Context, followerID, followingID uint) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Followship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRelationNotFound
	}
	return nil
}
