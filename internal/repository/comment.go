package repository

import (
	"context"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Delete(ctx context.Context, id uint) (*models.Comment, error)
	ListNewest(ctx context.Context, limit int) ([]models.Comment, error)
	ListCommentedRestaurants(ctx context.Context, userID uint) ([]models.CommentedRestaurant, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment and returns the deleted row, so the handler can
// point the caller back at the comment's restaurant.
func (r *commentRepository) Delete(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, id).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListNewest(ctx context.Context, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Restaurant").
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

// ListCommentedRestaurants returns one row per distinct restaurant the user
// has commented on, reduced to the restaurant's id and image.
func (r *commentRepository) ListCommentedRestaurants(ctx context.Context, userID uint) ([]models.CommentedRestaurant, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("restaurant_id", &ids).Error
	if err != nil {
		return nil, err
	}

	result := make([]models.CommentedRestaurant, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var restaurants []models.Restaurant
	err = r.db.WithContext(ctx).
		Select("id", "image").
		Find(&restaurants, ids).Error
	if err != nil {
		return nil, err
	}

	for _, restaurant := range restaurants {
		result = append(result, models.CommentedRestaurant{
			RestaurantID: restaurant.ID,
			Image:        restaurant.Image,
		})
	}
	return result, nil
}
