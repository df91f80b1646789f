package repository

import (
	"context"

	"forkful/internal/models"

	"gorm.io/gorm"
)

// RestaurantRepository defines the interface for restaurant data operations
type RestaurantRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Restaurant, error)
	GetWithCategory(ctx context.Context, id uint) (*models.Restaurant, error)
	GetDetail(ctx context.Context, id uint) (*models.Restaurant, error)
	ListPage(ctx context.Context, categoryID uint, limit, offset int) ([]models.Restaurant, int64, error)
	ListNewest(ctx context.Context, limit int) ([]models.Restaurant, error)
	ListWithFavoriters(ctx context.Context) ([]models.Restaurant, error)
	IncrementViewCounts(ctx context.Context, id uint) error
}

type restaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a new restaurant repository
func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).First(&restaurant, id).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) GetWithCategory(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Category").
		First(&restaurant, id).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetDetail eager-loads everything the detail view renders: category,
// comments with their authors (most recently updated first), and the full
// favoriting/liking user sets.
func (r *restaurantRepository) GetDetail(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.updated_at DESC")
		}).
		Preload("Comments.User").
		Preload("FavoritedUsers").
		Preload("LikedUsers").
		First(&restaurant, id).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// ListPage returns one page of restaurants plus the total count for the same
// filter, so the handler can build the pagination view-model.
func (r *restaurantRepository) ListPage(ctx context.Context, categoryID uint, limit, offset int) ([]models.Restaurant, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Restaurant{})
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var restaurants []models.Restaurant
	err := query.
		Preload("Category").
		Limit(limit).
		Offset(offset).
		Find(&restaurants).Error
	return restaurants, total, err
}

func (r *restaurantRepository) ListNewest(ctx context.Context, limit int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("created_at DESC").
		Limit(limit).
		Find(&restaurants).Error
	return restaurants, err
}

func (r *restaurantRepository) ListWithFavoriters(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Preload("FavoritedUsers").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *restaurantRepository) IncrementViewCounts(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Where("id = ?", id).
		UpdateColumn("view_counts", gorm.Expr("view_counts + ?", 1)).Error
}
