package database

import (
	"forkful/internal/models"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Restaurant{},
		&models.Comment{},
		&models.Favorite{},
		&models.Like{},
		&models.Followship{},
	}
}

// Migrate registers the explicit join-table models for the many-to-many
// associations and runs AutoMigrate over the full model set. The join-table
// registration must happen before migration so favorites/likes/followships
// get composite primary keys instead of GORM's implicit join schema.
func Migrate(db *gorm.DB) error {
	if err := setupJoinTables(db); err != nil {
		return err
	}
	return db.AutoMigrate(PersistentModels()...)
}

func setupJoinTables(db *gorm.DB) error {
	joins := []struct {
		model interface{}
		field string
		join  interface{}
	}{
		{&models.User{}, "FavoritedRestaurants", &models.Favorite{}},
		{&models.Restaurant{}, "FavoritedUsers", &models.Favorite{}},
		{&models.User{}, "LikedRestaurants", &models.Like{}},
		{&models.Restaurant{}, "LikedUsers", &models.Like{}},
		{&models.User{}, "Followings", &models.Followship{}},
		{&models.User{}, "Followers", &models.Followship{}},
	}

	for _, j := range joins {
		if err := db.SetupJoinTable(j.model, j.field, j.join); err != nil {
			return err
		}
	}
	return nil
}
