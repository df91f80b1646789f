package seed

import (
	"context"
	"testing"

	"forkful/internal/database"
	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestFixturesIdempotent(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	ctx := context.Background()

	require.NoError(t, s.Fixtures(ctx))
	require.NoError(t, s.Fixtures(ctx))

	var userCount, categoryCount, restaurantCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Category{}).Count(&categoryCount).Error)
	require.NoError(t, db.Model(&models.Restaurant{}).Count(&restaurantCount).Error)

	assert.Equal(t, int64(3), userCount)
	assert.Equal(t, int64(6), categoryCount)
	assert.Equal(t, int64(50), restaurantCount)
}

func TestCommentsRequiresUsers(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	ctx := context.Background()

	err := s.Comments(ctx, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "users")

	var count int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCommentsRequiresRestaurants(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.User{
		Name: "alice", Email: "alice@example.com", Password: "hash",
	}).Error)

	err := s.Comments(ctx, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "restaurants")
}

func TestCommentsSkipsRootAndTruncates(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	ctx := context.Background()

	require.NoError(t, s.Fixtures(ctx))
	require.NoError(t, s.Comments(ctx, 15))

	var comments []models.Comment
	require.NoError(t, db.Find(&comments).Error)
	require.Len(t, comments, 15)

	var root models.User
	require.NoError(t, db.Where("email = ?", RootEmail).First(&root).Error)

	for _, c := range comments {
		assert.NotEqual(t, root.ID, c.UserID)
		assert.NotEmpty(t, c.Text)
		assert.LessOrEqual(t, len([]rune(c.Text)), commentTextLimit)
		assert.NotZero(t, c.RestaurantID)
	}
}

func TestRevertDeletesOnlyComments(t *testing.T) {
	db := setupTestDB(t)
	s := New(db)
	ctx := context.Background()

	require.NoError(t, s.Fixtures(ctx))
	require.NoError(t, s.Comments(ctx, 10))

	require.NoError(t, s.Revert(ctx))

	var commentCount, userCount, restaurantCount int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Restaurant{}).Count(&restaurantCount).Error)

	assert.Zero(t, commentCount)
	assert.Equal(t, int64(3), userCount)
	assert.Equal(t, int64(50), restaurantCount)
}
