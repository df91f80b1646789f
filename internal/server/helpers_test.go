package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"forkful/internal/config"
	"forkful/internal/database"
	"forkful/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestServer wires a Server over an in-memory database with no redis
// and no uploader, matching the production constructor's wiring otherwise.
func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	cfg := &config.Config{
		Port:      "8480",
		Env:       "test",
		JWTSecret: "test_secret",
	}
	return New(cfg, db, nil, nil), db
}

// newTestApp registers the real route tree, auth middleware included.
func newTestApp(s *Server) *fiber.App {
	app := fiber.New()
	s.SetupRoutes(app)
	return app
}

// authHeader mints a real token so requests exercise the JWT middleware.
func authHeader(t *testing.T, s *Server, userID uint) string {
	t.Helper()
	token, err := s.generateToken(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func createUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "not-a-real-hash"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// createCredentialedUser stores a real bcrypt hash so login can verify it.
func createCredentialedUser(t *testing.T, db *gorm.DB, name, email, password string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{Name: name, Email: email, Password: string(hash)}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCategory(t *testing.T, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func createRestaurant(t *testing.T, db *gorm.DB, categoryID uint, name, description string) models.Restaurant {
	t.Helper()
	restaurant := models.Restaurant{
		Name:        name,
		Description: description,
		Address:     fmt.Sprintf("%s street 1", name),
		CategoryID:  categoryID,
	}
	require.NoError(t, db.Create(&restaurant).Error)
	return restaurant
}

func createComment(t *testing.T, db *gorm.DB, userID, restaurantID uint, text string) models.Comment {
	t.Helper()
	comment := models.Comment{Text: text, UserID: userID, RestaurantID: restaurantID}
	require.NoError(t, db.Create(&comment).Error)
	return comment
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
