package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"forkful/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postComment(t *testing.T, app *fiber.App, auth string, restaurantID uint, text string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(map[string]interface{}{
		"restaurant_id": restaurantID,
		"text":          text,
	})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/comments", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateComment(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(s)

	alice := createUser(t, db, "alice", "alice@example.com")
	category := createCategory(t, db, "Italian cuisine")
	restaurant := createRestaurant(t, db, category.ID, "Trattoria", "pasta")
	auth := authHeader(t, s, alice.ID)

	resp := postComment(t, app, auth, restaurant.ID, "lovely carbonara")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "lovely carbonara", body["text"])

	var stored models.Comment
	require.NoError(t, db.First(&stored).Error)
	assert.Equal(t, alice.ID, stored.UserID)
	assert.Equal(t, restaurant.ID, stored.RestaurantID)
}

func TestCreateCommentBlankText(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(s)

	alice := createUser(t, db, "alice", "alice@example.com")
	category := createCategory(t, db, "Italian cuisine")
	restaurant := createRestaurant(t, db, category.ID, "Trattoria", "pasta")
	auth := authHeader(t, s, alice.ID)

	for _, text := range []string{"", "   ", "\t\n"} {
		resp := postComment(t, app, auth, restaurant.ID, text)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	}
	assert.Zero(t, countRows(t, db, &models.Comment{}))
}

func TestCreateCommentUnknownRestaurant(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(s)

	alice := createUser(t, db, "alice", "alice@example.com")
	auth := authHeader(t, s, alice.ID)

	resp := postComment(t, app, auth, 999, "ghost review")
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Zero(t, countRows(t, db, &models.Comment{}))
}

func TestCreateCommentRequiresAuth(t *testing.T) {
	s, _ := newTestServer(t)
	app := newTestApp(s)

	req := httptest.NewRequest(http.MethodPost, "/api/comments",
		bytes.NewReader([]byte(`{"restaurant_id":1,"text":"hi"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDeleteComment(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(s)

	alice := createUser(t, db, "alice", "alice@example.com")
	category := createCategory(t, db, "Italian cuisine")
	restaurant := createRestaurant(t, db, category.ID, "Trattoria", "pasta")
	comment := createComment(t, db, alice.ID, restaurant.ID, "lovely")

	resp := doAuthed(t, app, http.MethodDelete,
		fmt.Sprintf("/api/comments/%d", comment.ID), authHeader(t, s, alice.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Comment deleted successfully.", body["message"])
	assert.Equal(t, float64(restaurant.ID), body["restaurant_id"])

	assert.Zero(t, countRows(t, db, &models.Comment{}))
}

func TestDeleteCommentOnlyAuthor(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(s)

	alice := createUser(t, db, "alice", "alice@example.com")
	bob := createUser(t, db, "bob", "bob@example.com")
	category := createCategory(t, db, "Italian cuisine")
	restaurant := createRestaurant(t, db, category.ID, "Trattoria", "pasta")
	comment := createComment(t, db, alice.ID, restaurant.ID, "lovely")

	resp := doAuthed(t, app, http.MethodDelete,
		fmt.Sprintf("/api/comments/%d", comment.ID), authHeader(t, s, bob.ID))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, int64(1), countRows(t, db, &models.Comment{}))
}

func TestDeleteMissingComment(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(s)

	alice := createUser(t, db, "alice", "alice@example.com")
	category := createCategory(t, db, "Italian cuisine")
	restaurant := createRestaurant(t, db, category.ID, "Trattoria", "pasta")
	createComment(t, db, alice.ID, restaurant.ID, "survivor")

	resp := doAuthed(t, app, http.MethodDelete, "/api/comments/999", authHeader(t, s, alice.ID))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	// Unrelated rows are untouched.
	assert.Equal(t, int64(1), countRows(t, db, &models.Comment{}))
}
