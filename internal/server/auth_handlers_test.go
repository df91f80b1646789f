package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func postJSON(t *testing.T, path string, body interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSignup(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(s)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"name":          "alice",
				"email":         "alice@example.com",
				"password":      "12345678",
				"passwordCheck": "12345678",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Password Mismatch",
			body: map[string]string{
				"name":          "bob",
				"email":         "bob@example.com",
				"password":      "12345678",
				"passwordCheck": "different",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"email": "carol@example.com",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{
				"name":          "alice again",
				"email":         "alice@example.com",
				"password":      "12345678",
				"passwordCheck": "12345678",
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(postJSON(t, "/api/auth/signup", tt.body), -1)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}

	// Only the successful signup touched the table.
	assert.Equal(t, int64(1), countRows(t, db, &models.User{}))

	var alice models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&alice).Error)
	assert.NotEqual(t, "12345678", alice.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(alice.Password), []byte("12345678")))
}

func TestSignupMismatchWritesNothing(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(s)

	resp, err := app.Test(postJSON(t, "/api/auth/signup", map[string]string{
		"name":          "dave",
		"email":         "dave@example.com",
		"password":      "12345678",
		"passwordCheck": "87654321",
	}), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, countRows(t, db, &models.User{}))
}

func TestLogin(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(s)

	createCredentialedUser(t, db, "alice", "alice@example.com", "12345678")

	t.Run("Success", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "12345678",
		}), -1)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Logged in successfully!", body["message"])
		assert.NotEmpty(t, body["token"])
	})

	t.Run("Wrong Password", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "wrong",
		}), -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "12345678",
		}), -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestLoginTokenAuthorizesProtectedRoutes(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(s)

	user := createCredentialedUser(t, db, "alice", "alice@example.com", "12345678")
	category := createCategory(t, db, "Japanese cuisine")
	restaurant := createRestaurant(t, db, category.ID, "Sushi Ya", "omakase")

	resp, err := app.Test(postJSON(t, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "12345678",
	}), -1)
	require.NoError(t, err)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	req := httptest.NewRequest(http.MethodPost, "/api/favorites/1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var favorite models.Favorite
	require.NoError(t, db.Where("user_id = ? AND restaurant_id = ?", user.ID, restaurant.ID).
		First(&favorite).Error)
}

func TestLogout(t *testing.T) {
	s, db := newTestServer(t)
	app := newTestApp(s)

	user := createUser(t, db, "alice", "alice@example.com")

	t.Run("Authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		req.Header.Set("Authorization", authHeader(t, s, user.ID))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Logged out successfully!", body["message"])
	})

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
