package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/cominiti-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body), string(data))
	return body
}

// withUser installs a fixed identity in place of the auth middleware.
func withUser(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals("user_id", userID)
		}
		return c.Next()
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   map[string]any
	}{
		{"upgrade", &service.DeniedError{Reason: "Elite tier required", Upgrade: true}, 403, map[string]any{"error": "Elite tier required", "upgradeRequired": true}},
		{"credits", &service.DeniedError{Reason: "Insufficient credits", Details: map[string]any{"credits": 0, "required": 1}}, 403, map[string]any{"error": "Insufficient credits", "credits": float64(0), "required": float64(1)}},
		{"unauthenticated", service.ErrNotAuthenticated, 401, map[string]any{"error": "Not authenticated"}},
		{"invalid", fmt.Errorf("%w: Campaign title is required", service.ErrInvalidRequest), 400, map[string]any{"error": "Campaign title is required"}},
		{"not linked", service.ErrNotLinked, 400, map[string]any{"error": "Instagram not connected"}},
		{"not found", fmt.Errorf("%w: Profile not found", service.ErrNotFound), 404, map[string]any{"error": "Profile not found"}},
		{"bare not found", service.ErrNotFound, 404, map[string]any{"error": "not found"}},
		{"conflict", fmt.Errorf("%w: email already registered", service.ErrConflict), 409, map[string]any{"error": "email already registered"}},
		{"credentials", service.ErrInvalidCredentials, 401, map[string]any{"error": "Invalid email or password"}},
		{"failure", &service.FailedError{Message: "Invalid AI response format", Err: errors.New("unexpected token")}, 500, map[string]any{"error": "Invalid AI response format"}},
		{"internal", fmt.Errorf("decrypt token: %w", errors.New("cipher: message authentication failed")), 500, map[string]any{"error": "Internal server error"}},
		{"provider", fmt.Errorf("%w: instagram profile: token expired (status 400)", service.ErrProfileFetchFailed), 500, map[string]any{"error": "Internal server error"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return errorResponse(c, tt.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.body, decodeBody(t, resp))
		})
	}
}

func TestGetUserID(t *testing.T) {
	app := fiber.New()
	app.Get("/anon", func(c *fiber.Ctx) error { return c.SendString(GetUserID(c)) })
	app.Get("/user", withUser("u-1"), func(c *fiber.Ctx) error { return c.SendString(GetUserID(c)) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/anon", nil), -1)
	require.NoError(t, err)
	data, _ := io.ReadAll(resp.Body)
	assert.Empty(t, string(data))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/user", nil), -1)
	require.NoError(t, err)
	data, _ = io.ReadAll(resp.Body)
	assert.Equal(t, "u-1", string(data))
}
