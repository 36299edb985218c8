package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/brainwave-labs/quest_api/shared"
)

type stubVerifier struct {
	userID string
	err    error
}

func (s stubVerifier) VerifyJWTToken(string) (string, error) {
	return s.userID, s.err
}

type stubRoles map[string]string

func (s stubRoles) GetUserRole(userID string) (string, error) {
	role, ok := s[userID]
	if !ok {
		return "", errors.New("no such user")
	}
	return role, nil
}

func testApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := shared.GetAppError(err); ok {
				return c.SendStatus(appErr.StatusCode)
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
	})

	chain := append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(shared.UserID).(string))
	})
	app.Get("/", chain...)
	return app
}

func TestRequiredAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		verifier   stubVerifier
		wantStatus int
	}{
		{"valid token", "Bearer good", stubVerifier{userID: "user-1"}, http.StatusOK},
		{"missing header", "", stubVerifier{userID: "user-1"}, http.StatusUnauthorized},
		{"not bearer", "Basic abc", stubVerifier{userID: "user-1"}, http.StatusUnauthorized},
		{"rejected token", "Bearer bad", stubVerifier{err: errors.New("expired")}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(RequiredAuth(tt.verifier))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("want status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	roles := stubRoles{"admin-1": "admin", "user-1": "user"}

	tests := []struct {
		name       string
		userID     string
		wantStatus int
	}{
		{"admin allowed", "admin-1", http.StatusOK},
		{"plain user forbidden", "user-1", http.StatusForbidden},
		{"unknown user forbidden", "ghost", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testApp(
				RequiredAuth(stubVerifier{userID: tt.userID}),
				RequireRole(roles, "admin"),
			)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer token")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("want status %d, got %d", tt.wantStatus, resp.StatusCode)
			}
		})
	}
}
