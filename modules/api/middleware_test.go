package api

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	domain "github.com/example/taskboard-demo/domain/user"
	"github.com/gofiber/fiber/v2"
)

// stubAuthPort validates exactly one token and rejects everything else.
type stubAuthPort struct {
	token  string
	claims *domain.Claims
}

func (s *stubAuthPort) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	if token == s.token {
		return s.claims, nil
	}
	return nil, errors.New("token validation failed")
}

func (s *stubAuthPort) GetUser(_ context.Context, _ string) (*domain.User, error) {
	return nil, errors.New("not implemented")
}

func setupMiddlewareApp() *fiber.App {
	port := &stubAuthPort{
		token:  "valid-token",
		claims: &domain.Claims{UserID: "user-1", Email: "alice@example.com"},
	}

	app := fiber.New()
	app.Use(RequireUser(port))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		userID, ok := CurrentUserID(c)
		if !ok {
			return unauthorized(c)
		}
		return c.SendString(userID)
	})
	return app
}

func TestRequireUser(t *testing.T) {
	app := setupMiddlewareApp()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: fiber.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: fiber.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
		{
			name:       "empty bearer token",
			authHeader: "Bearer ",
			wantStatus: fiber.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bogus-token",
			wantStatus: fiber.StatusUnauthorized,
			wantBody:   `{"error":"Unauthorized"}`,
		},
		{
			name:       "valid token",
			authHeader: "Bearer valid-token",
			wantStatus: fiber.StatusOK,
			wantBody:   "user-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, resp.StatusCode)
			}

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if string(body) != tt.wantBody {
				t.Errorf("expected body %q, got %q", tt.wantBody, string(body))
			}
		})
	}
}

func TestCurrentUserID_NoIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if _, ok := CurrentUserID(c); ok {
			t.Error("expected no identity without RequireUser")
		}
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	resp.Body.Close()
}
