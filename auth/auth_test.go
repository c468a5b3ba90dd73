package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		password string
		token    string
		want     int
	}{
		{name: "matching token", password: "secret", token: "secret", want: fiber.StatusOK},
		{name: "wrong token", password: "secret", token: "nope", want: fiber.StatusUnauthorized},
		{name: "missing token", password: "secret", token: "", want: fiber.StatusUnauthorized},
		{name: "default password", password: "", token: DefaultPassword, want: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw, err := Middleware(tt.password)
			require.NoError(t, err)

			app := fiber.New()
			app.Get("/", mw, func(c *fiber.Ctx) error { return c.SendString("ok") })

			req := httptest.NewRequest("GET", "/", nil)
			if tt.token != "" {
				req.Header.Set(TokenHeader, tt.token)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
