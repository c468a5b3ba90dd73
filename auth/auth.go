// server/auth/auth.go
package auth

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenHeader     = "X-Notes-Token"
	DefaultPassword = "dev"
)

// Middleware rejects requests whose token header does not match
// password. Only the bcrypt hash of the password is kept.
func Middleware(password string) (fiber.Handler, error) {
	if password == "" {
		password = DefaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return func(c *fiber.Ctx) error {
		token := c.Get(TokenHeader)
		if token == "" || bcrypt.CompareHashAndPassword(hash, []byte(token)) != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
		return c.Next()
	}, nil
}
