package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/franchisedesk/ledger-api/internal/application/dto"
	"github.com/franchisedesk/ledger-api/pkg/jwt"
)

// Locals keys set by the auth middleware.
const (
	LocalUserID      = "user_id"
	LocalFranchiseID = "franchise_id"
	LocalRole        = "role"
)

// AuthMiddleware validates the Bearer JWT and loads UserID, FranchiseID and
// Role into c.Locals. The engine never reads ambient session state: every
// handler passes the franchise ID explicitly into the use cases.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header required"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "empty token"})
		}
		userID, franchiseID, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "invalid or expired token"})
		}
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token has no role claim"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalFranchiseID, franchiseID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole authorizes access to one of the allowed roles. Must run
// after AuthMiddleware.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "role not allowed"})
	}
}

// GetUserID returns the UserID from the context (after auth middleware).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetFranchiseID returns the FranchiseID from the context.
func GetFranchiseID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalFranchiseID).(string)
	return s
}

// GetRole returns the Role from the context.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
