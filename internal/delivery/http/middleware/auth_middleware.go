package middleware

import (
	"context"
	"errors"
	"strings"

	"skill-swap/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

// Locals keys set on authenticated requests.
const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
)

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthMiddleware accepts bearer tokens issued by the identity provider. The token
// subject becomes the caller's user id.
type AuthMiddleware struct {
	tokens  jwt.Service
	revoked RevocationChecker
}

// NewAuthMiddleware accepts a nil revoked checker, which disables revocation.
func NewAuthMiddleware(tokens jwt.Service, revoked RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, revoked: revoked}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, err := m.authenticate(c)
		if err != nil {
			return err
		}

		c.Locals(CtxUserIDKey, claims.UserID())
		c.Locals(CtxEmailKey, claims.Email)
		return c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c fiber.Ctx) (jwt.Claims, error) {
	raw, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return jwt.Claims{}, unauthorized("Unauthorized", nil)
	}

	claims, err := m.tokens.ValidateToken(raw)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return jwt.Claims{}, unauthorized("Token expired", err)
	case err != nil:
		return jwt.Claims{}, unauthorized("Invalid token", err)
	}

	if m.revoked == nil || claims.ID == "" {
		return claims, nil
	}
	// lookup errors fail open
	if revoked, _ := m.revoked.IsRevoked(c.Context(), claims.ID); revoked {
		return jwt.Claims{}, unauthorized("Token revoked", nil)
	}
	return claims, nil
}

func unauthorized(msg string, cause error) *AppError {
	return NewAppError(fiber.StatusUnauthorized, msg, nil, cause)
}

// UserID returns the authenticated subject set by AuthMiddleware.
func UserID(c fiber.Ctx) (string, bool) {
	v, _ := c.Locals(CtxUserIDKey).(string)
	return v, strings.TrimSpace(v) != ""
}

func bearerTokenFromHeader(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
