// Package session implements cookie-held authenticated sessions.
//
// A session is an HS256-signed JWT carried in an HttpOnly cookie. Logout
// revokes the token's jti in Redis for the remainder of its lifetime; without
// Redis the cookie expiry alone bounds the session.
package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName is the session cookie set on login and registration.
	CookieName = "inkwell_session"

	issuer   = "inkwell-api"
	audience = "inkwell-web"
	lifetime = 7 * 24 * time.Hour

	blacklistPrefix = "session:revoked:"
)

// Manager issues, validates and revokes session tokens.
type Manager struct {
	secret []byte
	redis  *redis.Client
}

// NewManager creates a session manager. rdb may be nil; revocation then
// degrades to cookie expiry.
func NewManager(secret string, rdb *redis.Client) *Manager {
	return &Manager{secret: []byte(secret), redis: rdb}
}

// IssueToken signs a session token for the given user.
func (m *Manager) IssueToken(userID uint) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("session secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(lifetime).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses a session token and returns the authenticated user ID.
// Revoked, expired, tampered or foreign tokens all fail.
func (m *Manager) Validate(ctx context.Context, tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid session claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, fmt.Errorf("invalid subject claim")
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID in session")
	}

	if jti, ok := claims["jti"].(string); ok && jti != "" && m.redis != nil {
		revoked, err := m.redis.Exists(ctx, blacklistPrefix+jti).Result()
		if err == nil && revoked > 0 {
			return 0, fmt.Errorf("session has been revoked")
		}
	}

	return uint(userID), nil
}

// Revoke blacklists the token's jti for the remainder of its lifetime.
// Unparseable tokens are ignored; there is nothing to revoke.
func (m *Manager) Revoke(ctx context.Context, tokenString string) error {
	if m.redis == nil {
		return nil
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return nil
	}

	ttl := lifetime
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}

	return m.redis.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// SetCookie attaches the session token to the response.
func (m *Manager) SetCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(lifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (m *Manager) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
