package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hyolog/core/internal/models"
	"github.com/hyolog/core/internal/pkg/response"
	"gorm.io/gorm"
)

const contextKeyUser = "current_user"

// TokenTTL is the lifetime of issued bearer tokens.
const TokenTTL = 24 * time.Hour

var errInvalidToken = errors.New("invalid token")

// Auth returns a middleware that enforces bearer-token authentication and
// resolves the caller into a user record on the context.
func Auth(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(db, secret, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Auth.
func CurrentUser(c *gin.Context) (*models.UserModel, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.UserModel)
	return user, ok
}

// IsAuthenticated reports whether the request carries a valid identity.
func IsAuthenticated(c *gin.Context) bool {
	_, ok := CurrentUser(c)
	return ok
}

// IssueToken signs a bearer token for the given user id.
func IssueToken(secret, userID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func resolveUser(db *gorm.DB, secret, rawToken string) (*models.UserModel, error) {
	if rawToken == "" {
		return nil, errInvalidToken
	}

	token, err := jwt.ParseWithClaims(rawToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, errInvalidToken
	}

	var user models.UserModel
	if err := db.First(&user, "id = ?", claims.Subject).Error; err != nil {
		return nil, errInvalidToken
	}
	return &user, nil
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return strings.TrimSpace(header)
}
