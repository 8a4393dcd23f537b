package middleware

import (
	"strings"

	"share-platform/pkg/apperr"
	"share-platform/pkg/jwt"
	"share-platform/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "user_id"
	ContextPhone  = "phone"

	// NoToken is what the web client sends when nobody is signed in.
	NoToken = "no-token"
)

// AuthMiddleware rejects requests without a valid token.
func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Fail(c, nil, apperr.ErrTokenInvalid)
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Fail(c, nil, err)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextPhone, claims.Phone)
		c.Next()
	}
}

// OptionalAuthMiddleware lets anonymous requests through with user id 0. A
// token that is present but does not verify is still rejected.
func OptionalAuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Set(ContextUserID, int64(0))
			c.Next()
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			response.Fail(c, nil, err)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextPhone, claims.Phone)
		c.Next()
	}
}

// UserID returns the authenticated account id, 0 for anonymous requests.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ContextUserID)
}

// extractToken accepts "Authorization: Bearer <t>" or the web client's "token"
// header. The no-token sentinel counts as absent.
func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if strings.HasPrefix(authHeader, "Bearer ") {
			return normalize(strings.TrimSpace(authHeader[len("Bearer "):]))
		}
		return ""
	}
	return normalize(strings.TrimSpace(c.GetHeader("token")))
}

func normalize(token string) string {
	if token == NoToken {
		return ""
	}
	return token
}
