package middleware

import (
	"context"
	"strings"

	"notemark/apperr"
	"notemark/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	userIDKey = "user_id"
	tokenKey  = "token"

	// TokenCookie is the cookie the token is issued in.
	TokenCookie = "token"
)

var (
	errNoToken      = apperr.Unauthenticated("Not authorized, no token")
	errTokenFailed  = apperr.Unauthenticated("Not authorized, token failed")
	errTokenRevoked = apperr.Unauthenticated("Not authorized, token revoked")
)

type TokenVerifier interface {
	Verify(token string) (primitive.ObjectID, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// ExtractToken returns the bearer token from the Authorization header, falling back to
// the token cookie. It returns "" when neither carries one.
func ExtractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// AuthMiddleware rejects requests without a valid, unrevoked token and stores the
// caller's user id on the context. revoked may be nil.
func AuthMiddleware(tokens TokenVerifier, revoked RevocationChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractToken(c)
		if tokenString == "" {
			reject(c, errNoToken)
			return
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			logger.Debug("Token rejected", zap.Error(err))
			reject(c, errTokenFailed)
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), tokenString)
			switch {
			case err != nil:
				// Fail open while Redis is unavailable.
				logger.Warn("Token revocation check failed", zap.Error(err))
			case isRevoked:
				reject(c, errTokenRevoked)
				return
			}
		}

		c.Set(userIDKey, userID)
		c.Set(tokenKey, tokenString)
		c.Next()
	}
}

func reject(c *gin.Context, err error) {
	utils.TrackAuthAttempt("failure", "token")
	utils.Unauthorized(c, apperr.MessageOf(err))
}

// UserID returns the id stored by AuthMiddleware.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

// Token returns the token AuthMiddleware accepted for this request.
func Token(c *gin.Context) string {
	return c.GetString(tokenKey)
}
