package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chaitali929/coremodeling/internal/auth"
	"github.com/chaitali929/coremodeling/internal/logger"
	"github.com/chaitali929/coremodeling/internal/models"
	"github.com/chaitali929/coremodeling/pkg/apperrors"
	"github.com/chaitali929/coremodeling/pkg/contextkeys"
)

// AuthMiddleware resolves the bearer token into an auth.Identity.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.ErrMissingCredential)
			return
		}

		claims, err := tokens.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				apperrors.HandleError(c, apperrors.New(apperrors.CodeTokenExpired, "auth", "Not authorized, token expired", http.StatusUnauthorized))
				return
			}
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		identity := claims.Identity()
		c.Set(contextkeys.IdentityKey, identity)

		ctx := auth.WithIdentity(c.Request.Context(), identity)
		ctx = logger.WithUserID(ctx, identity.AccountID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRoles lets only the listed roles through.
func RequireRoles(roles ...models.AccountRole) gin.HandlerFunc {
	allowed := make(map[models.AccountRole]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apperrors.HandleError(c, apperrors.ErrMissingCredential)
			return
		}
		if !allowed[identity.Role] {
			apperrors.HandleError(c, apperrors.ErrAdminOnly)
			return
		}
		c.Next()
	}
}

func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	val, exists := c.Get(contextkeys.IdentityKey)
	if !exists {
		return auth.Anonymous, false
	}
	identity, ok := val.(auth.Identity)
	if !ok || identity.AccountID == "" {
		return auth.Anonymous, false
	}
	return identity, true
}
