package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"inkpress/auth"
	"inkpress/cmd/api/trace"
	"inkpress/internal/logger"
	"inkpress/models"
)

const principalKey = "principal"

// UserLoader resolves a token's user id to a stored user.
type UserLoader interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// PrincipalMiddleware resolves the bearer token into a request principal.
// Missing, malformed, expired or otherwise invalid tokens resolve to an
// anonymous request instead of rejecting it; operations that need a
// principal enforce that themselves.
func PrincipalMiddleware(jwt *auth.JWTManager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			c.Next()
			return
		}

		claims, err := jwt.Parse(token)
		if err != nil {
			logger.DebugWithFields("token parse error", logger.Fields{
				"request_id": trace.RequestIDFromContext(c.Request.Context()),
				"error":      err.Error(),
			})
			c.Next()
			return
		}

		id, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.Next()
			return
		}

		user, err := users.FindByID(c.Request.Context(), id)
		if err != nil {
			logger.Log.Errorf("principal lookup error: %v", err)
			c.Next()
			return
		}
		if user == nil || !user.IsActive {
			c.Next()
			return
		}

		c.Set(principalKey, auth.FromUser(user))
		c.Next()
	}
}

// PrincipalFromContext returns the resolved principal, or nil for an
// anonymous request.
func PrincipalFromContext(c *gin.Context) *auth.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}
