package middlewares

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/TeamPaintbrush/thejerktracker/pkg/apperr"
	"github.com/TeamPaintbrush/thejerktracker/utils"
)

// AuthMiddleware verifies the bearer token and, when roles are given,
// requires the caller to hold one of them. Identity lands in the gin context
// for the handlers.
func AuthMiddleware(secret string, requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			abort(c, http.StatusUnauthorized, apperr.TypeAuthentication, "missing or invalid token")
			return
		}
		tokenStr := strings.TrimPrefix(h, "Bearer ")

		claims := &utils.Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abort(c, http.StatusUnauthorized, apperr.TypeAuthentication, "invalid token")
			return
		}

		c.Set(utils.CtxUserID, claims.UserID)
		c.Set(utils.CtxRole, claims.Role)
		if claims.RestaurantID != nil {
			c.Set(utils.CtxRestaurantID, *claims.RestaurantID)
		}

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if claims.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				abort(c, http.StatusForbidden, apperr.TypeAuthorization, "insufficient permissions")
				return
			}
		}

		c.Next()
	}
}

func abort(c *gin.Context, status int, typeTag, msg string) {
	c.JSON(status, gin.H{"error": msg, "type": typeTag})
	c.Abort()
}
