package utils

import "github.com/gin-gonic/gin"

// Context keys set by the auth middleware.
const (
	CtxUserID       = "userId"
	CtxRole         = "role"
	CtxRestaurantID = "restaurantId"
)

func CurrentUserID(c *gin.Context) string {
	if v, ok := c.Get(CtxUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func CurrentRole(c *gin.Context) string {
	if v, ok := c.Get(CtxRole); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func CurrentRestaurantID(c *gin.Context) *string {
	if v, ok := c.Get(CtxRestaurantID); ok {
		if s, ok := v.(string); ok && s != "" {
			return &s
		}
	}
	return nil
}
