package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/TeamPaintbrush/thejerktracker/services"
	"github.com/TeamPaintbrush/thejerktracker/utils"
)

// callerFrom rebuilds the authenticated identity the middleware stashed in
// the gin context.
func callerFrom(c *gin.Context) services.Caller {
	return services.Caller{
		UserID:       utils.CurrentUserID(c),
		Role:         utils.CurrentRole(c),
		RestaurantID: utils.CurrentRestaurantID(c),
	}
}
