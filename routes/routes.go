package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TeamPaintbrush/thejerktracker/configs"
	"github.com/TeamPaintbrush/thejerktracker/controllers"
	"github.com/TeamPaintbrush/thejerktracker/entity"
	"github.com/TeamPaintbrush/thejerktracker/middlewares"
	"github.com/TeamPaintbrush/thejerktracker/migration"
	"github.com/TeamPaintbrush/thejerktracker/services"
	"github.com/TeamPaintbrush/thejerktracker/store"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, st store.Store, engine *migration.Engine, log *zap.Logger) {
	// Services
	authSvc := services.NewAuthService(st, cfg.JWTSecret, cfg.JWTTTL)
	userSvc := services.NewUserService(st)
	restSvc := services.NewRestaurantService(st)
	orderSvc := services.NewOrderService(st, log)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc, log)
	userCtrl := controllers.NewUserController(userSvc, log)
	restCtrl := controllers.NewRestaurantController(restSvc, log)
	orderCtrl := controllers.NewOrderController(orderSvc, cfg.PublicBaseURL, log)
	migrateCtrl := controllers.NewMigrateController(engine, log)

	staffOrAdmin := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleStaff, entity.RoleAdmin)
	adminOnly := middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin)
	anyUser := middlewares.AuthMiddleware(cfg.JWTSecret)

	api := r.Group("/api")

	// Liveness probe, no auth
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.GET("/me", anyUser, authCtrl.Me)
	}

	// Orders (staff/admin, restaurant-scoped in the service layer)
	orders := api.Group("/orders", staffOrAdmin)
	{
		orders.GET("", orderCtrl.List)
		orders.POST("", orderCtrl.Create)
		orders.GET("/:id", orderCtrl.Detail)
		orders.PUT("/:id", orderCtrl.Update)
		orders.DELETE("/:id", orderCtrl.Delete)
		orders.PATCH("/:id/status", orderCtrl.UpdateStatus)
		orders.GET("/:id/qr", orderCtrl.QRCode)
	}

	// Users
	users := api.Group("/users", anyUser)
	{
		users.GET("", userCtrl.List)
		users.POST("", userCtrl.Create)
		users.GET("/:id", userCtrl.Detail)
		users.PUT("/:id", userCtrl.Update)
		users.DELETE("/:id", userCtrl.Delete)
	}

	// Restaurants
	restaurants := api.Group("/restaurants", anyUser)
	{
		restaurants.GET("", restCtrl.List)
		restaurants.POST("", restCtrl.Create)
		restaurants.GET("/:id", restCtrl.Detail)
		restaurants.PUT("/:id", restCtrl.Update)
		restaurants.DELETE("/:id", restCtrl.Delete)
	}

	// Migration (admin only)
	migrate := api.Group("/migrate", adminOnly)
	{
		migrate.GET("", migrateCtrl.Status)
		migrate.POST("", migrateCtrl.Action)
	}

	// Export
	api.GET("/export/orders", staffOrAdmin, orderCtrl.ExportCSV)
}
