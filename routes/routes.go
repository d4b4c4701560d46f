package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wanderlist/api-go/cache"
	"github.com/wanderlist/api-go/controllers"
	"github.com/wanderlist/api-go/middleware"
	"github.com/wanderlist/api-go/services"
	"github.com/wanderlist/api-go/store"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, profileCache cache.Cache) {
	// Stores
	userStore := store.NewGormUserStore(db)
	followStore := store.NewGormFollowStore(db)
	tokenStore := store.NewGormRefreshTokenStore(db)

	// Services
	followService := services.NewFollowService(userStore, followStore)
	permissionService := services.NewPermissionService(userStore, followStore)
	profileService := services.NewProfileService(userStore, followService, profileCache)
	userService := services.NewUserService(userStore, tokenStore, profileService)

	// Controllers
	authController := controllers.NewAuthController(userService, tokenStore)
	userController := controllers.NewUserController(userService, profileService, userStore)
	followController := controllers.NewFollowController(followService, permissionService)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/refresh-token", authController.RefreshToken)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)

		protected.PUT("/profile", userController.UpdateProfile)
		protected.PUT("/password", userController.ChangePassword)
		protected.DELETE("/profile", userController.DeleteAccount)

		SetupUserRoutes(protected, userController)
		SetupFollowRoutes(protected, followController)
	}
}
