package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wanderlist/api-go/controllers"
)

func SetupFollowRoutes(protected *gin.RouterGroup, followController *controllers.FollowController) {
	users := protected.Group("/users")
	{
		users.POST("/:userId/follow", followController.FollowUser)
		users.PUT("/:userId/follow", followController.UpdateFollowStatus)
		users.GET("/:userId/followers", followController.GetFollowers)
		users.GET("/:userId/following", followController.GetFollowing)
		users.GET("/:userId/follow-status", followController.GetFollowStatus)
	}

	protected.GET("/follow-requests", followController.GetPendingRequests)
}
