package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wanderlist/api-go/models"
	"github.com/wanderlist/api-go/services"
	"github.com/wanderlist/api-go/utils"
)

type FollowController struct {
	Follows     *services.FollowService
	Permissions *services.PermissionService
}

func NewFollowController(follows *services.FollowService, permissions *services.PermissionService) *FollowController {
	return &FollowController{Follows: follows, Permissions: permissions}
}

func (fc *FollowController) FollowUser(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	targetID, ok := parseUserID(c, "userId")
	if !ok {
		return
	}

	result, err := fc.Follows.FollowUser(c.Request.Context(), currentUser.UserID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if result.IsNewRelationship {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"success": true,
		"follow":  result.Follow,
	})
}

func (fc *FollowController) UpdateFollowStatus(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	targetID, ok := parseUserID(c, "userId")
	if !ok {
		return
	}

	var input struct {
		Action string `json:"action" binding:"required,oneof=accept reject remove cancel unfollow"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := fc.Follows.UpdateFollowStatus(c.Request.Context(), currentUser.UserID, targetID, input.Action)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
		"follow":  result.Follow,
	})
}

func (fc *FollowController) GetFollowers(c *gin.Context) {
	fc.serveFollowList(c, models.RelationFollowedBy)
}

func (fc *FollowController) GetFollowing(c *gin.Context) {
	fc.serveFollowList(c, models.RelationFollowing)
}

// serveFollowList checks view permission before serving the list; private
// accounts are only listable by themselves and accepted followers.
func (fc *FollowController) serveFollowList(c *gin.Context, relation string) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	targetID, ok := parseUserID(c, "userId")
	if !ok {
		return
	}

	permission, err := fc.Permissions.CheckViewingPermission(c.Request.Context(), currentUser.UserID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !permission.HasPermission {
		c.JSON(http.StatusForbidden, gin.H{
			"error":  "This account is private",
			"reason": permission.Reason,
		})
		return
	}

	loadIndex, _ := strconv.Atoi(c.DefaultQuery("loadIndex", "0"))

	result, err := fc.Follows.GetFollowList(c.Request.Context(), targetID, relation, loadIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"users":    result.Users,
		"has_more": result.HasMore,
	})
}

func (fc *FollowController) GetPendingRequests(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	requests, err := fc.Follows.GetPendingFollowRequests(c.Request.Context(), currentUser.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": requests,
	})
}

func (fc *FollowController) GetFollowStatus(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	targetID, ok := parseUserID(c, "userId")
	if !ok {
		return
	}

	status, err := fc.Follows.GetFollowStatus(c.Request.Context(), currentUser.UserID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  status,
	})
}
