package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wanderlist/api-go/services"
	"github.com/wanderlist/api-go/store"
	"github.com/wanderlist/api-go/utils"
)

type UserController struct {
	Users     *services.UserService
	Profiles  *services.ProfileService
	UserStore store.UserStore
}

func NewUserController(users *services.UserService, profiles *services.ProfileService, userStore store.UserStore) *UserController {
	return &UserController{Users: users, Profiles: profiles, UserStore: userStore}
}

func (uc *UserController) GetUserProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	targetID, ok := parseUserID(c, "userId")
	if !ok {
		return
	}

	actor, err := uc.UserStore.FindByID(c.Request.Context(), currentUser.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			return
		}
		respondError(c, err)
		return
	}

	profile, err := uc.Profiles.GetProfile(c.Request.Context(), actor, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		Username    *string `json:"username"`
		DisplayName *string `json:"display_name"`
		Bio         *string `json:"bio"`
		IsPrivate   *bool   `json:"is_private"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := uc.Users.UpdateProfile(c.Request.Context(), currentUser.UserID, services.UpdateProfileInput{
		Username:    input.Username,
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
		IsPrivate:   input.IsPrivate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    services.SanitizeUser(user, true),
	})
}

func (uc *UserController) ChangePassword(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := uc.Users.ChangePassword(c.Request.Context(), currentUser.UserID, input.CurrentPassword, input.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}

func (uc *UserController) DeleteAccount(c *gin.Context) {
	currentUser := utils.GetUser(c)
	if currentUser == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	if err := uc.Users.DeleteAccount(c.Request.Context(), currentUser.UserID); err != nil {
		respondError(c, err)
		return
	}

	clearAccessCookie(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account deleted successfully",
	})
}
