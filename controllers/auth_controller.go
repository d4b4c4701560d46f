package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wanderlist/api-go/models"
	"github.com/wanderlist/api-go/services"
	"github.com/wanderlist/api-go/store"
	"github.com/wanderlist/api-go/utils"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// accessCookieMaxAge matches the access token lifetime.
const accessCookieMaxAge = 24 * 60 * 60

type AuthController struct {
	Users  *services.UserService
	Tokens store.RefreshTokenStore
}

func NewAuthController(users *services.UserService, tokens store.RefreshTokenStore) *AuthController {
	return &AuthController{Users: users, Tokens: tokens}
}

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Username    string `json:"username" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required,min=6"`
		DisplayName string `json:"display_name"`
		Bio         string `json:"bio"`
		IsPrivate   bool   `json:"is_private"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	user, err := ac.Users.Register(c.Request.Context(), services.RegisterInput{
		Username:    input.Username,
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Bio:         input.Bio,
		IsPrivate:   input.IsPrivate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"user":    services.SanitizeUser(user, true),
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	refreshToken := &models.RefreshToken{
		UserID:         user.ID,
		Token:          uuid.NewString(),
		ExpirationDate: time.Now().Add(refreshTokenTTL),
	}
	if err := ac.Tokens.Create(c.Request.Context(), refreshToken); err != nil {
		respondError(c, err)
		return
	}

	setAccessCookie(c, accessToken)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  accessToken,
		"refresh_token": refreshToken.Token,
		"user":          services.SanitizeUser(user, true),
	})
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stored, err := ac.Tokens.Find(c.Request.Context(), input.RefreshToken)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, services.ErrInvalidRefreshToken)
			return
		}
		respondError(c, err)
		return
	}

	if time.Now().After(stored.ExpirationDate) {
		_ = ac.Tokens.DeleteByToken(c.Request.Context(), stored.Token)
		respondError(c, services.ErrInvalidRefreshToken)
		return
	}

	accessToken, err := utils.GenerateAccessToken(stored.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Rotate the refresh token on every use.
	rotated := &models.RefreshToken{
		UserID:         stored.UserID,
		Token:          uuid.NewString(),
		ExpirationDate: time.Now().Add(refreshTokenTTL),
	}
	if err := ac.Tokens.Create(c.Request.Context(), rotated); err != nil {
		respondError(c, err)
		return
	}
	_ = ac.Tokens.DeleteByToken(c.Request.Context(), stored.Token)

	setAccessCookie(c, accessToken)

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"access_token":  accessToken,
		"refresh_token": rotated.Token,
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.ShouldBindJSON(&input)

	if input.RefreshToken != "" {
		_ = ac.Tokens.DeleteByToken(c.Request.Context(), input.RefreshToken)
	}

	clearAccessCookie(c)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

func setAccessCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.AccessTokenCookie, token, accessCookieMaxAge, "/", "", false, true)
}

func clearAccessCookie(c *gin.Context) {
	c.SetCookie(utils.AccessTokenCookie, "", -1, "/", "", false, true)
}
