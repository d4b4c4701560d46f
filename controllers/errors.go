package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wanderlist/api-go/services"
	"github.com/wanderlist/api-go/store"
)

// respondError maps service and store error kinds onto HTTP status codes.
// Unclassified errors become a 500; the detail is suppressed in release
// mode.
func respondError(c *gin.Context, err error) {
	var duplicateFollow *services.DuplicateFollowError
	var invalidAction *services.InvalidActionError

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoRelationship):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrFollowSelf),
		errors.Is(err, services.ErrUnknownAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &duplicateFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": duplicateFollow.Error()})
	case errors.As(err, &invalidAction):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    invalidAction.Error(),
			"expected": invalidAction.Expected,
			"actual":   invalidAction.Actual,
		})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Username or email already taken"})
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidRefreshToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		if gin.Mode() == gin.ReleaseMode {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

func parseUserID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return uint(id), true
}
