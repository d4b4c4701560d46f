package utils

import (
	"errors"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

type UserClaims struct {
	UserID uint `json:"user_id"`
}

type contextKey string

const UserContextKey contextKey = "user"

// AccessTokenCookie is the cookie the access token travels in.
const AccessTokenCookie = "access_token"

const accessTokenTTL = 24 * time.Hour

func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if userClaims, ok := user.(*UserClaims); ok {
		return userClaims
	}
	return nil
}

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// GenerateAccessToken signs an HS256 token carrying the user id.
func GenerateAccessToken(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	})
	return token.SignedString(jwtSecret())
}

// ParseAccessToken validates the signature and expiry and extracts claims.
func ParseAccessToken(tokenString string) (*UserClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return &UserClaims{UserID: uint(userID)}, nil
}
