package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// AccessTokenExpirySeconds is the access token lifetime advertised to clients
const AccessTokenExpirySeconds = 24 * 60 * 60

// GenerateAccessToken signs a JWT carrying the actor's identity and role
func GenerateAccessToken(userID int64, email string, roleID int64) (string, error) {
	jwtSecret := viper.GetString("JWT_SECRET")

	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role_id": roleID,
		"exp":     time.Now().Add(AccessTokenExpirySeconds * time.Second).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
