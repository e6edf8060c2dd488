package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

func parseToken(tokenString string) (jwt.MapClaims, bool) {
	jwtSecret := viper.GetString("JWT_SECRET")

	// Check if the token has the correct number of segments
	if len(strings.Split(tokenString, ".")) != 3 {
		return nil, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

func setActorContext(c echo.Context, claims jwt.MapClaims) bool {
	userIDClaim, ok := claims["user_id"].(float64)
	if !ok {
		return false
	}
	roleIDClaim, ok := claims["role_id"].(float64)
	if !ok {
		return false
	}
	email, _ := claims["email"].(string)

	c.Set("user_id", int64(userIDClaim))
	c.Set("email", email)
	c.Set("role_id", int64(roleIDClaim))
	return true
}

// JWTMiddleware validates the JWT token and extracts actor claims
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing or invalid token"})
		}

		claims, ok := parseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		if !setActorContext(c, claims) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token claims"})
		}

		return next(c)
	}
}

// OptionalJWTMiddleware extracts actor claims when a valid token is
// present and falls through anonymously otherwise. Used on the public
// export route so access checks can see an authenticated viewer.
func OptionalJWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if claims, ok := parseToken(strings.TrimPrefix(authHeader, "Bearer ")); ok {
				setActorContext(c, claims)
			}
		}
		return next(c)
	}
}
