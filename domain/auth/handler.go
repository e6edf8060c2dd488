package auth

import (
	"database/sql"
	"strings"

	"github.com/intelligensi-ai/intelligensi-bridge/config"
	"github.com/intelligensi-ai/intelligensi-bridge/pkg/apperrors"
	"github.com/intelligensi-ai/intelligensi-bridge/pkg/logger"
	"github.com/intelligensi-ai/intelligensi-bridge/utils"
	"github.com/labstack/echo/v4"
)

// LoginHandler validates credentials and issues an access token. The token
// identifies the actor for homepage updates and bulk imports.
func LoginHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")

	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"Email and password are required.",
		))
	}

	var user User
	err := config.DB.Get(&user, "SELECT * FROM users WHERE email = ?", email)
	if err == sql.ErrNoRows {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeInvalidCredentials,
			"Invalid email or password.",
		))
	}
	if err != nil {
		log.Error("Failed to fetch user for login", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeStoreError,
			"Internal server error.",
			err,
		))
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeInvalidCredentials,
			"Invalid email or password.",
		))
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		log.Error("Failed to generate access token", err, logger.ActorID(user.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Login successful", logger.ActorID(user.ID))
	return apperrors.RespondWithSuccess(c, LoginResponse{
		AccessToken: accessToken,
		ExpiresIn:   utils.AccessTokenExpirySeconds,
		TokenType:   "Bearer",
		UserID:      user.ID,
		RoleID:      user.RoleID,
	})
}
