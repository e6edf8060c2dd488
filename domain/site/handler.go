package site

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

// InfoHandler returns configured site metadata. Pure read of process-wide
// configuration, no failure modes.
func InfoHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, InfoResponse{
		SiteName:         viper.GetString("SITE_NAME"),
		Slogan:           viper.GetString("SITE_SLOGAN"),
		CurrentTimestamp: time.Now().UTC(),
	})
}
