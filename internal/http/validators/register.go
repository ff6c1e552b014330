package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/oknkahraman/appustabul/internal/data_models"
)

func ValidateRegisterRequest(r *dto.RegisterRequest) error {
	if r.Username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}
	if r.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "password is required")
	}
	if r.Role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "role is required")
	}
	return nil
}
