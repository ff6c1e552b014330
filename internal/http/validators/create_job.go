package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/oknkahraman/appustabul/internal/data_models"
)

func ValidateCreateJobRequest(r *dto.CreateJobRequest) error {
	if r.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if r.Description == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "description is required")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date and end_date are required")
	}
	return nil
}
