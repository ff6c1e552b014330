package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/oknkahraman/appustabul/internal/data_models"
)

func ValidateRatingRequest(r *dto.RatingRequest) error {
	if r.JobID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "job_id is required")
	}
	if r.RateeID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ratee_id is required")
	}
	if r.Score == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "score is required")
	}
	return nil
}
