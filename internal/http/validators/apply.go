package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/oknkahraman/appustabul/internal/data_models"
)

func ValidateApplyRequest(r *dto.ApplyRequest) error {
	if r.JobID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "job_id is required")
	}
	return nil
}
