package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/oknkahraman/appustabul/internal/data_models"
)

func ValidateWorkerSkillRequest(r *dto.WorkerSkillRequest) error {
	if r.SkillCategoryID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "skill_category_id is required")
	}
	if r.YearsOfExperience < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "years_of_experience must not be negative")
	}
	return nil
}
