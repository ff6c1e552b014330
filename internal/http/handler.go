package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oknkahraman/appustabul/internal/constants"
	dto "github.com/oknkahraman/appustabul/internal/data_models"
	apperrors "github.com/oknkahraman/appustabul/internal/errors"
	middleware "github.com/oknkahraman/appustabul/internal/http/middlewares"
	"github.com/oknkahraman/appustabul/internal/http/validators"
	"github.com/oknkahraman/appustabul/internal/services"
)

type Handler struct {
	auth          *services.AuthService
	profiles      *services.ProfileService
	lifecycle     *services.LifecycleService
	notifications *services.DispatcherService
	reputation    *services.ReputationService
}

func NewHandler(
	auth *services.AuthService,
	profiles *services.ProfileService,
	lifecycle *services.LifecycleService,
	notifications *services.DispatcherService,
	reputation *services.ReputationService,
) *Handler {
	return &Handler{
		auth:          auth,
		profiles:      profiles,
		lifecycle:     lifecycle,
		notifications: notifications,
		reputation:    reputation,
	}
}

func httpError(err error) error {
	code := apperrors.StatusCode(err)
	if code == http.StatusInternalServerError {
		return echo.NewHTTPError(code, "internal server error")
	}
	return echo.NewHTTPError(code, err.Error())
}

func actorID(c echo.Context) string {
	id, _ := c.Get(middleware.ContextUserID).(string)
	return id
}

// Auth

func (h *Handler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateRegisterRequest(&req); err != nil {
		return err
	}

	user, token, err := h.auth.Register(c.Request().Context(), req.Username, req.Password, constants.UserRole(req.Role))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	user, token, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Profiles

func (h *Handler) CreateWorkerProfile(c echo.Context) error {
	var req dto.WorkerProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	profile, err := h.profiles.CreateWorkerProfile(c.Request().Context(), actorID(c), req.FirstName, req.LastName, req.City, req.District)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) GetWorker(c echo.Context) error {
	profile, err := h.profiles.GetWorkerProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) ListWorkers(c echo.Context) error {
	profiles, err := h.profiles.ListWorkerProfiles(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profiles)
}

func (h *Handler) CreateEmployerProfile(c echo.Context) error {
	var req dto.EmployerProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	profile, err := h.profiles.CreateEmployerProfile(c.Request().Context(), actorID(c), req.CompanyName, req.Sector, req.City, req.District)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) GetEmployer(c echo.Context) error {
	profile, err := h.profiles.GetEmployerProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) ListEmployers(c echo.Context) error {
	profiles, err := h.profiles.ListEmployerProfiles(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, profiles)
}

// Skills

func (h *Handler) ListSkillCategories(c echo.Context) error {
	categories, err := h.profiles.ListSkillCategories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) SkillCategoryTree(c echo.Context) error {
	tree, err := h.profiles.SkillCategoryTree(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, tree)
}

func (h *Handler) AddWorkerSkill(c echo.Context) error {
	var req dto.WorkerSkillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateWorkerSkillRequest(&req); err != nil {
		return err
	}

	skill, err := h.profiles.AddWorkerSkill(c.Request().Context(), actorID(c), c.Param("id"), req.SkillCategoryID, req.YearsOfExperience, req.IsPrimary)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, skill)
}

func (h *Handler) ListWorkerSkills(c echo.Context) error {
	skills, err := h.profiles.ListWorkerSkills(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, skills)
}

// Jobs

func (h *Handler) CreateJob(c echo.Context) error {
	var req dto.CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateJobRequest(&req); err != nil {
		return err
	}

	job, err := h.lifecycle.CreateJob(c.Request().Context(), actorID(c), req.Title, req.Description, req.StartDate, req.EndDate, req.BudgetInfo)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, job)
}

func (h *Handler) ListJobs(c echo.Context) error {
	status := constants.JobStatus(c.QueryParam("status"))

	jobs, err := h.lifecycle.ListJobs(c.Request().Context(), status)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, jobs)
}

func (h *Handler) GetJob(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.lifecycle.RecordView(ctx, id); err != nil {
		return httpError(err)
	}

	job, err := h.lifecycle.GetJob(ctx, id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, job)
}

func (h *Handler) Apply(c echo.Context) error {
	var req dto.ApplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateApplyRequest(&req); err != nil {
		return err
	}

	application, err := h.lifecycle.Apply(c.Request().Context(), actorID(c), req.JobID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, application)
}

func (h *Handler) ListJobApplications(c echo.Context) error {
	applications, err := h.lifecycle.ListApplications(c.Request().Context(), actorID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, applications)
}

func (h *Handler) AcceptApplication(c echo.Context) error {
	application, err := h.lifecycle.AcceptApplication(c.Request().Context(), actorID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, application)
}

func (h *Handler) StartWork(c echo.Context) error {
	job, err := h.lifecycle.StartWork(c.Request().Context(), actorID(c), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, job)
}

func (h *Handler) FinalizeJob(c echo.Context) error {
	var req dto.FinalizeJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	job, err := h.lifecycle.FinalizeCompletion(c.Request().Context(), actorID(c), c.Param("id"), constants.JobStatus(req.Outcome))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, job)
}

// Ratings

func (h *Handler) SubmitRating(c echo.Context) error {
	var req dto.RatingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateRatingRequest(&req); err != nil {
		return err
	}

	rating, err := h.reputation.SubmitRating(c.Request().Context(), actorID(c), req.JobID, req.RateeID, req.Score, req.PaymentScore, req.Comment)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, rating)
}

func (h *Handler) ListUserRatings(c echo.Context) error {
	ratings, err := h.reputation.ListRatings(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ratings)
}

// Notifications

func (h *Handler) ListNotifications(c echo.Context) error {
	userID := c.Param("userId")
	if userID != actorID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "cannot read another user's notifications")
	}

	notifications, err := h.notifications.List(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, notifications)
}

func (h *Handler) MarkNotificationRead(c echo.Context) error {
	if err := h.notifications.MarkRead(c.Request().Context(), actorID(c), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "notification marked as read"})
}
