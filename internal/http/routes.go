package http

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/oknkahraman/appustabul/internal/constants"
	middleware "github.com/oknkahraman/appustabul/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, parser middleware.TokenParser, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	api := e.Group("/api")

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	authed := middleware.RequireAuth(parser)
	worker := middleware.RequireRole(constants.RoleWorker)
	employer := middleware.RequireRole(constants.RoleEmployer)

	api.POST("/workers/details", h.CreateWorkerProfile, authed, worker)
	api.GET("/workers", h.ListWorkers)
	api.GET("/workers/:id", h.GetWorker)

	api.GET("/skills/categories", h.ListSkillCategories)
	api.GET("/skills/categories/tree", h.SkillCategoryTree)
	api.POST("/workers/:id/skills", h.AddWorkerSkill, authed, worker)
	api.GET("/workers/:id/skills", h.ListWorkerSkills)

	api.POST("/employers/details", h.CreateEmployerProfile, authed, employer)
	api.GET("/employers", h.ListEmployers)
	api.GET("/employers/:id", h.GetEmployer)

	api.POST("/jobs", h.CreateJob, authed, employer)
	api.GET("/jobs", h.ListJobs)
	api.GET("/jobs/:id", h.GetJob)
	api.POST("/jobs/apply", h.Apply, authed, worker)
	api.GET("/jobs/:id/applications", h.ListJobApplications, authed, employer)
	api.PUT("/jobs/:id/start", h.StartWork, authed, employer)
	api.PUT("/jobs/:id/finalize", h.FinalizeJob, authed, employer)
	api.PUT("/applications/:id/accept", h.AcceptApplication, authed, employer)

	api.POST("/ratings", h.SubmitRating, authed)
	api.GET("/ratings/user/:id", h.ListUserRatings)

	api.GET("/notifications/:userId", h.ListNotifications, authed)
	api.PUT("/notifications/:id/read", h.MarkNotificationRead, authed)
}
