package handler

import (
	"github.com/gofiber/fiber/v2"

	"complaint-desk/internal/middleware"
	"complaint-desk/internal/policy"
)

// Register mounts the API under /api. loginLimiter may be nil.
func (h *Handlers) Register(app *fiber.App, parser middleware.TokenParser, pol *policy.Policy, loginLimiter *middleware.RateLimiter) {
	app.Get("/health", h.Health.Check)

	api := app.Group("/api")
	api.Get("/health", h.Health.Check)

	authRequired := middleware.AuthRequired(parser)

	authGroup := api.Group("/auth")
	if loginLimiter != nil {
		authGroup.Post("/login", loginLimiter.Handler(), h.Auth.Login)
	} else {
		authGroup.Post("/login", h.Auth.Login)
	}
	authGroup.Get("/me", authRequired, h.Auth.Me)

	complaints := api.Group("/complaints", authRequired)
	complaints.Get("/", h.Complaint.List)
	complaints.Post("/", middleware.RequirePermission(pol, policy.ComplaintCreate), h.Complaint.Create)
	complaints.Get("/:id", h.Complaint.Get)
	complaints.Put("/:id", h.Complaint.Update)
	complaints.Delete("/:id", middleware.RequirePermission(pol, policy.ComplaintDelete), h.Complaint.Delete)

	notifications := api.Group("/notifications", authRequired)
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Put("/read-all", h.Notification.MarkAllAsRead)
	notifications.Put("/:id/read", h.Notification.MarkAsRead)
	notifications.Delete("/:id", h.Notification.Delete)

	reports := api.Group("/reports", authRequired, middleware.RequirePermission(pol, policy.ReportRead))
	reports.Get("/complaints-by-category", h.Report.ComplaintsByCategory)
	reports.Get("/resolution-time-by-department", h.Report.ResolutionTimeByDepartment)
	reports.Get("/complaint-status-distribution", h.Report.StatusDistribution)
	reports.Get("/monthly-complaint-trend", h.Report.MonthlyTrend)
	reports.Get("/department-performance", h.Report.DepartmentPerformance)
	reports.Get("/weekly-complaints", h.Report.WeeklyComplaints)

	users := api.Group("/users", authRequired)
	users.Put("/change-password", h.Auth.ChangePassword)
	users.Get("/", middleware.RequirePermission(pol, policy.UserList), h.User.List)
	users.Post("/", middleware.RequirePermission(pol, policy.UserCreate), h.User.Create)
	users.Get("/:id", h.User.Get)
	users.Put("/:id", h.User.Update)
	users.Delete("/:id", middleware.RequirePermission(pol, policy.UserDelete), h.User.Delete)
}
