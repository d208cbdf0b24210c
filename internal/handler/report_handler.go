package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"complaint-desk/internal/middleware"
	"complaint-desk/internal/service/report"
)

type ReportHandler struct {
	reportService report.Service
	now           func() time.Time
}

func NewReportHandler(reportService report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService, now: time.Now}
}

func (h *ReportHandler) ComplaintsByCategory(c *fiber.Ctx) error {
	rows, err := h.reportService.ComplaintsByCategory(c.Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(rows)
}

func (h *ReportHandler) ResolutionTimeByDepartment(c *fiber.Ctx) error {
	rows, err := h.reportService.ResolutionTimeByDepartment(c.Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(rows)
}

func (h *ReportHandler) StatusDistribution(c *fiber.Ctx) error {
	rows, err := h.reportService.StatusDistribution(c.Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(rows)
}

func (h *ReportHandler) MonthlyTrend(c *fiber.Ctx) error {
	months := report.DefaultTrendMonths
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return middleware.BadRequest("months must be a number")
		}
		months = n
	}

	rows, err := h.reportService.MonthlyTrend(c.Context(), months)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(rows)
}

func (h *ReportHandler) DepartmentPerformance(c *fiber.Ctx) error {
	rows, err := h.reportService.DepartmentPerformance(c.Context())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(rows)
}

func (h *ReportHandler) WeeklyComplaints(c *fiber.Ctx) error {
	r, err := report.ResolveRange(c.Query("range"), c.Query("from"), c.Query("to"), h.now())
	if err != nil {
		return mapError(err)
	}

	result, err := h.reportService.ComplaintsInRange(c.Context(), r)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(result)
}
