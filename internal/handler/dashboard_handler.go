package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/attendance"
	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/middleware"
	"github.com/noah-isme/attendance-api/internal/service"
	"github.com/noah-isme/attendance-api/pkg/response"
)

type reportService interface {
	Daily(ctx context.Context, q service.ReportQuery) (*attendance.Report, bool, error)
	Period(ctx context.Context, q service.PeriodQuery) ([]attendance.PeriodStat, bool, error)
	Overview(ctx context.Context, q service.OverviewQuery) (*dto.MonthlyOverview, bool, error)
}

// DashboardHandler wires the report service to the dashboard endpoints.
type DashboardHandler struct {
	reports reportService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(reports reportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// AttendanceReport godoc
// @Summary Daily attendance report
// @Tags Dashboard
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param departmentCode query string false "Department code"
// @Param levelCode query string false "Level code"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /dashboard/attendance-report [get]
func (h *DashboardHandler) AttendanceReport(c *gin.Context) {
	start := time.Now()
	report, hit, err := h.reports.Daily(c.Request.Context(), service.ReportQuery{
		Date:           c.Query("date"),
		DepartmentCode: firstQuery(c, "departmentCode", "department"),
		LevelCode:      firstQuery(c, "levelCode", "level"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report, middleware.ReportMeta(c, hit, start))
}

// AttendanceStats godoc
// @Summary Presence rate over a week, a month or a custom window
// @Tags Dashboard
// @Produce json
// @Param departmentCode query string true "Department code"
// @Param levelCode query string true "Level code"
// @Param type query string true "weekly, monthly or custom"
// @Param date query string false "Reference day, defaults to today"
// @Param startDate query string false "Custom window start"
// @Param endDate query string false "Custom window end"
// @Success 200 {object} response.Envelope
// @Router /dashboard/attendance-stats [get]
func (h *DashboardHandler) AttendanceStats(c *gin.Context) {
	start := time.Now()
	stats, hit, err := h.reports.Period(c.Request.Context(), service.PeriodQuery{
		DepartmentCode: firstQuery(c, "departmentCode", "department"),
		LevelCode:      firstQuery(c, "levelCode", "level"),
		Type:           c.Query("type"),
		Date:           c.Query("date"),
		StartDate:      c.Query("startDate"),
		EndDate:        c.Query("endDate"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.PeriodStatsResponse{Stats: stats}, middleware.ReportMeta(c, hit, start))
}

// Overview godoc
// @Summary Monthly overview with weekday breakdown
// @Tags Dashboard
// @Produce json
// @Param department query string true "Department code"
// @Param level query string true "Level code"
// @Param month query string false "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	start := time.Now()
	overview, hit, err := h.reports.Overview(c.Request.Context(), service.OverviewQuery{
		DepartmentCode: firstQuery(c, "department", "departmentCode"),
		LevelCode:      firstQuery(c, "level", "levelCode"),
		Month:          c.Query("month"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, overview, middleware.ReportMeta(c, hit, start))
}
