package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/service"
	"github.com/noah-isme/attendance-api/pkg/response"
)

type exportService interface {
	Roster(ctx context.Context, format string, q service.RosterQuery) (*service.ExportFile, error)
}

// ReportHandler exposes file exports.
type ReportHandler struct {
	exports exportService
}

// NewReportHandler constructs handler.
func NewReportHandler(exports exportService) *ReportHandler {
	return &ReportHandler{exports: exports}
}

// ExportAttendance godoc
// @Summary Download the daily roster as CSV, PDF or XLSX
// @Tags Reports
// @Produce octet-stream
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param departmentCode query string false "Department code"
// @Param levelCode query string false "Level code"
// @Param format query string false "csv, pdf or xlsx"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/attendance/export [get]
func (h *ReportHandler) ExportAttendance(c *gin.Context) {
	file, err := h.exports.Roster(c.Request.Context(), c.DefaultQuery("format", "csv"), service.RosterQuery{
		Date:           c.Query("date"),
		DepartmentCode: firstQuery(c, "departmentCode", "department"),
		LevelCode:      firstQuery(c, "levelCode", "level"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}
