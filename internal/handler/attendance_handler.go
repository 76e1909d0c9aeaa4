package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/service"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
	"github.com/noah-isme/attendance-api/pkg/response"
)

type attendanceService interface {
	Mark(ctx context.Context, req service.MarkAttendanceRequest) (*dto.RosterEntry, error)
	Roster(ctx context.Context, q service.RosterQuery) ([]dto.RosterEntry, error)
}

// AttendanceHandler exposes daily attendance endpoints.
type AttendanceHandler struct {
	attendance attendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance attendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Roster godoc
// @Summary Daily roster with resolved attendance status
// @Tags Attendance
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Param levelId query int false "Level ID"
// @Param levelCode query string false "Level code"
// @Param departmentCode query string false "Department code"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) Roster(c *gin.Context) {
	levelID, err := int64Query(c, "levelId")
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.attendance.Roster(c.Request.Context(), service.RosterQuery{
		Date:           c.Query("date"),
		LevelID:        levelID,
		LevelCode:      firstQuery(c, "levelCode", "level"),
		DepartmentCode: firstQuery(c, "departmentCode", "department"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// Mark godoc
// @Summary Mark a student present or absent for a day
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.MarkAttendanceRequest true "Attendance mark"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid payload"))
		return
	}
	entry, err := h.attendance.Mark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entry)
}
