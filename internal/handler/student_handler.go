package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/internal/service"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
	"github.com/noah-isme/attendance-api/pkg/response"
)

type studentService interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error)
	Search(ctx context.Context, query string) ([]models.StudentDetail, error)
	ByLevel(ctx context.Context, levelCode string) ([]models.StudentDetail, error)
	Count(ctx context.Context, filter models.PopulationFilter) (int, error)
	Create(ctx context.Context, req service.CreateStudentRequest) (*models.StudentDetail, error)
	Delete(ctx context.Context, id int64) (*models.StudentDetail, error)
}

// StudentHandler exposes student endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List godoc
// @Summary List students
// @Tags Students
// @Produce json
// @Param department query string false "Department code"
// @Param level query string false "Level code"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		DepartmentCode: firstQuery(c, "department", "departmentCode"),
		LevelCode:      firstQuery(c, "level", "levelCode"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "100")); err == nil {
		filter.PageSize = size
	}

	students, pagination, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}

// Search godoc
// @Summary Search students by name or email
// @Tags Students
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/search [get]
func (h *StudentHandler) Search(c *gin.Context) {
	students, err := h.students.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, students)
}

// ByLevel godoc
// @Summary List the students of a level
// @Tags Students
// @Produce json
// @Param code query string true "Level code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/by-level [get]
func (h *StudentHandler) ByLevel(c *gin.Context) {
	students, err := h.students.ByLevel(c.Request.Context(), c.Query("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, students)
}

// Count godoc
// @Summary Count the students of a department and level
// @Tags Students
// @Produce json
// @Param departmentCode query string true "Department code"
// @Param levelCode query string true "Level code"
// @Success 200 {object} response.Envelope
// @Router /students/count [get]
func (h *StudentHandler) Count(c *gin.Context) {
	total, err := h.students.Count(c.Request.Context(), models.PopulationFilter{
		DepartmentCode: firstQuery(c, "departmentCode", "department"),
		LevelCode:      firstQuery(c, "levelCode", "level"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.CountResponse{Count: total})
}

// Create godoc
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param payload body service.CreateStudentRequest true "Student payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /students [post]
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Validation(err, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Delete godoc
// @Summary Delete student and its attendance records
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [delete]
func (h *StudentHandler) Delete(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	student, err := h.students.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}
