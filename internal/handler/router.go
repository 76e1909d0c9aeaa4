package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/middleware"
	"github.com/noah-isme/attendance-api/internal/models"
)

// Handlers groups the API handlers mounted by Register.
type Handlers struct {
	Catalog    *CatalogHandler
	Students   *StudentHandler
	Attendance *AttendanceHandler
	Dashboard  *DashboardHandler
	Reports    *ReportHandler
}

// Register mounts the API routes on group. When auth is non-nil every route requires a
// bearer token and deleting students is restricted to administrators.
func Register(group *gin.RouterGroup, h Handlers, auth gin.HandlerFunc) {
	group.Use(middleware.ResponseMeta())

	adminOnly := func(c *gin.Context) { c.Next() }
	if auth != nil {
		group.Use(auth, middleware.RequireRoles(models.RoleAdmin, models.RoleStaff))
		adminOnly = middleware.RequireRoles(models.RoleAdmin)
	}

	group.GET("/departments", h.Catalog.Departments)
	group.GET("/levels", h.Catalog.Levels)

	students := group.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.GET("/search", h.Students.Search)
	students.GET("/by-level", h.Students.ByLevel)
	students.GET("/count", h.Students.Count)
	students.DELETE("/:id", adminOnly, h.Students.Delete)

	group.GET("/attendance", h.Attendance.Roster)
	group.POST("/attendance", h.Attendance.Mark)

	dashboard := group.Group("/dashboard")
	dashboard.GET("/attendance-report", h.Dashboard.AttendanceReport)
	dashboard.GET("/attendance-stats", h.Dashboard.AttendanceStats)
	dashboard.GET("/stats", h.Dashboard.Overview)
	dashboard.GET("/student-count", h.Students.Count)

	group.GET("/reports/attendance/export", h.Reports.ExportAttendance)
}
