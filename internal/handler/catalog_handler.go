package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/attendance-api/internal/models"
	"github.com/noah-isme/attendance-api/pkg/response"
)

type catalogService interface {
	Departments(ctx context.Context) ([]models.Department, error)
	Levels(ctx context.Context, departmentCode string) ([]models.Level, error)
}

// CatalogHandler exposes the department and level reference data.
type CatalogHandler struct {
	catalog catalogService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog catalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Departments godoc
// @Summary List departments with their levels
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /departments [get]
func (h *CatalogHandler) Departments(c *gin.Context) {
	departments, err := h.catalog.Departments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, departments)
}

// Levels godoc
// @Summary List levels
// @Tags Catalog
// @Produce json
// @Param departmentCode query string false "Department code"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /levels [get]
func (h *CatalogHandler) Levels(c *gin.Context) {
	levels, err := h.catalog.Levels(c.Request.Context(), firstQuery(c, "departmentCode", "department"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, levels)
}
