package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/profrate/profrate/internal/app/models/dto"
	"github.com/profrate/profrate/internal/app/services"
	"github.com/profrate/profrate/internal/middleware"
)

// CatalogueController handles module instance listings
type CatalogueController struct {
	catalogueService *services.CatalogueService
}

// NewCatalogueController creates a new CatalogueController
func NewCatalogueController(catalogueService *services.CatalogueService) *CatalogueController {
	return &CatalogueController{
		catalogueService: catalogueService,
	}
}

// ListModuleInstances lists every module instance with its teaching set
// @Summary List module instances
// @Description Lists all module instances with module details and professors inlined
// @Tags modules
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.ModuleInstanceResponse} "Module instances"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /modules [get]
func (c *CatalogueController) ListModuleInstances(ctx *gin.Context) {
	instances, err := c.catalogueService.ListModuleInstances(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      instances,
		Timestamp: time.Now(),
	})
}
