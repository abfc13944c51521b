package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivera/aulanet/internal/app/models/dto"
	"github.com/drivera/aulanet/internal/app/services"
	"github.com/drivera/aulanet/internal/middleware"
)

// DashboardController serves the administrator landing summary
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns totals and recent activity for the actor's scope
// @Summary Get the administrator dashboard
// @Description Returns student totals, pending leave requests, and the latest activity within the administrator's course scope
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param curso query int false "Narrow the summary to one course"
// @Success 200 {object} dto.StructuredResponse{data=dto.DashboardResponse} "Dashboard retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course out of scope"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	courseID, ok := parseCourseQuery(ctx)
	if !ok {
		return
	}

	summary, err := c.dashboardService.Summary(ctx.Request.Context(), account, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.NewDashboardResponse(summary), "Dashboard retrieved"))
}
