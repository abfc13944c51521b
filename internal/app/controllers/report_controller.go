package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivera/aulanet/internal/app/services"
	"github.com/drivera/aulanet/internal/middleware"
	"github.com/drivera/aulanet/internal/pkg/pdfreport"
)

// ReportController serves downloadable attendance reports
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// DownloadCourseReport streams the attendance report PDF for a course
// @Summary Download a course attendance report
// @Description Builds the per-student attendance history for a course and returns it as a PDF document
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {file} file "PDF report"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course out of scope"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/courses/{id} [get]
func (c *ReportController) DownloadCourseReport(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	report, err := c.reportService.BuildCourseReport(ctx.Request.Context(), account, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pdfBytes, err := pdfreport.Render(report)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("asistencia_%s.pdf", report.Course.Code)
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", pdfBytes)
}
