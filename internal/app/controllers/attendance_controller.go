package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drivera/aulanet/internal/app/models/dto"
	"github.com/drivera/aulanet/internal/app/services"
	"github.com/drivera/aulanet/internal/middleware"
	"github.com/drivera/aulanet/internal/pkg/helpers"
)

// AttendanceController handles daily attendance operations
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

// GetDaySheet returns the roster with each student's status for a day
// @Summary Get the daily attendance sheet
// @Description Returns the scoped roster for a day with each student marked present, absent, or without record. An unparseable date falls back to today.
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param date query string false "Day in YYYY-MM-DD form, defaults to today"
// @Param curso query int false "Narrow the roster to one course"
// @Success 200 {object} dto.StructuredResponse{data=dto.DaySheetResponse} "Sheet retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course out of scope"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [get]
func (c *AttendanceController) GetDaySheet(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	courseID, ok := parseCourseQuery(ctx)
	if !ok {
		return
	}
	day := helpers.ParseDay(ctx.Query("date"), time.Local)

	sheet, err := c.attendanceService.DaySheet(ctx.Request.Context(), account, courseID, day)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.NewDaySheetResponse(sheet), "Sheet retrieved"))
}

// SaveAttendance records one day's attendance for the scoped roster
// @Summary Save daily attendance
// @Description Marks the listed students present and every other roster student absent for the day. Saving the same day again updates the existing records instead of duplicating them.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param curso query int false "Narrow the roster to one course"
// @Param request body dto.SaveAttendanceRequest true "Attendance submission"
// @Success 200 {object} dto.StructuredResponse{data=dto.FilterInfo} "Attendance saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course out of scope"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [post]
func (c *AttendanceController) SaveAttendance(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	courseID, ok := parseCourseQuery(ctx)
	if !ok {
		return
	}

	var req dto.SaveAttendanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	day := helpers.ParseDay(req.Date, time.Local)

	filter, err := c.attendanceService.ReconcileDay(ctx.Request.Context(), account, courseID, day, req.PresentStudentIDs, req.AcademicHours)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.NewFilterInfo(filter), "Attendance saved"))
}
