package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/models/dto"
	"github.com/drivera/aulanet/internal/app/services"
	"github.com/drivera/aulanet/internal/middleware"
)

// CourseController handles course catalog operations
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// ListCourses lists the courses the acting administrator may manage
// @Summary List administrable courses
// @Description Returns the whole catalog for superusers and the assigned courses for staff
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.CourseResponse} "Courses retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}

	courses, err := c.courseService.ListAdministrable(ctx.Request.Context(), account)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.NewCourseResponseList(courses), "Courses retrieved"))
}

// GetCourse retrieves one course by ID
// @Summary Get course by ID
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.CourseResponse} "Course retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course out of scope"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.Get(ctx.Request.Context(), account, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.NewCourseResponse(course), "Course retrieved"))
}

// CreateCourse adds a course to the catalog
// @Summary Create a course
// @Description Adds a course. Only superusers may extend the catalog.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.StructuredResponse{data=dto.CourseResponse} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}

	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course := &models.Course{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
	}
	if err := c.courseService.Create(ctx.Request.Context(), account, course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.NewCourseResponse(course), "Course created"))
}

// DeleteCourse removes a course from the catalog
// @Summary Delete a course
// @Description Removes a course. Only superusers may do this. Enrolled students keep their profiles without a course.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.SuccessResponse} "Course deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.Delete(ctx.Request.Context(), account, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.SuccessResponse{Message: "Course deleted"}, "Course deleted"))
}

// AssignAdministrator grants a staff account administration of a course
// @Summary Assign a course administrator
// @Description Adds the course to a staff account's administrable set. Only superusers may do this.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.AssignAdministratorRequest true "Staff account"
// @Success 200 {object} dto.StructuredResponse{data=dto.SuccessResponse} "Administrator assigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course or account not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/administrators [post]
func (c *CourseController) AssignAdministrator(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AssignAdministratorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.courseService.AssignAdministrator(ctx.Request.Context(), account, id, req.AccountID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.SuccessResponse{Message: "Administrator assigned"}, "Administrator assigned"))
}

// UnassignAdministrator revokes a staff account's administration of a course
// @Summary Unassign a course administrator
// @Description Removes the course from a staff account's administrable set. Only superusers may do this.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param accountId path int true "Staff account ID"
// @Success 200 {object} dto.StructuredResponse{data=dto.SuccessResponse} "Administrator unassigned"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/administrators/{accountId} [delete]
func (c *CourseController) UnassignAdministrator(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	accountID, ok := parseIDParam(ctx, "accountId")
	if !ok {
		return
	}

	if err := c.courseService.UnassignAdministrator(ctx.Request.Context(), account, id, accountID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.SuccessResponse{Message: "Administrator unassigned"}, "Administrator unassigned"))
}
