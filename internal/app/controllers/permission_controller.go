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

// PermissionController handles leave-permission operations
type PermissionController struct {
	permissionService *services.PermissionService
}

// NewPermissionController creates a new PermissionController
func NewPermissionController(permissionService *services.PermissionService) *PermissionController {
	return &PermissionController{
		permissionService: permissionService,
	}
}

func parseDateField(ctx *gin.Context, name, value string) (time.Time, bool) {
	t, err := time.Parse(helpers.DateLayout, value)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithField(name).
			WithDetails(name + " must use the YYYY-MM-DD form")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return time.Time{}, false
	}
	return t, true
}

// RequestPermission files a leave request for the authenticated student
// @Summary Request leave permission
// @Description Creates a pending leave request covering the given date range
// @Tags permissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePermissionRequest true "Leave request"
// @Success 201 {object} dto.StructuredResponse{data=dto.PermissionResponse} "Request filed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or date range"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account has no student profile"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /permissions [post]
func (c *PermissionController) RequestPermission(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}

	var req dto.CreatePermissionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	startDate, ok := parseDateField(ctx, "startDate", req.StartDate)
	if !ok {
		return
	}
	endDate, ok := parseDateField(ctx, "endDate", req.EndDate)
	if !ok {
		return
	}

	perm, err := c.permissionService.RequestLeave(ctx.Request.Context(), account.ID, startDate, endDate, req.Reason)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.NewPermissionResponse(perm), "Request filed"))
}

// GetOwnPermissions lists the authenticated student's leave requests
// @Summary List own leave requests
// @Tags permissions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StructuredResponse{data=[]dto.PermissionResponse} "Requests retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account has no student profile"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /permissions/mine [get]
func (c *PermissionController) GetOwnPermissions(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}

	perms, err := c.permissionService.History(ctx.Request.Context(), account.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(dto.NewPermissionResponseList(perms), "Requests retrieved"))
}

// ListPermissions lists leave requests within the administrator's scope
// @Summary List leave requests
// @Description Lists leave requests from students within the administrator's course scope
// @Tags permissions
// @Produce json
// @Security BearerAuth
// @Param curso query int false "Narrow the listing to one course"
// @Success 200 {object} dto.StructuredResponse{data=dto.PermissionListResponse} "Requests retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course out of scope"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /permissions [get]
func (c *PermissionController) ListPermissions(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	courseID, ok := parseCourseQuery(ctx)
	if !ok {
		return
	}

	filter, perms, err := c.permissionService.List(ctx.Request.Context(), account, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.PermissionListResponse{
		Filter:      dto.NewFilterInfo(filter),
		Permissions: dto.NewPermissionResponseList(perms),
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Requests retrieved"))
}

// ApprovePermission approves a pending leave request
// @Summary Approve a leave request
// @Description Moves a pending request to APPROVED. Decided requests cannot be changed.
// @Tags permissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Permission request ID"
// @Success 200 {object} dto.SuccessResponse "Request approved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Student's course out of scope"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already decided"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /permissions/{id}/approve [post]
func (c *PermissionController) ApprovePermission(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.permissionService.Approve(ctx.Request.Context(), account, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Request approved"})
}

// RejectPermission rejects a pending leave request
// @Summary Reject a leave request
// @Description Moves a pending request to REJECTED. Decided requests cannot be changed.
// @Tags permissions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Permission request ID"
// @Success 200 {object} dto.SuccessResponse "Request rejected"
// @Failure 400 {object} dto.ErrorResponse "Invalid request ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Student's course out of scope"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already decided"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /permissions/{id}/reject [post]
func (c *PermissionController) RejectPermission(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.permissionService.Reject(ctx.Request.Context(), account, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Request rejected"})
}
