package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/drivera/aulanet/internal/app/models/dto"
	"github.com/drivera/aulanet/internal/app/services"
	"github.com/drivera/aulanet/internal/middleware"
)

// FeedbackController handles feedback message operations
type FeedbackController struct {
	feedbackService *services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService *services.FeedbackService) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
	}
}

// SendFeedback stores a feedback message from the authenticated student
// @Summary Send feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendFeedbackRequest true "Feedback message"
// @Success 201 {object} dto.StructuredResponse{data=dto.FeedbackResponse} "Feedback sent"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account has no student profile"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback [post]
func (c *FeedbackController) SendFeedback(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}

	var req dto.SendFeedbackRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.feedbackService.Send(ctx.Request.Context(), account.ID, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewStructuredResponse(dto.NewFeedbackResponse(msg), "Feedback sent"))
}

// ListFeedback lists feedback from students within the administrator's scope
// @Summary List feedback messages
// @Description Lists feedback from students within the administrator's course scope. Messages whose author was deleted appear only to superusers.
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param curso query int false "Narrow the listing to one course"
// @Success 200 {object} dto.StructuredResponse{data=dto.FeedbackListResponse} "Feedback retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid course filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Course out of scope"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /feedback [get]
func (c *FeedbackController) ListFeedback(ctx *gin.Context) {
	account, ok := actingAccount(ctx)
	if !ok {
		return
	}
	courseID, ok := parseCourseQuery(ctx)
	if !ok {
		return
	}

	filter, messages, err := c.feedbackService.List(ctx.Request.Context(), account, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.FeedbackListResponse{
		Filter:   dto.NewFilterInfo(filter),
		Messages: dto.NewFeedbackResponseList(messages),
	}
	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(resp, "Feedback retrieved"))
}
