package dto

import (
	"time"

	"github.com/drivera/aulanet/internal/app/models"
)

// SendFeedbackRequest represents a student submitting feedback
type SendFeedbackRequest struct {
	Message string `json:"message" binding:"required"`
}

// FeedbackResponse represents a feedback message. The student fields
// are empty when the author's profile has been deleted.
type FeedbackResponse struct {
	ID          int64     `json:"id" example:"1"`
	StudentID   *int64    `json:"studentId,omitempty" example:"7"`
	StudentName string    `json:"studentName,omitempty" example:"Ana María González Pérez"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FeedbackListResponse pairs a feedback listing with the filter applied
type FeedbackListResponse struct {
	Filter   FilterInfo          `json:"filter"`
	Messages []*FeedbackResponse `json:"messages"`
}

// NewFeedbackResponse maps a feedback message to its response form
func NewFeedbackResponse(f *models.FeedbackMessage) *FeedbackResponse {
	if f == nil {
		return nil
	}
	resp := &FeedbackResponse{
		ID:        f.ID,
		StudentID: f.StudentID,
		Message:   f.Message,
		CreatedAt: f.CreatedAt,
	}
	if f.Student != nil {
		resp.StudentName = f.Student.Names + " " + f.Student.Surnames
	}
	return resp
}

// NewFeedbackResponseList maps a slice of feedback messages
func NewFeedbackResponseList(messages []*models.FeedbackMessage) []*FeedbackResponse {
	out := make([]*FeedbackResponse, 0, len(messages))
	for _, f := range messages {
		out = append(out, NewFeedbackResponse(f))
	}
	return out
}
