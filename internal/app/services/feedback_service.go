package services

import (
	"context"
	"strings"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/scope"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
)

// FeedbackStore is the persistence surface for feedback messages.
// *repositories.FeedbackRepository satisfies it.
type FeedbackStore interface {
	Create(ctx context.Context, fb *models.FeedbackMessage) error
	ListByFilter(ctx context.Context, f scope.Filter) ([]*models.FeedbackMessage, error)
}

// FeedbackService handles student feedback messages
type FeedbackService struct {
	feedback FeedbackStore
	students StudentLookup
	courses  scope.CourseDirectory
}

// NewFeedbackService creates a new feedback service instance
func NewFeedbackService(feedback FeedbackStore, students StudentLookup, courses scope.CourseDirectory) *FeedbackService {
	return &FeedbackService{
		feedback: feedback,
		students: students,
		courses:  courses,
	}
}

// Send stores a feedback message from the student behind the account
func (s *FeedbackService) Send(ctx context.Context, accountID int64, message string) (*models.FeedbackMessage, error) {
	student, err := s.students.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewBadRequestError("message cannot be empty")
	}

	fb := &models.FeedbackMessage{StudentID: &student.ID, Message: message}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, err
	}

	return fb, nil
}

// List returns the feedback visible to the acting administrator through
// the course filter pipeline, newest first.
func (s *FeedbackService) List(ctx context.Context, actor *models.Account, requestedCourseID *int64) (scope.Filter, []*models.FeedbackMessage, error) {
	filter, err := scope.ResolveCourseFilter(ctx, s.courses, actor, requestedCourseID)
	if err != nil {
		return scope.Filter{}, nil, err
	}

	messages, err := s.feedback.ListByFilter(ctx, filter)
	if err != nil {
		return filter, nil, err
	}

	return filter, messages, nil
}
