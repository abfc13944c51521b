package services

import (
	"context"
	"strings"
	"time"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/scope"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
	"github.com/drivera/aulanet/internal/pkg/logger"
)

// PermissionStore is the persistence surface for leave-permission
// requests. *repositories.PermissionRepository satisfies it.
type PermissionStore interface {
	Create(ctx context.Context, req *models.PermissionRequest) error
	GetByID(ctx context.Context, id int64) (*models.PermissionRequest, error)
	UpdateStatus(ctx context.Context, id int64, status models.PermissionStatus) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.PermissionRequest, error)
	ListByFilter(ctx context.Context, f scope.Filter, status *models.PermissionStatus, limit int) ([]*models.PermissionRequest, error)
}

// StudentLookup resolves the student profile behind an account.
// *repositories.StudentRepository satisfies it.
type StudentLookup interface {
	GetByAccountID(ctx context.Context, accountID int64) (*models.StudentProfile, error)
}

// PermissionService handles leave-permission requests and their
// PENDING -> APPROVED | REJECTED state machine.
type PermissionService struct {
	requests PermissionStore
	students StudentLookup
	courses  scope.CourseDirectory
}

// NewPermissionService creates a new permission service instance
func NewPermissionService(requests PermissionStore, students StudentLookup, courses scope.CourseDirectory) *PermissionService {
	return &PermissionService{
		requests: requests,
		students: students,
		courses:  courses,
	}
}

// RequestLeave files a new request for the student behind the acting
// account. Requests always start PENDING.
func (s *PermissionService) RequestLeave(ctx context.Context, accountID int64, startDate, endDate time.Time, reason string) (*models.PermissionRequest, error) {
	student, err := s.students.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(reason) == "" {
		return nil, apperrors.NewBadRequestError("reason cannot be empty")
	}
	if endDate.Before(startDate) {
		return nil, apperrors.NewBadRequestError("end date cannot precede start date")
	}

	req := &models.PermissionRequest{
		StudentID: student.ID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    reason,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	return req, nil
}

// History returns the acting student's own requests, newest first
func (s *PermissionService) History(ctx context.Context, accountID int64) ([]*models.PermissionRequest, error) {
	student, err := s.students.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.requests.ListByStudent(ctx, student.ID)
}

// List returns the requests visible to the acting administrator through
// the course filter pipeline, newest first.
func (s *PermissionService) List(ctx context.Context, actor *models.Account, requestedCourseID *int64) (scope.Filter, []*models.PermissionRequest, error) {
	filter, err := scope.ResolveCourseFilter(ctx, s.courses, actor, requestedCourseID)
	if err != nil {
		return scope.Filter{}, nil, err
	}

	requests, err := s.requests.ListByFilter(ctx, filter, nil, 0)
	if err != nil {
		return filter, nil, err
	}

	return filter, requests, nil
}

// Approve moves a pending request to APPROVED
func (s *PermissionService) Approve(ctx context.Context, actor *models.Account, requestID int64) error {
	return s.decide(ctx, actor, requestID, models.PermissionApproved)
}

// Reject moves a pending request to REJECTED
func (s *PermissionService) Reject(ctx context.Context, actor *models.Account, requestID int64) error {
	return s.decide(ctx, actor, requestID, models.PermissionRejected)
}

// decide runs the scope guard, then the state machine: only PENDING
// requests may move, and APPROVED/REJECTED are terminal. The guard comes
// first so an out-of-scope request is denied before any state is read
// back to the caller.
func (s *PermissionService) decide(ctx context.Context, actor *models.Account, requestID int64, status models.PermissionStatus) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	sc, err := scope.Resolve(ctx, s.courses, actor)
	if err != nil {
		return err
	}
	if err := scope.Authorize(sc, req.Student.CourseID); err != nil {
		return err
	}

	if req.Status.IsTerminal() {
		return apperrors.ErrPermissionAlreadyDecided
	}

	if err := s.requests.UpdateStatus(ctx, requestID, status); err != nil {
		return err
	}

	logger.Info().
		Int64("actorID", actor.ID).
		Int64("requestID", requestID).
		Str("status", string(status)).
		Msg("Permission request decided")

	return nil
}
