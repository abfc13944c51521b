package services

import (
	"context"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/scope"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
	"github.com/drivera/aulanet/internal/pkg/logger"
)

// CourseStore is the course surface the service needs.
// *repositories.CourseRepository satisfies it.
type CourseStore interface {
	scope.CourseDirectory
	Create(ctx context.Context, course *models.Course) error
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Course, error)
	Assign(ctx context.Context, accountID, courseID int64) error
	Unassign(ctx context.Context, accountID, courseID int64) error
	Delete(ctx context.Context, id int64) error
}

// AccountLookup resolves accounts for administrator assignment.
// *repositories.AccountRepository satisfies it.
type AccountLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Account, error)
}

// CourseService exposes course catalog operations bounded by the
// actor's course scope.
type CourseService struct {
	courses  CourseStore
	accounts AccountLookup
}

// NewCourseService creates a new course service instance
func NewCourseService(courses CourseStore, accounts AccountLookup) *CourseService {
	return &CourseService{courses: courses, accounts: accounts}
}

// ListAdministrable returns the courses the actor may manage. A full
// scope sees the whole catalog; a subset scope sees only its assigned
// courses.
func (s *CourseService) ListAdministrable(ctx context.Context, actor *models.Account) ([]*models.Course, error) {
	sc, err := scope.Resolve(ctx, s.courses, actor)
	if err != nil {
		return nil, err
	}
	if sc.IsAll() {
		return s.courses.GetAll(ctx)
	}
	ids := sc.CourseIDs()
	if len(ids) == 0 {
		return []*models.Course{}, nil
	}
	return s.courses.GetByIDs(ctx, ids)
}

// Get fetches one course the actor is allowed to see.
func (s *CourseService) Get(ctx context.Context, actor *models.Account, id int64) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sc, err := scope.Resolve(ctx, s.courses, actor)
	if err != nil {
		return nil, err
	}
	if err := scope.Authorize(sc, &course.ID); err != nil {
		return nil, err
	}
	return course, nil
}

// Create registers a new course. Only superusers may extend the
// catalog; staff administer the courses assigned to them.
func (s *CourseService) Create(ctx context.Context, actor *models.Account, course *models.Course) error {
	if !actor.IsSuperuser {
		return apperrors.ErrPermissionDenied
	}
	if course.Name == "" || course.Code == "" {
		return apperrors.NewBadRequestError("course name and code are required")
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return err
	}
	logger.Info().Int64("course_id", course.ID).Str("code", course.Code).Msg("Course created")
	return nil
}

// Delete removes a course from the catalog. Superuser only. Enrolled
// students survive with a cleared course reference.
func (s *CourseService) Delete(ctx context.Context, actor *models.Account, id int64) error {
	if !actor.IsSuperuser {
		return apperrors.ErrPermissionDenied
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("course_id", id).Msg("Course deleted")
	return nil
}

// AssignAdministrator adds a course to a staff account's administrable
// set. Superuser only; the target account must carry staff rights,
// superusers see everything already.
func (s *CourseService) AssignAdministrator(ctx context.Context, actor *models.Account, courseID, accountID int64) error {
	if !actor.IsSuperuser {
		return apperrors.ErrPermissionDenied
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return err
	}
	target, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !target.IsStaff {
		return apperrors.NewBadRequestError("account does not have staff rights")
	}
	if err := s.courses.Assign(ctx, accountID, courseID); err != nil {
		return err
	}
	logger.Info().
		Int64("course_id", courseID).
		Int64("account_id", accountID).
		Msg("Course administrator assigned")
	return nil
}

// UnassignAdministrator removes a course from a staff account's
// administrable set. Superuser only.
func (s *CourseService) UnassignAdministrator(ctx context.Context, actor *models.Account, courseID, accountID int64) error {
	if !actor.IsSuperuser {
		return apperrors.ErrPermissionDenied
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return err
	}
	if err := s.courses.Unassign(ctx, accountID, courseID); err != nil {
		return err
	}
	logger.Info().
		Int64("course_id", courseID).
		Int64("account_id", accountID).
		Msg("Course administrator unassigned")
	return nil
}
