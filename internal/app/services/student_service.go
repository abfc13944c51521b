package services

import (
	"context"
	"strings"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/scope"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
	"github.com/drivera/aulanet/internal/pkg/auth"
	"github.com/drivera/aulanet/internal/pkg/logger"
	"github.com/drivera/aulanet/internal/pkg/validation"
)

// StudentStore is the persistence surface for student profiles.
// *repositories.StudentRepository satisfies it.
type StudentStore interface {
	StudentRoster
	GetByID(ctx context.Context, id int64) (*models.StudentProfile, error)
	GetByAccountID(ctx context.Context, accountID int64) (*models.StudentProfile, error)
	CreateWithAccount(ctx context.Context, account *models.Account, profile *models.StudentProfile) error
	Update(ctx context.Context, profile *models.StudentProfile) error
}

// AccountStore is the slice of account persistence the student service
// needs. *repositories.AccountRepository satisfies it.
type AccountStore interface {
	UpdateUsername(ctx context.Context, id int64, username string) error
	Delete(ctx context.Context, id int64) error
}

// StudentInput carries the fields an administrator may set on a student
type StudentInput struct {
	Username string
	Password string
	CourseID *int64
	Cedula   string
	Names    string
	Surnames string
	Grade    *string
	Group    *string
	Phone    string
}

// StudentService handles administrator-side student management
type StudentService struct {
	students StudentStore
	accounts AccountStore
	courses  scope.CourseDirectory
}

// NewStudentService creates a new student service instance
func NewStudentService(students StudentStore, accounts AccountStore, courses scope.CourseDirectory) *StudentService {
	return &StudentService{
		students: students,
		accounts: accounts,
		courses:  courses,
	}
}

func validateStudentInput(in StudentInput) error {
	switch {
	case strings.TrimSpace(in.Cedula) == "":
		return apperrors.NewBadRequestError("cedula cannot be empty")
	case strings.TrimSpace(in.Names) == "":
		return apperrors.NewBadRequestError("names cannot be empty")
	case strings.TrimSpace(in.Surnames) == "":
		return apperrors.NewBadRequestError("surnames cannot be empty")
	case !validation.ValidCedula(strings.TrimSpace(in.Cedula)):
		return apperrors.NewBadRequestError("cedula must be 6 to 10 digits")
	case !validation.ValidPhone(strings.TrimSpace(in.Phone)):
		return apperrors.NewBadRequestError("phone number is not valid")
	}
	return nil
}

// List returns the students visible to the acting administrator through
// the course filter pipeline, ordered by surname then name.
func (s *StudentService) List(ctx context.Context, actor *models.Account, requestedCourseID *int64) (scope.Filter, []*models.StudentProfile, error) {
	filter, err := scope.ResolveCourseFilter(ctx, s.courses, actor, requestedCourseID)
	if err != nil {
		return scope.Filter{}, nil, err
	}

	students, err := s.students.ListByFilter(ctx, filter)
	if err != nil {
		return filter, nil, err
	}

	return filter, students, nil
}

// Profile returns the student profile tied to a login account. Used by
// students reading their own data, so no scope guard applies.
func (s *StudentService) Profile(ctx context.Context, accountID int64) (*models.StudentProfile, error) {
	return s.students.GetByAccountID(ctx, accountID)
}

// Get returns one student, guarded by the acting account's scope
func (s *StudentService) Get(ctx context.Context, actor *models.Account, id int64) (*models.StudentProfile, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sc, err := scope.Resolve(ctx, s.courses, actor)
	if err != nil {
		return nil, err
	}
	if err := scope.Authorize(sc, student.CourseID); err != nil {
		return nil, err
	}

	return student, nil
}

// Create registers a student and their login account in one step. A
// non-superuser administrator may only place the student into a course
// they administer; leaving the course unset is allowed, though it makes
// the student invisible to non-superuser staff until a course is set.
func (s *StudentService) Create(ctx context.Context, actor *models.Account, in StudentInput) (*models.StudentProfile, error) {
	if err := validateStudentInput(in); err != nil {
		return nil, err
	}

	sc, err := scope.Resolve(ctx, s.courses, actor)
	if err != nil {
		return nil, err
	}
	if in.CourseID != nil {
		if _, err := s.courses.GetByID(ctx, *in.CourseID); err != nil {
			return nil, err
		}
		if err := scope.Authorize(sc, in.CourseID); err != nil {
			return nil, err
		}
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{Username: in.Username, Password: hashed}
	profile := &models.StudentProfile{
		CourseID: in.CourseID,
		Cedula:   in.Cedula,
		Names:    in.Names,
		Surnames: in.Surnames,
		Grade:    in.Grade,
		Group:    in.Group,
		Phone:    in.Phone,
	}
	if err := s.students.CreateWithAccount(ctx, account, profile); err != nil {
		return nil, err
	}
	profile.Account = account

	logger.Info().
		Int64("actorID", actor.ID).
		Int64("studentID", profile.ID).
		Str("username", account.Username).
		Msg("Student created")

	return profile, nil
}

// Update edits a student's profile and login name. The guard runs twice:
// against the student's current course, and against the new course when
// the update moves them.
func (s *StudentService) Update(ctx context.Context, actor *models.Account, id int64, in StudentInput) (*models.StudentProfile, error) {
	if err := validateStudentInput(in); err != nil {
		return nil, err
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sc, err := scope.Resolve(ctx, s.courses, actor)
	if err != nil {
		return nil, err
	}
	if err := scope.Authorize(sc, student.CourseID); err != nil {
		return nil, err
	}
	if in.CourseID != nil {
		if _, err := s.courses.GetByID(ctx, *in.CourseID); err != nil {
			return nil, err
		}
		if err := scope.Authorize(sc, in.CourseID); err != nil {
			return nil, err
		}
	}

	student.CourseID = in.CourseID
	student.Cedula = in.Cedula
	student.Names = in.Names
	student.Surnames = in.Surnames
	student.Grade = in.Grade
	student.Group = in.Group
	student.Phone = in.Phone
	if err := s.students.Update(ctx, student); err != nil {
		return nil, err
	}

	if in.Username != "" {
		if err := s.accounts.UpdateUsername(ctx, student.AccountID, in.Username); err != nil {
			return nil, err
		}
	}

	return student, nil
}

// Delete removes a student by deleting their account; the profile,
// attendance and permission rows ride the cascade, feedback messages
// survive with a NULL student reference.
func (s *StudentService) Delete(ctx context.Context, actor *models.Account, id int64) error {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		return err
	}

	sc, err := scope.Resolve(ctx, s.courses, actor)
	if err != nil {
		return err
	}
	if err := scope.Authorize(sc, student.CourseID); err != nil {
		return err
	}

	if err := s.accounts.Delete(ctx, student.AccountID); err != nil {
		return err
	}

	logger.Info().
		Int64("actorID", actor.ID).
		Int64("studentID", id).
		Msg("Student deleted")

	return nil
}
