package scope

import (
	"context"
	"errors"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
)

// Filter is the outcome of the course filter pipeline: the resolved
// scope, the selected course when a valid in-scope one was requested,
// and a non-fatal notice when the requested id did not exist.
type Filter struct {
	Scope  Scope
	Course *models.Course
	Notice string
}

// SelectedCourseID returns the selected course id or nil when no course
// filter is active.
func (f Filter) SelectedCourseID() *int64 {
	if f.Course == nil {
		return nil
	}
	return &f.Course.ID
}

// ResolveCourseFilter applies an optional course selection against the
// acting account's scope. The same policy backs every filterable
// resource (students, attendance rosters, permission requests, feedback):
//
//  1. no course requested: the scoped, unfiltered view;
//  2. unknown course id: a validation notice, then behave as if no
//     filter were requested;
//  3. known course outside the scope: ErrCourseForbidden, terminal;
//  4. otherwise: the view narrowed to exactly that course.
func ResolveCourseFilter(ctx context.Context, dir CourseDirectory, account *models.Account, requestedID *int64) (Filter, error) {
	sc, err := Resolve(ctx, dir, account)
	if err != nil {
		return Filter{}, err
	}

	if requestedID == nil {
		return Filter{Scope: sc}, nil
	}

	course, err := dir.GetByID(ctx, *requestedID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return Filter{Scope: sc, Notice: "the selected course is not valid"}, nil
		}
		return Filter{}, err
	}

	if !sc.Contains(course.ID) {
		return Filter{}, apperrors.ErrCourseForbidden
	}

	return Filter{Scope: sc, Course: course}, nil
}
