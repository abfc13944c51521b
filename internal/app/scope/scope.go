package scope

import (
	"context"
	"sort"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
)

// CourseDirectory is the course lookup surface the resolver and the
// filter pipeline need. *repositories.CourseRepository satisfies it.
type CourseDirectory interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	AssignedCourseIDs(ctx context.Context, accountID int64) ([]int64, error)
}

// Scope is the set of courses an account may administer, as a tagged
// variant: either every course, or an explicit subset. Consumers match
// on the variant through AllCourses/Contains instead of re-checking the
// account's superuser flag.
type Scope struct {
	all bool
	ids map[int64]struct{}
}

// AllCourses returns the scope covering every course.
func AllCourses() Scope {
	return Scope{all: true}
}

// Subset returns the scope covering exactly the given course ids.
func Subset(ids ...int64) Scope {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Scope{ids: set}
}

// IsAll reports whether the scope covers every course.
func (s Scope) IsAll() bool {
	return s.all
}

// Contains reports whether the given course id is administrable.
func (s Scope) Contains(courseID int64) bool {
	if s.all {
		return true
	}
	_, ok := s.ids[courseID]
	return ok
}

// ContainsCourseRef is Contains lifted over a nullable course reference.
// A student with no course is visible under the all-courses scope but is
// excluded from any explicit subset; courseless students stay invisible
// to non-superuser staff, matching the course-membership filters used by
// every scoped query.
func (s Scope) ContainsCourseRef(courseID *int64) bool {
	if s.all {
		return true
	}
	if courseID == nil {
		return false
	}
	return s.Contains(*courseID)
}

// CourseIDs returns the subset's course ids in ascending order, or nil
// for the all-courses scope. Repositories feed this to ANY() predicates.
func (s Scope) CourseIDs() []int64 {
	if s.all {
		return nil
	}
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Resolve computes the administrable-course scope for the acting account.
// Superusers cover every course regardless of explicit assignment; any
// other account covers exactly its assigned set. The assignment is
// re-read on every call since it can change between requests.
func Resolve(ctx context.Context, dir CourseDirectory, account *models.Account) (Scope, error) {
	if account.IsSuperuser {
		return AllCourses(), nil
	}
	ids, err := dir.AssignedCourseIDs(ctx, account.ID)
	if err != nil {
		return Scope{}, err
	}
	return Subset(ids...), nil
}

// Authorize is the access guard for a single entity: it allows the
// action when the entity's associated course (possibly nil, via its
// owning student) is inside the scope, and returns ErrCourseForbidden
// otherwise. Callers must check it before any mutation.
func Authorize(s Scope, courseID *int64) error {
	if s.ContainsCourseRef(courseID) {
		return nil
	}
	return apperrors.ErrCourseForbidden
}
