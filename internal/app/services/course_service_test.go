package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
)

type fakeCourses struct {
	*fakeDirectory
	nextID int64
}

type fakeAccountLookup struct {
	accounts map[int64]*models.Account
}

func (r *fakeAccountLookup) GetByID(_ context.Context, id int64) (*models.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return account, nil
}

func (r *fakeCourses) Create(_ context.Context, course *models.Course) error {
	for _, existing := range r.courses {
		if existing.Code == course.Code {
			return apperrors.ErrCourseAlreadyExists
		}
	}
	r.nextID++
	course.ID = r.nextID + 100
	r.courses[course.ID] = course
	return nil
}

func (r *fakeCourses) GetAll(_ context.Context) ([]*models.Course, error) {
	var out []*models.Course
	for _, course := range r.courses {
		out = append(out, course)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCourses) GetByIDs(_ context.Context, ids []int64) ([]*models.Course, error) {
	var out []*models.Course
	for _, id := range ids {
		if course, ok := r.courses[id]; ok {
			out = append(out, course)
		}
	}
	return out, nil
}

func (r *fakeCourses) Assign(_ context.Context, accountID, courseID int64) error {
	for _, id := range r.assignments[accountID] {
		if id == courseID {
			return nil
		}
	}
	r.assignments[accountID] = append(r.assignments[accountID], courseID)
	return nil
}

func (r *fakeCourses) Unassign(_ context.Context, accountID, courseID int64) error {
	ids := r.assignments[accountID]
	for i, id := range ids {
		if id == courseID {
			r.assignments[accountID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeCourses) Delete(_ context.Context, id int64) error {
	if _, ok := r.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func newCourseFixture() (*CourseService, *fakeCourses) {
	store := &fakeCourses{fakeDirectory: newTestDirectory()}
	accounts := &fakeAccountLookup{accounts: map[int64]*models.Account{
		10: staff,
		99: superuser,
		55: {ID: 55, Username: "sin.permisos"},
	}}
	return NewCourseService(store, accounts), store
}

func TestListAdministrable(t *testing.T) {
	svc, _ := newCourseFixture()
	ctx := context.Background()

	all, err := svc.ListAdministrable(ctx, superuser)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.ListAdministrable(ctx, staff)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "MAT101", mine[0].Code)

	unassigned := &models.Account{ID: 55, Username: "sin.cursos", IsStaff: true}
	none, err := svc.ListAdministrable(ctx, unassigned)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetCourseGuarded(t *testing.T) {
	svc, _ := newCourseFixture()
	ctx := context.Background()

	course, err := svc.Get(ctx, staff, 1)
	require.NoError(t, err)
	assert.Equal(t, "MAT101", course.Code)

	_, err = svc.Get(ctx, staff, 2)
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden)

	_, err = svc.Get(ctx, superuser, 42)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestCreateCourseSuperuserOnly(t *testing.T) {
	svc, store := newCourseFixture()
	ctx := context.Background()

	err := svc.Create(ctx, staff, &models.Course{Name: "Física 404", Code: "FIS404"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	course := &models.Course{Name: "Física 404", Code: "FIS404"}
	require.NoError(t, svc.Create(ctx, superuser, course))
	assert.NotZero(t, course.ID)
	assert.Len(t, store.courses, 3)
}

func TestCreateCourseValidation(t *testing.T) {
	svc, _ := newCourseFixture()
	ctx := context.Background()

	err := svc.Create(ctx, superuser, &models.Course{Code: "FIS404"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	err = svc.Create(ctx, superuser, &models.Course{Name: "Física 404"})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestCreateCourseDuplicateCode(t *testing.T) {
	svc, _ := newCourseFixture()

	err := svc.Create(context.Background(), superuser, &models.Course{Name: "Otra Mate", Code: "MAT101"})
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)
}

func TestDeleteCourse(t *testing.T) {
	svc, store := newCourseFixture()
	ctx := context.Background()

	err := svc.Delete(ctx, staff, 1)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, superuser, 1))
	assert.Len(t, store.courses, 1)

	err = svc.Delete(ctx, superuser, 42)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestAssignAdministrator(t *testing.T) {
	svc, store := newCourseFixture()
	ctx := context.Background()

	err := svc.AssignAdministrator(ctx, staff, 2, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.AssignAdministrator(ctx, superuser, 2, 10))
	assert.ElementsMatch(t, []int64{1, 2}, store.assignments[10])

	err = svc.AssignAdministrator(ctx, superuser, 42, 10)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	err = svc.AssignAdministrator(ctx, superuser, 2, 404)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)

	err = svc.AssignAdministrator(ctx, superuser, 2, 55)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest, "non-staff accounts cannot administer courses")
}

func TestUnassignAdministrator(t *testing.T) {
	svc, store := newCourseFixture()
	ctx := context.Background()

	err := svc.UnassignAdministrator(ctx, staff, 1, 10)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.UnassignAdministrator(ctx, superuser, 1, 10))
	assert.Empty(t, store.assignments[10])

	// Unassigning an absent pair is a no-op.
	require.NoError(t, svc.UnassignAdministrator(ctx, superuser, 1, 10))
}
