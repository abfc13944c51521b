package scope

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
)

type fakeDirectory struct {
	courses     map[int64]*models.Course
	assignments map[int64][]int64
}

func (d *fakeDirectory) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := d.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (d *fakeDirectory) AssignedCourseIDs(_ context.Context, accountID int64) ([]int64, error) {
	return d.assignments[accountID], nil
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		courses: map[int64]*models.Course{
			1: {ID: 1, Name: "Matemáticas 101", Code: "MAT101"},
			2: {ID: 2, Name: "Historia 303", Code: "HIS303"},
		},
		assignments: map[int64][]int64{
			10: {1},
		},
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestResolveSuperuserCoversEverything(t *testing.T) {
	dir := newFakeDirectory()
	admin := &models.Account{ID: 99, IsSuperuser: true}

	sc, err := Resolve(context.Background(), dir, admin)
	require.NoError(t, err)

	assert.True(t, sc.IsAll())
	assert.True(t, sc.Contains(1))
	assert.True(t, sc.Contains(12345))
	assert.Nil(t, sc.CourseIDs())
}

func TestResolveStaffCoversAssignedSet(t *testing.T) {
	dir := newFakeDirectory()
	staff := &models.Account{ID: 10, IsStaff: true}

	sc, err := Resolve(context.Background(), dir, staff)
	require.NoError(t, err)

	assert.False(t, sc.IsAll())
	assert.True(t, sc.Contains(1))
	assert.False(t, sc.Contains(2))
	assert.Equal(t, []int64{1}, sc.CourseIDs())
}

func TestResolveStaffWithoutAssignmentsSeesNothing(t *testing.T) {
	dir := newFakeDirectory()
	staff := &models.Account{ID: 20, IsStaff: true}

	sc, err := Resolve(context.Background(), dir, staff)
	require.NoError(t, err)

	assert.False(t, sc.IsAll())
	assert.False(t, sc.Contains(1))
	assert.Empty(t, sc.CourseIDs())
}

func TestContainsCourseRefNilCourse(t *testing.T) {
	tests := []struct {
		name     string
		scope    Scope
		courseID *int64
		want     bool
	}{
		{"all scope sees courseless students", AllCourses(), nil, true},
		{"subset never sees courseless students", Subset(1, 2), nil, false},
		{"subset sees its own course", Subset(1, 2), int64Ptr(2), true},
		{"subset rejects a foreign course", Subset(1, 2), int64Ptr(3), false},
		{"empty subset rejects everything", Subset(), int64Ptr(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.scope.ContainsCourseRef(tt.courseID))
		})
	}
}

func TestCourseIDsSorted(t *testing.T) {
	sc := Subset(7, 3, 5)
	assert.Equal(t, []int64{3, 5, 7}, sc.CourseIDs())
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(AllCourses(), nil))
	assert.NoError(t, Authorize(Subset(1), int64Ptr(1)))

	err := Authorize(Subset(1), int64Ptr(2))
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden)

	err = Authorize(Subset(1), nil)
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden)
}
