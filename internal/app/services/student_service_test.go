package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
	"github.com/drivera/aulanet/internal/pkg/auth"
)

func newStudentFixture() (*StudentService, *fakeStudents, *fakeAccounts) {
	students := &fakeStudents{
		students: []*models.StudentProfile{
			{ID: 1, AccountID: 101, CourseID: int64Ptr(1), Cedula: "10012345", Names: "Ana", Surnames: "González"},
			{ID: 3, AccountID: 103, CourseID: int64Ptr(2), Cedula: "30012345", Names: "Carla", Surnames: "Pineda"},
			{ID: 4, AccountID: 104, CourseID: nil, Cedula: "40012345", Names: "Diego", Surnames: "Rojas"},
		},
	}
	accounts := &fakeAccounts{}
	svc := NewStudentService(students, accounts, newTestDirectory())
	return svc, students, accounts
}

func validInput() StudentInput {
	return StudentInput{
		Username: "nuevo",
		Password: "secreto1",
		CourseID: int64Ptr(1),
		Cedula:   "99912345",
		Names:    "Elena",
		Surnames: "Suárez",
	}
}

func TestListScopesRoster(t *testing.T) {
	svc, _, _ := newStudentFixture()

	_, scoped, err := svc.List(context.Background(), staff, nil)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "González", scoped[0].Surnames)

	// Courseless students surface only in the all-courses view.
	_, all, err := svc.List(context.Background(), superuser, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetGuardsByCourse(t *testing.T) {
	svc, _, _ := newStudentFixture()
	ctx := context.Background()

	student, err := svc.Get(ctx, staff, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", student.Names)

	_, err = svc.Get(ctx, staff, 3)
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden)

	_, err = svc.Get(ctx, staff, 4)
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden, "a courseless student is outside a partial scope")

	_, err = svc.Get(ctx, superuser, 4)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, superuser, 404)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestProfileBypassesScope(t *testing.T) {
	svc, _, _ := newStudentFixture()

	profile, err := svc.Profile(context.Background(), 103)
	require.NoError(t, err)
	assert.Equal(t, int64(3), profile.ID)

	_, err = svc.Profile(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotRegistered)
}

func TestCreateStudent(t *testing.T) {
	svc, students, _ := newStudentFixture()

	profile, err := svc.Create(context.Background(), staff, validInput())
	require.NoError(t, err)

	assert.NotZero(t, profile.ID)
	require.NotNil(t, profile.Account)
	assert.Equal(t, "nuevo", profile.Account.Username)
	assert.True(t, auth.CheckPassword(profile.Account.Password, "secreto1"), "password is stored hashed")
	assert.Len(t, students.students, 4)
}

func TestCreateStudentCourseGuard(t *testing.T) {
	svc, _, _ := newStudentFixture()
	ctx := context.Background()

	in := validInput()
	in.CourseID = int64Ptr(2)
	_, err := svc.Create(ctx, staff, in)
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden)

	in.CourseID = int64Ptr(42)
	_, err = svc.Create(ctx, superuser, in)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	// A courseless student may be created by anyone with admin access.
	in.CourseID = nil
	_, err = svc.Create(ctx, staff, in)
	assert.NoError(t, err)
}

func TestCreateStudentValidation(t *testing.T) {
	svc, _, _ := newStudentFixture()

	tests := []struct {
		name   string
		mutate func(*StudentInput)
	}{
		{name: "missing cedula", mutate: func(in *StudentInput) { in.Cedula = " " }},
		{name: "missing names", mutate: func(in *StudentInput) { in.Names = "" }},
		{name: "missing surnames", mutate: func(in *StudentInput) { in.Surnames = "" }},
		{name: "malformed cedula", mutate: func(in *StudentInput) { in.Cedula = "12ab56" }},
		{name: "cedula too short", mutate: func(in *StudentInput) { in.Cedula = "123" }},
		{name: "malformed phone", mutate: func(in *StudentInput) { in.Phone = "no-phone" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), superuser, in)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest)
		})
	}
}

func TestUpdateStudent(t *testing.T) {
	svc, students, accounts := newStudentFixture()

	in := StudentInput{
		Username: "ana.nueva",
		CourseID: int64Ptr(1),
		Cedula:   "10012345",
		Names:    "Ana María",
		Surnames: "González",
		Phone:    "555-1234",
	}
	updated, err := svc.Update(context.Background(), staff, 1, in)
	require.NoError(t, err)

	assert.Equal(t, "Ana María", updated.Names)
	assert.Equal(t, "555-1234", updated.Phone)
	assert.Equal(t, "Ana María", students.students[0].Names)
	assert.Equal(t, "ana.nueva", accounts.usernames[101])
}

func TestUpdateStudentKeepsUsernameWhenEmpty(t *testing.T) {
	svc, _, accounts := newStudentFixture()

	in := StudentInput{CourseID: int64Ptr(1), Cedula: "10012345", Names: "Ana", Surnames: "González"}
	_, err := svc.Update(context.Background(), staff, 1, in)
	require.NoError(t, err)
	assert.Empty(t, accounts.usernames)
}

func TestUpdateStudentGuardsBothCourses(t *testing.T) {
	svc, _, _ := newStudentFixture()
	ctx := context.Background()

	// Current course out of scope: staff cannot touch student 3.
	in := StudentInput{CourseID: int64Ptr(1), Cedula: "30012345", Names: "Carla", Surnames: "Pineda"}
	_, err := svc.Update(ctx, staff, 3, in)
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden)

	// Target course out of scope: staff cannot move student 1 into course 2.
	in = StudentInput{CourseID: int64Ptr(2), Cedula: "10012345", Names: "Ana", Surnames: "González"}
	_, err = svc.Update(ctx, staff, 1, in)
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden)
}

func TestDeleteStudentRemovesAccount(t *testing.T) {
	svc, _, accounts := newStudentFixture()

	require.NoError(t, svc.Delete(context.Background(), staff, 1))
	assert.Equal(t, []int64{101}, accounts.deleted)
}

func TestDeleteStudentOutOfScope(t *testing.T) {
	svc, _, accounts := newStudentFixture()

	err := svc.Delete(context.Background(), staff, 3)
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden)
	assert.Empty(t, accounts.deleted)
}
