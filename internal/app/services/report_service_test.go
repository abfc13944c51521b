package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
)

func TestFormatAttendanceLine(t *testing.T) {
	ts := time.Date(2026, 3, 9, 8, 5, 0, 0, time.UTC)

	tests := []struct {
		name  string
		hours int
		want  string
	}{
		{name: "singular hour", hours: 1, want: "09/03/2026 08:05 (1 hora)"},
		{name: "plural hours", hours: 2, want: "09/03/2026 08:05 (2 horas)"},
		{name: "many hours", hours: 6, want: "09/03/2026 08:05 (6 horas)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &models.AttendanceRecord{Timestamp: ts, AcademicHours: tt.hours}
			assert.Equal(t, tt.want, FormatAttendanceLine(rec))
		})
	}
}

func newReportFixture() (*ReportService, *fakeAttendance) {
	students := &fakeStudents{
		students: []*models.StudentProfile{
			{ID: 1, AccountID: 101, CourseID: int64Ptr(1), Names: "Ana", Surnames: "González"},
			{ID: 2, AccountID: 102, CourseID: int64Ptr(1), Names: "Bruno", Surnames: "Mora"},
			{ID: 3, AccountID: 103, CourseID: int64Ptr(2), Names: "Carla", Surnames: "Pineda"},
		},
	}
	history := &fakeAttendance{}
	svc := NewReportService(students, history, newTestDirectory())
	return svc, history
}

func TestBuildCourseReport(t *testing.T) {
	svc, history := newReportFixture()
	ctx := context.Background()

	history.Create(ctx, &models.AttendanceRecord{
		StudentID: 1, Timestamp: time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC), AcademicHours: 2, IsPresent: true,
	})
	history.Create(ctx, &models.AttendanceRecord{
		StudentID: 1, Timestamp: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), AcademicHours: 1, IsPresent: true,
	})
	// Absence records never appear on the report.
	history.Create(ctx, &models.AttendanceRecord{
		StudentID: 1, Timestamp: time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), AcademicHours: 2, IsPresent: false,
	})
	// Another course's student is out of the roster entirely.
	history.Create(ctx, &models.AttendanceRecord{
		StudentID: 3, Timestamp: time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC), AcademicHours: 2, IsPresent: true,
	})

	generatedAt := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return generatedAt }

	report, err := svc.BuildCourseReport(ctx, staff, 1)
	require.NoError(t, err)

	assert.Equal(t, "MAT101", report.Course.Code)
	assert.Equal(t, generatedAt, report.GeneratedAt)
	require.Len(t, report.Students, 2)

	ana := report.Students[0]
	assert.Equal(t, "González", ana.Student.Surnames)
	require.Len(t, ana.Lines, 2)
	assert.Equal(t, "09/03/2026 08:00 (2 horas)", ana.Lines[0])
	assert.Equal(t, "10/03/2026 08:00 (1 hora)", ana.Lines[1])
	assert.Equal(t, 3, ana.TotalHours)

	bruno := report.Students[1]
	assert.Empty(t, bruno.Lines)
	assert.Equal(t, 0, bruno.TotalHours)
}

func TestBuildCourseReportOutOfScope(t *testing.T) {
	svc, _ := newReportFixture()

	_, err := svc.BuildCourseReport(context.Background(), staff, 2)
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden)
}

func TestBuildCourseReportUnknownCourse(t *testing.T) {
	svc, _ := newReportFixture()

	_, err := svc.BuildCourseReport(context.Background(), superuser, 42)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestBuildCourseReportSuperuserAnyCourse(t *testing.T) {
	svc, history := newReportFixture()
	ctx := context.Background()

	history.Create(ctx, &models.AttendanceRecord{
		StudentID: 3, Timestamp: time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC), AcademicHours: 4, IsPresent: true,
	})

	report, err := svc.BuildCourseReport(ctx, superuser, 2)
	require.NoError(t, err)
	require.Len(t, report.Students, 1)
	assert.Equal(t, 4, report.Students[0].TotalHours)
}
