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

func newAttendanceFixture() (*AttendanceService, *fakeStudents, *fakeAttendance) {
	students := &fakeStudents{
		students: []*models.StudentProfile{
			{ID: 1, AccountID: 101, CourseID: int64Ptr(1), Cedula: "100", Names: "Ana", Surnames: "González"},
			{ID: 2, AccountID: 102, CourseID: int64Ptr(1), Cedula: "200", Names: "Bruno", Surnames: "Mora"},
			{ID: 3, AccountID: 103, CourseID: int64Ptr(2), Cedula: "300", Names: "Carla", Surnames: "Pineda"},
		},
	}
	records := &fakeAttendance{}
	svc := NewAttendanceService(students, records, newTestDirectory())
	return svc, students, records
}

func TestNormalizeAcademicHours(t *testing.T) {
	tests := []struct {
		name  string
		hours int
		want  int
	}{
		{name: "zero falls back to default", hours: 0, want: models.DefaultAcademicHours},
		{name: "negative falls back to default", hours: -3, want: models.DefaultAcademicHours},
		{name: "one is kept", hours: 1, want: 1},
		{name: "four is kept", hours: 4, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAcademicHours(tt.hours))
		})
	}
}

func TestReconcileDayCreatesRecordsForWholeRoster(t *testing.T) {
	svc, _, records := newAttendanceFixture()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := svc.ReconcileDay(context.Background(), staff, nil, day, []int64{1}, 2)
	require.NoError(t, err)

	// Staff scope covers course 1 only, so student 3 gets no record.
	assert.Len(t, records.forStudent(1), 1)
	assert.Len(t, records.forStudent(2), 1)
	assert.Empty(t, records.forStudent(3))

	assert.True(t, records.forStudent(1)[0].IsPresent)
	assert.False(t, records.forStudent(2)[0].IsPresent)
	assert.Equal(t, 2, records.forStudent(1)[0].AcademicHours)
}

func TestReconcileDayIsIdempotent(t *testing.T) {
	svc, _, records := newAttendanceFixture()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	firstSave := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	secondSave := time.Date(2026, 3, 9, 15, 30, 0, 0, time.UTC)

	svc.now = func() time.Time { return firstSave }
	_, err := svc.ReconcileDay(context.Background(), staff, nil, day, []int64{1, 2}, 2)
	require.NoError(t, err)

	svc.now = func() time.Time { return secondSave }
	_, err = svc.ReconcileDay(context.Background(), staff, nil, day, []int64{2}, 3)
	require.NoError(t, err)

	// Still one record per student: the second save updated in place.
	require.Len(t, records.forStudent(1), 1)
	require.Len(t, records.forStudent(2), 1)

	rec1 := records.forStudent(1)[0]
	rec2 := records.forStudent(2)[0]
	assert.False(t, rec1.IsPresent, "last call wins: student 1 was dropped from the present set")
	assert.True(t, rec2.IsPresent)
	assert.Equal(t, 3, rec1.AcademicHours)
	assert.Equal(t, 3, rec2.AcademicHours)
	assert.Equal(t, secondSave, rec1.Timestamp, "timestamp is re-stamped on every save")
	assert.Equal(t, secondSave, rec2.Timestamp)
}

func TestReconcileDayUsesHalfOpenDayRange(t *testing.T) {
	svc, _, records := newAttendanceFixture()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	// A record at the very end of the day belongs to it; one just past
	// midnight belongs to the next day and must not be touched.
	records.Create(context.Background(), &models.AttendanceRecord{
		StudentID: 1, Timestamp: time.Date(2026, 3, 9, 23, 59, 59, 0, time.UTC), AcademicHours: 2, IsPresent: false,
	})
	records.Create(context.Background(), &models.AttendanceRecord{
		StudentID: 2, Timestamp: time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC), AcademicHours: 2, IsPresent: false,
	})

	saveTime := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return saveTime }
	_, err := svc.ReconcileDay(context.Background(), staff, nil, day, []int64{1, 2}, 2)
	require.NoError(t, err)

	require.Len(t, records.forStudent(1), 1, "same-day record was updated, not duplicated")
	assert.True(t, records.forStudent(1)[0].IsPresent)
	assert.Equal(t, saveTime, records.forStudent(1)[0].Timestamp)

	recs2 := records.forStudent(2)
	require.Len(t, recs2, 2, "next-day record untouched, a fresh one created for the day")
	assert.False(t, recs2[0].IsPresent, "record outside the day keeps its state")
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC), recs2[0].Timestamp)
	assert.True(t, recs2[1].IsPresent)
}

func TestReconcileDayNormalizesHours(t *testing.T) {
	svc, _, records := newAttendanceFixture()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := svc.ReconcileDay(context.Background(), staff, nil, day, []int64{1}, 0)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultAcademicHours, records.forStudent(1)[0].AcademicHours)
}

func TestReconcileDayWithCourseSelection(t *testing.T) {
	svc, _, records := newAttendanceFixture()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	filter, err := svc.ReconcileDay(context.Background(), superuser, int64Ptr(2), day, []int64{3}, 2)
	require.NoError(t, err)

	require.NotNil(t, filter.Course)
	assert.Equal(t, int64(2), filter.Course.ID)
	assert.Empty(t, records.forStudent(1), "students of other courses are untouched")
	assert.Empty(t, records.forStudent(2))
	assert.Len(t, records.forStudent(3), 1)
}

func TestReconcileDayOutOfScopeCourseIsForbidden(t *testing.T) {
	svc, _, records := newAttendanceFixture()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	_, err := svc.ReconcileDay(context.Background(), staff, int64Ptr(2), day, []int64{3}, 2)
	assert.ErrorIs(t, err, apperrors.ErrCourseForbidden)
	assert.Empty(t, records.records, "nothing is written when the guard rejects")
}

func TestReconcileDayUnknownCourseFallsBackWithNotice(t *testing.T) {
	svc, _, records := newAttendanceFixture()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	filter, err := svc.ReconcileDay(context.Background(), staff, int64Ptr(77), day, []int64{1}, 2)
	require.NoError(t, err)

	assert.Nil(t, filter.Course)
	assert.NotEmpty(t, filter.Notice)
	assert.Len(t, records.forStudent(1), 1, "the scoped roster is still reconciled")
}

func TestDaySheetStates(t *testing.T) {
	svc, _, records := newAttendanceFixture()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	records.Create(context.Background(), &models.AttendanceRecord{
		StudentID: 1, Timestamp: time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC), AcademicHours: 2, IsPresent: true,
	})
	records.Create(context.Background(), &models.AttendanceRecord{
		StudentID: 2, Timestamp: time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC), AcademicHours: 2, IsPresent: false,
	})

	sheet, err := svc.DaySheet(context.Background(), superuser, nil, day)
	require.NoError(t, err)

	assert.True(t, sheet.Taken)
	require.Len(t, sheet.Entries, 3)

	states := make(map[int64]PresenceState, len(sheet.Entries))
	for _, entry := range sheet.Entries {
		states[entry.Student.ID] = entry.State
	}
	assert.Equal(t, PresencePresent, states[1])
	assert.Equal(t, PresenceAbsent, states[2])
	assert.Equal(t, PresenceNoRecord, states[3])
}

func TestDaySheetNotTakenWhenNoRecords(t *testing.T) {
	svc, _, records := newAttendanceFixture()
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	// A record on another day does not count for this one.
	records.Create(context.Background(), &models.AttendanceRecord{
		StudentID: 1, Timestamp: time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC), AcademicHours: 2, IsPresent: true,
	})

	sheet, err := svc.DaySheet(context.Background(), staff, nil, day)
	require.NoError(t, err)

	assert.False(t, sheet.Taken)
	for _, entry := range sheet.Entries {
		assert.Equal(t, PresenceNoRecord, entry.State)
	}
}
