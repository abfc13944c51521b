package services

import (
	"context"
	"fmt"
	"time"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/scope"
)

// reportTimestampLayout formats the record instant on report lines.
const reportTimestampLayout = "02/01/2006 15:04"

// AttendanceHistory reads a student's present-marked history in
// chronological order. *repositories.AttendanceRepository satisfies it.
type AttendanceHistory interface {
	ListPresentForStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error)
}

// StudentAttendanceSummary is one student's row in a course report: the
// rendered line per attended record and the hour total over exactly
// those records.
type StudentAttendanceSummary struct {
	Student    *models.StudentProfile
	Lines      []string
	TotalHours int
}

// CourseReport is the aggregate handed to the PDF renderer. The
// aggregator does no formatting beyond the pluralized line text and the
// numeric totals.
type CourseReport struct {
	Course      *models.Course
	GeneratedAt time.Time
	Students    []StudentAttendanceSummary
}

// ReportService aggregates attendance history for export
type ReportService struct {
	students StudentRoster
	history  AttendanceHistory
	courses  scope.CourseDirectory
	now      func() time.Time
}

// NewReportService creates a new report service instance
func NewReportService(students StudentRoster, history AttendanceHistory, courses scope.CourseDirectory) *ReportService {
	return &ReportService{
		students: students,
		history:  history,
		courses:  courses,
		now:      time.Now,
	}
}

// FormatAttendanceLine renders one attended record as
// "<timestamp> (<hours> hora|horas)", singular only for exactly one hour.
func FormatAttendanceLine(rec *models.AttendanceRecord) string {
	unit := "horas"
	if rec.AcademicHours == 1 {
		unit = "hora"
	}
	return fmt.Sprintf("%s (%d %s)", rec.Timestamp.Format(reportTimestampLayout), rec.AcademicHours, unit)
}

// BuildCourseReport collects, for every student of the course ordered by
// surname then name, the chronological list of present-marked records
// and their hour total. The acting account must administer the course;
// a valid course outside the scope is a forbidden outcome, not a
// not-found one.
func (s *ReportService) BuildCourseReport(ctx context.Context, actor *models.Account, courseID int64) (*CourseReport, error) {
	course, err := s.courses.GetByID(ctx, courseID)
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

	roster, err := s.students.ListByFilter(ctx, scope.Filter{Scope: sc, Course: course})
	if err != nil {
		return nil, err
	}

	report := &CourseReport{
		Course:      course,
		GeneratedAt: s.now(),
	}
	for _, student := range roster {
		records, err := s.history.ListPresentForStudent(ctx, student.ID)
		if err != nil {
			return nil, err
		}

		summary := StudentAttendanceSummary{Student: student}
		for _, rec := range records {
			summary.Lines = append(summary.Lines, FormatAttendanceLine(rec))
			summary.TotalHours += rec.AcademicHours
		}
		report.Students = append(report.Students, summary)
	}

	return report, nil
}
