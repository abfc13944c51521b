package services

import (
	"context"
	"errors"
	"time"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/scope"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
	"github.com/drivera/aulanet/internal/pkg/helpers"
	"github.com/drivera/aulanet/internal/pkg/logger"
)

// StudentRoster lists the students visible through a course filter.
// *repositories.StudentRepository satisfies it.
type StudentRoster interface {
	ListByFilter(ctx context.Context, f scope.Filter) ([]*models.StudentProfile, error)
}

// AttendanceStore is the persistence surface the reconciler writes
// through. *repositories.AttendanceRepository satisfies it.
type AttendanceStore interface {
	FindForStudentInRange(ctx context.Context, studentID int64, from, to time.Time) (*models.AttendanceRecord, error)
	Create(ctx context.Context, rec *models.AttendanceRecord) error
	Update(ctx context.Context, rec *models.AttendanceRecord) error
	ListForStudentsInRange(ctx context.Context, studentIDs []int64, from, to time.Time) ([]*models.AttendanceRecord, error)
}

// AttendanceService reconciles submitted daily presence data against the
// stored attendance history.
type AttendanceService struct {
	students StudentRoster
	records  AttendanceStore
	courses  scope.CourseDirectory
	now      func() time.Time
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(students StudentRoster, records AttendanceStore, courses scope.CourseDirectory) *AttendanceService {
	return &AttendanceService{
		students: students,
		records:  records,
		courses:  courses,
		now:      time.Now,
	}
}

// NormalizeAcademicHours degrades a missing or non-positive hours value
// to the default instead of failing the batch.
func NormalizeAcademicHours(hours int) int {
	if hours <= 0 {
		return models.DefaultAcademicHours
	}
	return hours
}

// ReconcileDay makes the stored attendance state for the given day match
// the submitted presence set, for every student in the course/scope
// filtered roster. Each student's record for the day is looked up by the
// half-open instant range covering the day and updated in place, or
// created when absent, so repeating the call never duplicates records:
// the last call's presence and hours win. Students outside the roster
// are untouched.
func (s *AttendanceService) ReconcileDay(ctx context.Context, actor *models.Account, requestedCourseID *int64, day time.Time, presentIDs []int64, academicHours int) (scope.Filter, error) {
	filter, err := scope.ResolveCourseFilter(ctx, s.courses, actor, requestedCourseID)
	if err != nil {
		return scope.Filter{}, err
	}

	roster, err := s.students.ListByFilter(ctx, filter)
	if err != nil {
		return filter, err
	}

	present := make(map[int64]struct{}, len(presentIDs))
	for _, id := range presentIDs {
		present[id] = struct{}{}
	}
	hours := NormalizeAcademicHours(academicHours)
	dayStart, dayEnd := helpers.DayBounds(day)

	for _, student := range roster {
		_, isPresent := present[student.ID]

		rec, err := s.records.FindForStudentInRange(ctx, student.ID, dayStart, dayEnd)
		switch {
		case err == nil:
			rec.IsPresent = isPresent
			rec.AcademicHours = hours
			rec.Timestamp = s.now()
			if err := s.records.Update(ctx, rec); err != nil {
				return filter, err
			}
		case errors.Is(err, apperrors.ErrResourceNotFound):
			rec := &models.AttendanceRecord{
				StudentID:     student.ID,
				Timestamp:     s.now(),
				AcademicHours: hours,
				IsPresent:     isPresent,
			}
			if err := s.records.Create(ctx, rec); err != nil {
				return filter, err
			}
		default:
			return filter, err
		}
	}

	logger.Info().
		Int64("actorID", actor.ID).
		Str("day", dayStart.Format(helpers.DateLayout)).
		Int("roster", len(roster)).
		Int("present", len(presentIDs)).
		Msg("Attendance reconciled")

	return filter, nil
}

// PresenceState is the tri-state day status of one roster entry: marked
// present, marked absent, or no record at all.
type PresenceState string

const (
	PresencePresent  PresenceState = "PRESENT"
	PresenceAbsent   PresenceState = "ABSENT"
	PresenceNoRecord PresenceState = "NO_RECORD"
)

// DaySheetEntry pairs a roster student with their status for the day
type DaySheetEntry struct {
	Student *models.StudentProfile
	State   PresenceState
}

// DaySheet is the roster view for one day under one course filter
type DaySheet struct {
	Day     time.Time
	Filter  scope.Filter
	Entries []DaySheetEntry
	// Taken reports whether any record exists for the day, i.e. whether
	// attendance was already taken at least once.
	Taken bool
}

// DaySheet builds the attendance sheet for a day: the filtered roster
// with each student's recorded state, reading records by the same
// half-open day range the reconciler writes through.
func (s *AttendanceService) DaySheet(ctx context.Context, actor *models.Account, requestedCourseID *int64, day time.Time) (*DaySheet, error) {
	filter, err := scope.ResolveCourseFilter(ctx, s.courses, actor, requestedCourseID)
	if err != nil {
		return nil, err
	}

	roster, err := s.students.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(roster))
	for i, student := range roster {
		ids[i] = student.ID
	}

	dayStart, dayEnd := helpers.DayBounds(day)
	records, err := s.records.ListForStudentsInRange(ctx, ids, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[int64]*models.AttendanceRecord, len(records))
	for _, rec := range records {
		byStudent[rec.StudentID] = rec
	}

	sheet := &DaySheet{
		Day:    dayStart,
		Filter: filter,
		Taken:  len(records) > 0,
	}
	for _, student := range roster {
		state := PresenceNoRecord
		if rec, ok := byStudent[student.ID]; ok {
			if rec.IsPresent {
				state = PresencePresent
			} else {
				state = PresenceAbsent
			}
		}
		sheet.Entries = append(sheet.Entries, DaySheetEntry{Student: student, State: state})
	}

	return sheet, nil
}
