package models

import "time"

// DefaultAcademicHours is the duration credit applied when the caller
// supplies no usable hours value.
const DefaultAcademicHours = 2

// AttendanceRecord defines the daily attendance model based on the
// 'attendance_records' table. At most one record exists per student per
// calendar day; that uniqueness is logical, maintained by the attendance
// reconciler through a half-open day-range upsert, not by a database key.
type AttendanceRecord struct {
	ID            int64     `json:"id" db:"id" example:"1"`
	StudentID     int64     `json:"studentId" db:"student_id" example:"7"`
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`                         // Instant of the last save, re-stamped on every update
	AcademicHours int       `json:"academicHours" db:"academic_hours" example:"2"`    // Positive duration credit for reporting totals
	IsPresent     bool      `json:"isPresent" db:"is_present" example:"true"`

	// Relations (populated when needed)
	Student *StudentProfile `json:"student,omitempty"`
}
