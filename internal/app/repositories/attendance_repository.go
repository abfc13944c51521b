package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
)

// AttendanceRepository handles attendance record database operations.
// There is deliberately no unique key on (student, day): day-level
// uniqueness is owned by the reconciliation service, which always
// queries through FindForStudentInRange before writing.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

// Create inserts a new attendance record. A zero timestamp defaults to
// the database clock.
func (r *AttendanceRepository) Create(ctx context.Context, rec *models.AttendanceRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	query := `
		INSERT INTO attendance_records (student_id, "timestamp", academic_hours, is_present)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		rec.StudentID, rec.Timestamp, rec.AcademicHours, rec.IsPresent,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("error creating attendance record: %w", err)
	}

	return nil
}

// Update rewrites presence, hours and the timestamp of a record
func (r *AttendanceRepository) Update(ctx context.Context, rec *models.AttendanceRecord) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE attendance_records
		SET "timestamp" = $1, academic_hours = $2, is_present = $3
		WHERE id = $4`,
		rec.Timestamp, rec.AcademicHours, rec.IsPresent, rec.ID)
	if err != nil {
		return fmt.Errorf("error updating attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// FindForStudentInRange returns the student's record whose timestamp
// falls in the half-open instant range [from, to), or
// apperrors.ErrResourceNotFound when there is none. Range comparison on
// the stored instant, not date equality, keeps day matching correct for
// timestamps carrying a time-of-day component.
func (r *AttendanceRepository) FindForStudentInRange(ctx context.Context, studentID int64, from, to time.Time) (*models.AttendanceRecord, error) {
	query := `
		SELECT id, student_id, "timestamp", academic_hours, is_present
		FROM attendance_records
		WHERE student_id = $1 AND "timestamp" >= $2 AND "timestamp" < $3
		ORDER BY "timestamp"
		LIMIT 1
	`

	var rec models.AttendanceRecord
	err := r.db.QueryRow(ctx, query, studentID, from, to).Scan(
		&rec.ID, &rec.StudentID, &rec.Timestamp, &rec.AcademicHours, &rec.IsPresent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}

	return &rec, nil
}

// ListForStudentsInRange returns all records of the given students whose
// timestamp falls in [from, to)
func (r *AttendanceRepository) ListForStudentsInRange(ctx context.Context, studentIDs []int64, from, to time.Time) ([]*models.AttendanceRecord, error) {
	query := `
		SELECT id, student_id, "timestamp", academic_hours, is_present
		FROM attendance_records
		WHERE student_id = ANY($1) AND "timestamp" >= $2 AND "timestamp" < $3
	`

	rows, err := r.db.Query(ctx, query, studentIDs, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

// ListPresentForStudent returns the student's present-marked records in
// chronological order, for report aggregation.
func (r *AttendanceRepository) ListPresentForStudent(ctx context.Context, studentID int64) ([]*models.AttendanceRecord, error) {
	query := `
		SELECT id, student_id, "timestamp", academic_hours, is_present
		FROM attendance_records
		WHERE student_id = $1 AND is_present
		ORDER BY "timestamp"
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAttendanceRows(rows)
}

func scanAttendanceRows(rows pgx.Rows) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	for rows.Next() {
		var rec models.AttendanceRecord
		err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Timestamp, &rec.AcademicHours, &rec.IsPresent)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
