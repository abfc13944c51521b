package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/scope"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
)

// PermissionRepository handles leave-permission database operations
type PermissionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPermissionRepository creates a new PermissionRepository
func NewPermissionRepository(db *pgxpool.Pool) *PermissionRepository {
	return &PermissionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new permission request in PENDING state
func (r *PermissionRepository) Create(ctx context.Context, req *models.PermissionRequest) error {
	req.Status = models.PermissionPending

	query := `
		INSERT INTO permission_requests (student_id, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		req.StudentID, req.StartDate, req.EndDate, req.Reason, req.Status,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating permission request: %w", err)
	}

	return nil
}

// GetByID retrieves a permission request with its owning student
// attached, so callers can run the course guard against the student's
// course reference.
func (r *PermissionRepository) GetByID(ctx context.Context, id int64) (*models.PermissionRequest, error) {
	query := `
		SELECT p.id, p.student_id, p.start_date, p.end_date, p.reason, p.status, p.created_at,
		       s.id, s.account_id, s.course_id, s.cedula, s.names, s.surnames, s.grade, s."group", s.phone
		FROM permission_requests p
		JOIN student_profiles s ON s.id = p.student_id
		WHERE p.id = $1
	`

	var (
		req models.PermissionRequest
		s   models.StudentProfile
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.StudentID, &req.StartDate, &req.EndDate, &req.Reason, &req.Status, &req.CreatedAt,
		&s.ID, &s.AccountID, &s.CourseID, &s.Cedula, &s.Names, &s.Surnames, &s.Grade, &s.Group, &s.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPermissionRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving permission request: %w", err)
	}

	req.Student = &s
	return &req, nil
}

// UpdateStatus moves a request into a new state, but only from PENDING.
// The WHERE clause makes terminal states immutable at the storage level
// too; zero affected rows with an existing id means the request was
// already decided.
func (r *PermissionRepository) UpdateStatus(ctx context.Context, id int64, status models.PermissionStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE permission_requests
		SET status = $1
		WHERE id = $2 AND status = $3`,
		status, id, models.PermissionPending)
	if err != nil {
		return fmt.Errorf("error updating permission status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM permission_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("error checking permission request existence: %w", err)
		}
		if exists {
			return apperrors.ErrPermissionAlreadyDecided
		}
		return apperrors.ErrPermissionRequestNotFound
	}
	return nil
}

// ListByStudent retrieves a student's own requests, newest first
func (r *PermissionRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.PermissionRequest, error) {
	query := `
		SELECT id, student_id, start_date, end_date, reason, status, created_at
		FROM permission_requests
		WHERE student_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.PermissionRequest
	for rows.Next() {
		var req models.PermissionRequest
		err := rows.Scan(&req.ID, &req.StudentID, &req.StartDate, &req.EndDate,
			&req.Reason, &req.Status, &req.CreatedAt)
		if err != nil {
			return nil, err
		}
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// ListByFilter retrieves the permission requests whose owning student is
// visible through the course filter, newest first. Optionally narrowed
// to a single status.
func (r *PermissionRepository) ListByFilter(ctx context.Context, f scope.Filter, status *models.PermissionStatus, limit int) ([]*models.PermissionRequest, error) {
	builder := r.sb.Select(
		"p.id", "p.student_id", "p.start_date", "p.end_date", "p.reason", "p.status", "p.created_at",
		"s.names", "s.surnames", "s.course_id",
	).
		From("permission_requests p").
		Join("student_profiles s ON s.id = p.student_id").
		OrderBy("p.created_at DESC")
	if cond := courseCond(f, "s.course_id"); cond != nil {
		builder = builder.Where(cond)
	}
	if status != nil {
		builder = builder.Where(squirrel.Eq{"p.status": *status})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list permissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.PermissionRequest
	for rows.Next() {
		var (
			req models.PermissionRequest
			s   models.StudentProfile
		)
		err := rows.Scan(
			&req.ID, &req.StudentID, &req.StartDate, &req.EndDate, &req.Reason, &req.Status, &req.CreatedAt,
			&s.Names, &s.Surnames, &s.CourseID,
		)
		if err != nil {
			return nil, err
		}
		s.ID = req.StudentID
		req.Student = &s
		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// CountPendingByFilter counts the pending requests visible through the filter
func (r *PermissionRepository) CountPendingByFilter(ctx context.Context, f scope.Filter) (int, error) {
	builder := r.sb.Select("COUNT(*)").
		From("permission_requests p").
		Join("student_profiles s ON s.id = p.student_id").
		Where(squirrel.Eq{"p.status": models.PermissionPending})
	if cond := courseCond(f, "s.course_id"); cond != nil {
		builder = builder.Where(cond)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count pending query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting pending requests: %w", err)
	}

	return count, nil
}
