package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
	"github.com/drivera/aulanet/internal/pkg/dberrors"
)

// CourseRepository handles course database operations. It also owns the
// account_courses assignment table, which makes it the course directory
// for scope resolution.
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("name", "code", "description").
		Values(course.Name, course.Code, course.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select("id", "name", "code", "description").
		From("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	var course models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.ID, &course.Name, &course.Code, &course.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves all courses ordered by name
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "name", "code", "description").
		From("courses").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.Code, &course.Description); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// GetByIDs retrieves the courses with the given ids, ordered by name
func (r *CourseRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "name", "code", "description").
		From("courses").
		Where(squirrel.Expr("id = ANY(?)", ids)).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(&course.ID, &course.Name, &course.Code, &course.Description); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// AssignedCourseIDs returns the ids of the courses assigned to a staff
// account. Scope resolution re-reads this on every request; assignment
// changes take effect immediately.
func (r *CourseRepository) AssignedCourseIDs(ctx context.Context, accountID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT course_id FROM account_courses WHERE account_id = $1`, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing assigned courses: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// Assign adds a course to a staff account's administrable set.
// Assigning twice is a no-op.
func (r *CourseRepository) Assign(ctx context.Context, accountID, courseID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO account_courses (account_id, course_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		accountID, courseID)
	if err != nil {
		return fmt.Errorf("error assigning course: %w", err)
	}
	return nil
}

// Unassign removes a course from a staff account's administrable set
func (r *CourseRepository) Unassign(ctx context.Context, accountID, courseID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM account_courses WHERE account_id = $1 AND course_id = $2`,
		accountID, courseID)
	if err != nil {
		return fmt.Errorf("error unassigning course: %w", err)
	}
	return nil
}

// Delete removes a course. Enrolled students keep their profiles with a
// NULL course reference (ON DELETE SET NULL).
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}
