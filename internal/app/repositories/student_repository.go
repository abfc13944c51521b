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
	"github.com/drivera/aulanet/internal/pkg/dberrors"
)

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const studentColumns = `s.id, s.account_id, s.course_id, s.cedula, s.names, s.surnames, s.grade, s."group", s.phone`

func scanStudent(row pgx.Row) (*models.StudentProfile, error) {
	var s models.StudentProfile
	err := row.Scan(
		&s.ID, &s.AccountID, &s.CourseID, &s.Cedula,
		&s.Names, &s.Surnames, &s.Grade, &s.Group, &s.Phone,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateWithAccount inserts a login account and its student profile in
// one transaction, so a failed profile insert never leaves an orphan
// account behind.
func (r *StudentRepository) CreateWithAccount(ctx context.Context, account *models.Account, profile *models.StudentProfile) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO accounts (username, password, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		account.Username, account.Password, account.IsStaff, account.IsSuperuser,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_username_key") {
			return apperrors.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("error creating account: %w", err)
	}

	profile.AccountID = account.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO student_profiles (account_id, course_id, cedula, names, surnames, grade, "group", phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		profile.AccountID, profile.CourseID, profile.Cedula,
		profile.Names, profile.Surnames, profile.Grade, profile.Group, profile.Phone,
	).Scan(&profile.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_cedula_key") {
			return apperrors.ErrCedulaAlreadyExists
		}
		return fmt.Errorf("error creating student profile: %w", err)
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a student profile by ID, with its course populated
// when one is set.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.StudentProfile, error) {
	query := `
		SELECT ` + studentColumns + `, c.id, c.name, c.code, c.description, a.username
		FROM student_profiles s
		LEFT JOIN courses c ON c.id = s.course_id
		JOIN accounts a ON a.id = s.account_id
		WHERE s.id = $1
	`

	var (
		s        models.StudentProfile
		courseID *int64
		name     *string
		code     *string
		desc     *string
		username string
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.AccountID, &s.CourseID, &s.Cedula,
		&s.Names, &s.Surnames, &s.Grade, &s.Group, &s.Phone,
		&courseID, &name, &code, &desc, &username,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	if courseID != nil {
		s.Course = &models.Course{ID: *courseID, Name: *name, Code: *code, Description: desc}
	}
	s.Account = &models.Account{ID: s.AccountID, Username: username}

	return &s, nil
}

// GetByAccountID retrieves the student profile linked to an account
func (r *StudentRepository) GetByAccountID(ctx context.Context, accountID int64) (*models.StudentProfile, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM student_profiles s
		WHERE s.account_id = $1
	`

	s, err := scanStudent(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotRegistered
		}
		return nil, fmt.Errorf("error retrieving student by account: %w", err)
	}

	return s, nil
}

// ListByFilter retrieves the student roster visible through the given
// course filter, ordered by surnames then names.
func (r *StudentRepository) ListByFilter(ctx context.Context, f scope.Filter) ([]*models.StudentProfile, error) {
	builder := r.sb.Select(
		"s.id", "s.account_id", "s.course_id", "s.cedula",
		"s.names", "s.surnames", "s.grade", `s."group"`, "s.phone",
		"c.name", "c.code",
	).
		From("student_profiles s").
		LeftJoin("courses c ON c.id = s.course_id").
		OrderBy("s.surnames", "s.names")
	if cond := courseCond(f, "s.course_id"); cond != nil {
		builder = builder.Where(cond)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.StudentProfile
	for rows.Next() {
		var (
			s          models.StudentProfile
			courseName *string
			courseCode *string
		)
		err := rows.Scan(
			&s.ID, &s.AccountID, &s.CourseID, &s.Cedula,
			&s.Names, &s.Surnames, &s.Grade, &s.Group, &s.Phone,
			&courseName, &courseCode,
		)
		if err != nil {
			return nil, err
		}
		if s.CourseID != nil {
			s.Course = &models.Course{ID: *s.CourseID, Name: *courseName, Code: *courseCode}
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// CountByFilter counts the students visible through the given filter
func (r *StudentRepository) CountByFilter(ctx context.Context, f scope.Filter) (int, error) {
	builder := r.sb.Select("COUNT(*)").From("student_profiles s")
	if cond := courseCond(f, "s.course_id"); cond != nil {
		builder = builder.Where(cond)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return count, nil
}

// ListRecent retrieves the most recently registered students visible
// through the filter, newest account first.
func (r *StudentRepository) ListRecent(ctx context.Context, f scope.Filter, limit int) ([]*models.StudentProfile, error) {
	builder := r.sb.Select(
		"s.id", "s.account_id", "s.course_id", "s.cedula",
		"s.names", "s.surnames", "s.grade", `s."group"`, "s.phone",
	).
		From("student_profiles s").
		Join("accounts a ON a.id = s.account_id").
		OrderBy("a.created_at DESC").
		Limit(uint64(limit))
	if cond := courseCond(f, "s.course_id"); cond != nil {
		builder = builder.Where(cond)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recent students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.StudentProfile
	for rows.Next() {
		s, err := scanStudentRows(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

func scanStudentRows(rows pgx.Rows) (*models.StudentProfile, error) {
	var s models.StudentProfile
	err := rows.Scan(
		&s.ID, &s.AccountID, &s.CourseID, &s.Cedula,
		&s.Names, &s.Surnames, &s.Grade, &s.Group, &s.Phone,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update rewrites the editable profile fields
func (r *StudentRepository) Update(ctx context.Context, profile *models.StudentProfile) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE student_profiles
		SET course_id = $1, cedula = $2, names = $3, surnames = $4,
		    grade = $5, "group" = $6, phone = $7
		WHERE id = $8`,
		profile.CourseID, profile.Cedula, profile.Names, profile.Surnames,
		profile.Grade, profile.Group, profile.Phone, profile.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "student_profiles_cedula_key") {
			return apperrors.ErrCedulaAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
