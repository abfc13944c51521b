package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
	"github.com/drivera/aulanet/internal/pkg/dberrors"
)

// AccountRepository handles database operations for login accounts
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (username, password, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		account.Username, account.Password, account.IsStaff, account.IsSuperuser,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_username_key") {
			return apperrors.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("error creating account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query := `
		SELECT id, username, password, is_staff, is_superuser, created_at
		FROM accounts
		WHERE id = $1
	`

	var account models.Account
	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Username,
		&account.Password,
		&account.IsStaff,
		&account.IsSuperuser,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return &account, nil
}

// GetByUsername retrieves an account by username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `
		SELECT id, username, password, is_staff, is_superuser, created_at
		FROM accounts
		WHERE username = $1
	`

	var account models.Account
	err := r.db.QueryRow(ctx, query, username).Scan(
		&account.ID,
		&account.Username,
		&account.Password,
		&account.IsStaff,
		&account.IsSuperuser,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error retrieving account: %w", err)
	}

	return &account, nil
}

// UpdateUsername changes the login name of an account
func (r *AccountRepository) UpdateUsername(ctx context.Context, id int64, username string) error {
	tag, err := r.db.Exec(ctx, `UPDATE accounts SET username = $1 WHERE id = $2`, username, id)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_username_key") {
			return apperrors.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("error updating account username: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// Delete removes an account. The student profile and its attendance and
// permission rows go with it through ON DELETE CASCADE; feedback keeps
// its rows with a NULL student reference.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// UsernameExists checks if a username is already taken
func (r *AccountRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`,
		username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username existence: %w", err)
	}

	return exists, nil
}
