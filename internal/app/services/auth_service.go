package services

import (
	"context"
	"errors"
	"strings"

	"github.com/drivera/aulanet/internal/app/models"
	"github.com/drivera/aulanet/internal/app/scope"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
	"github.com/drivera/aulanet/internal/pkg/auth"
	"github.com/drivera/aulanet/internal/pkg/logger"
	"github.com/drivera/aulanet/internal/pkg/validation"
)

// AuthAccounts is the account surface authentication needs.
// *repositories.AccountRepository satisfies it.
type AuthAccounts interface {
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
}

// StudentRegistry creates a student profile together with its login
// account. *repositories.StudentRepository satisfies it.
type StudentRegistry interface {
	CreateWithAccount(ctx context.Context, account *models.Account, profile *models.StudentProfile) error
}

// RegisterInput carries the self-registration form fields
type RegisterInput struct {
	Username string
	Password string
	CourseID *int64
	Cedula   string
	Names    string
	Surnames string
	Grade    *string
	Group    *string
	Phone    string
}

// LoginResult is the outcome of a successful credential check
type LoginResult struct {
	Account   *models.Account
	Token     string
	ExpiresIn int
}

// AuthService handles registration and login
type AuthService struct {
	accounts AuthAccounts
	students StudentRegistry
	courses  scope.CourseDirectory
	jwt      *auth.JWTService
}

// NewAuthService creates a new authentication service instance
func NewAuthService(accounts AuthAccounts, students StudentRegistry, courses scope.CourseDirectory, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		accounts: accounts,
		students: students,
		courses:  courses,
		jwt:      jwt,
	}
}

// Register creates a student account and profile in one step. Accounts
// created this way never carry administrative rights.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.StudentProfile, error) {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return nil, apperrors.NewBadRequestError("username cannot be empty")
	case len(in.Password) < validation.PasswordMinLength:
		return nil, apperrors.NewBadRequestError("password must be at least 6 characters")
	case strings.TrimSpace(in.Cedula) == "":
		return nil, apperrors.NewBadRequestError("cedula cannot be empty")
	case strings.TrimSpace(in.Names) == "":
		return nil, apperrors.NewBadRequestError("names cannot be empty")
	case strings.TrimSpace(in.Surnames) == "":
		return nil, apperrors.NewBadRequestError("surnames cannot be empty")
	case !validation.ValidCedula(strings.TrimSpace(in.Cedula)):
		return nil, apperrors.NewBadRequestError("cedula must be 6 to 10 digits")
	case !validation.ValidPhone(strings.TrimSpace(in.Phone)):
		return nil, apperrors.NewBadRequestError("phone number is not valid")
	}

	if in.CourseID != nil {
		if _, err := s.courses.GetByID(ctx, *in.CourseID); err != nil {
			return nil, err
		}
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	account := &models.Account{
		Username: strings.TrimSpace(in.Username),
		Password: hashed,
	}
	profile := &models.StudentProfile{
		CourseID: in.CourseID,
		Cedula:   strings.TrimSpace(in.Cedula),
		Names:    strings.TrimSpace(in.Names),
		Surnames: strings.TrimSpace(in.Surnames),
		Grade:    in.Grade,
		Group:    in.Group,
		Phone:    in.Phone,
	}

	if err := s.students.CreateWithAccount(ctx, account, profile); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("account_id", account.ID).
		Int64("student_id", profile.ID).
		Msg("Student registered")

	profile.Account = account
	return profile, nil
}

// Login checks credentials and issues an access token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwt.GenerateToken(account)
	if err != nil {
		return nil, err
	}

	logger.Debug().Int64("account_id", account.ID).Msg("Login succeeded")

	return &LoginResult{
		Account:   account,
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}
