package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/drivera/aulanet/internal/app/models"
	appRepos "github.com/drivera/aulanet/internal/app/repositories"
	"github.com/drivera/aulanet/internal/pkg/apperrors"
)

// CreateDefaultData creates the default superuser and sample courses if
// they don't exist. Called at startup after migrations.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	accountRepo := appRepos.NewAccountRepository(dbPool)
	courseRepo := appRepos.NewCourseRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (superuser/courses)...")
	var finalErr error // To collect potential errors without stopping the process

	// --- Sample courses --- //
	defaultCourses := []*appModels.Course{
		{Name: "Matemáticas 101", Code: "MAT101"},
		{Name: "Ciencias Sociales 202", Code: "CSO202"},
		{Name: "Historia 303", Code: "HIS303"},
	}
	for _, course := range defaultCourses {
		err := courseRepo.Create(ctx, course)
		if err != nil && !errors.Is(err, apperrors.ErrCourseAlreadyExists) {
			lgr.Error().Err(err).Str("code", course.Code).Msg("Error creating default course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Default superuser --- //
	exists, err := accountRepo.UsernameExists(ctx, "admin")
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin account exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Msg("Creating default admin account...")

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin123!"), bcrypt.DefaultCost)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &appModels.Account{
				Username:    "admin",
				Password:    string(hashedPassword),
				IsStaff:     true,
				IsSuperuser: true,
			}
			if err := accountRepo.Create(ctx, admin); err != nil {
				lgr.Error().Err(err).Msg("Error creating admin account")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Int64("adminID", admin.ID).Msg("Default admin account created successfully")
			}
		}
	} else {
		lgr.Info().Msg("Admin account already exists, skipping creation")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr // Return collected errors, if any
}
