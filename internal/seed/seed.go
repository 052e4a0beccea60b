package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/app/repositories"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
	"github.com/lucasferr/cursada/internal/pkg/auth"
)

// CreateDefaultData seeds the default admin account and starter categories.
// Existing rows are left untouched; errors are collected rather than
// aborting startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	categoryRepo := repositories.NewCategoryRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin account --- //
	adminEmail := "admin@cursada.app"
	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking for default admin account")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		hashed, err := auth.HashPassword("ChangeMe123!")
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing default admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			admin := &models.User{
				Email:     adminEmail,
				Password:  hashed,
				FirstName: "Default",
				LastName:  "Admin",
				RoleType:  models.RoleAdmin,
				IsActive:  true,
			}
			if err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				lgr.Error().Err(err).Msg("Error creating default admin account")
				finalErr = errors.Join(finalErr, err)
			} else {
				lgr.Info().Str("email", adminEmail).Msg("Default admin account created")
			}
		}
	}

	// --- Starter categories --- //
	for _, name := range []string{"Programming", "Mathematics", "Design"} {
		category := &models.Category{Name: name}
		if err := categoryRepo.Create(ctx, category); err != nil && !errors.Is(err, apperrors.ErrCategoryAlreadyExists) {
			lgr.Error().Err(err).Str("category", name).Msg("Error creating default category")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete")
	}
	return finalErr
}
