// Command seed creates the initial administrator account when it is missing.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"

	"complaint-desk/internal/config"
	"complaint-desk/internal/domain"
	"complaint-desk/internal/policy"
	"complaint-desk/internal/repository"
	"complaint-desk/internal/service/user"
	"complaint-desk/internal/validation"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := config.NewLogger(cfg)

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Fatal().Msg("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	repos := repository.NewRepositories(db)
	users := user.NewService(repos.User, policy.New(nil), validation.New(), cfg)

	admin, created, err := users.EnsureUser(ctx, domain.CreateUserInput{
		Name:       cfg.AdminName,
		Email:      cfg.AdminEmail,
		Password:   cfg.AdminPassword,
		Role:       cfg.AdminRole,
		Department: cfg.AdminDepartment,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed administrator")
	}

	if created {
		logger.Info().Str("email", admin.Email).Str("role", string(admin.Role)).Msg("administrator created")
		return
	}
	logger.Info().Str("email", admin.Email).Msg("administrator already exists")
}
