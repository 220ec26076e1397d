// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/project-records/internal/config"
	"github.com/carterperez-dev/templates/project-records/internal/core"
	"github.com/carterperez-dev/templates/project-records/internal/project"
	"github.com/carterperez-dev/templates/project-records/internal/user"
)

// Seed templates are keyed by number so reruns skip what already exists.
var templates = []project.ProjectParams{
	{
		Number:       "TPL-MAINT",
		Name:         "Template: yearly maintenance",
		Description:  "Recurring maintenance contract",
		Type:         project.TypeMaintenance,
		Stage:        "PLANNED",
		PlannedHours: 120,
		IsTemplate:   true,
	},
	{
		Number:       "TPL-DEV",
		Name:         "Template: development project",
		Description:  "Custom development for a client",
		Type:         project.TypeDevelopment,
		Stage:        "PLANNED",
		PlannedHours: 400,
		IsTemplate:   true,
	},
}

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(*configPath, logger); err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		return errors.New("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	if err := core.Migrate(ctx, cfg.Database.URL, logger); err != nil {
		return err
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }() //nolint:errcheck // process exit

	// One transaction: a failed template leaves no half-seeded admin.
	return core.InTx(ctx, db.DB, func(tx *sqlx.Tx) error {
		userSvc := user.NewService(user.NewRepository(tx), user.WithLogger(logger))
		projectSvc := project.NewService(project.NewRepository(tx), project.WithLogger(logger))

		admin, err := seedAdmin(ctx, userSvc, cfg.Seed, logger)
		if err != nil {
			return err
		}

		return seedTemplates(ctx, projectSvc, admin.ID, cfg.Seed.OrganizationID, logger)
	})
}

func seedAdmin(
	ctx context.Context,
	svc user.UseCases,
	cfg config.SeedConfig,
	logger *slog.Logger,
) (*user.User, error) {
	existing, err := svc.GetByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		if !existing.IsAdmin() {
			return nil, fmt.Errorf("seed admin email %s belongs to a %s account", existing.Email, existing.Role)
		}
		if core.NeedsRehash(existing.PasswordHash) {
			logger.Warn("admin password hash uses outdated parameters; change the password to upgrade it",
				"user_id", existing.ID,
			)
		}
		return existing, nil
	}
	if !core.IsNotFound(err) {
		return nil, err
	}

	admin, err := svc.Create(ctx, user.UserParams{
		LastName:  cfg.AdminLastName,
		FirstName: cfg.AdminFirstName,
		Email:     cfg.AdminEmail,
		Password:  cfg.AdminPassword,
		Role:      user.RoleAdmin,
	})
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

func seedTemplates(
	ctx context.Context,
	svc project.UseCases,
	responsibleID, organizationID string,
	logger *slog.Logger,
) error {
	start := project.Date(time.Now())
	due := start.AddDate(1, 0, 0)

	for _, tpl := range templates {
		tpl.StartDate = start
		tpl.DueDate = due
		tpl.ResponsibleID = responsibleID
		tpl.OrganizationID = organizationID

		_, err := svc.Create(ctx, tpl)
		if core.IsAlreadyExists(err) {
			logger.Info("template already present", "number", tpl.Number)
			continue
		}
		if err != nil {
			return fmt.Errorf("create template %s: %w", tpl.Number, err)
		}
	}

	return nil
}
