package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/singme/internal/repositories"
	"github.com/desertthunder/singme/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file when missing, then opens the configured store, which runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	if r.configPath != "" {
		if _, err := os.Stat(r.configPath); os.IsNotExist(err) {
			r.logger.Info("config file not found, creating from template", "path", r.configPath)
			if err := shared.CreateConfigFile(r.configPath); err != nil {
				r.logger.Warn("failed to create config file, using defaults", "error", err)
			} else {
				r.logger.Info("config file created", "path", r.configPath)
			}
		}
	}

	if err := r.config.Validate(); err != nil {
		return err
	}

	dbCfg := r.config.Database
	r.logger.Info("initializing database", "driver", dbCfg.Driver, "path", dbCfg.Path)

	store, err := repositories.Open(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	r.logger.Infof("setup complete for database: %v", dbCfg.Driver)
	return r.writePlain("✓ Database ready (%s)\n", dbCfg.Driver)
}
