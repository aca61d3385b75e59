package main

import (
	"context"
	"fmt"
	"os"

	"github.com/devtrack/engine/internal/migrations"
	"github.com/devtrack/engine/pkg/config"
	"github.com/devtrack/engine/pkg/database"
	"github.com/devtrack/engine/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	cfg *config.Config
	db  *gorm.DB
	// force is set by reset --force.
	force bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "migrate",
	Short:             "Manage the DevTrack database schema",
	SilenceUsage:      true,
	PersistentPreRunE: connect,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		logger.Sync()
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update every table",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := migrations.Run(db); err != nil {
			return err
		}
		logger.L().Info("migrations completed", zap.String("driver", cfg.DBDriver))
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop every table and migrate from scratch",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.AppEnv == "production" && !force {
			return fmt.Errorf("refusing to reset a production database without --force")
		}
		if err := migrations.Reset(db); err != nil {
			return err
		}
		logger.L().Warn("database reset", zap.String("driver", cfg.DBDriver))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&force, "force", false, "allow reset when APP_ENV=production")
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(resetCmd)
}

func connect(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	cfg = c
	if _, err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	db, err = database.Open(context.Background(), database.Options{
		Driver:     cfg.DBDriver,
		DSN:        cfg.DatabaseURL,
		MaxRetries: 3,
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	return nil
}
