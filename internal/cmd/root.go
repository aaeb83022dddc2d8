// Package cmd contains the etectl commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ete-kpi/config"
	"ete-kpi/pkg/database"
	applogger "ete-kpi/pkg/logger"
)

// Global flags
var configPath string

var rootCmd = &cobra.Command{
	Use:   "etectl",
	Short: "Operator CLI for the ETE production KPI service",
	Long: `etectl runs maintenance tasks and KPI reports against the same
record store the HTTP service uses.

Examples:
  etectl migrate
  etectl report quality --line 2 --from 2024-03-04 --to 2024-03-06
  etectl report dashboard --shift 1 --format json`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ./config/config.yaml)")
}

// bootstrap loads configuration and opens the record store. Logs go to
// stderr so stdout carries only command output.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, nil, nil, err
	}

	return cfg, logger, db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, _ := db.DB(); sqlDB != nil {
		sqlDB.Close()
	}
}
