package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/galra/adbackup/internal/backup"
	"github.com/galra/adbackup/internal/bridge"
	"github.com/galra/adbackup/internal/logger"
	"github.com/galra/adbackup/internal/report"
)

var (
	planSource string
	planDest   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what a backup run would pull, without copying anything",
	Long: `Plan simulates the backup and reports what would happen without
modifying the destination.

The plan shows:
  - Counts of existing and missing files and directories
  - The files that would be pulled with their sizes
  - Total transfer size estimate
  - Configuration summary

Example:
  adbackup plan --source /sdcard/DCIM --dest ~/backup/dcim`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planSource, "source", "",
		"Device path to back up (file or directory)")
	planCmd.Flags().StringVar(&planDest, "dest", "",
		"Local destination directory")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if planSource != "" {
		cfg.Backup.Source = planSource
	}
	if planDest != "" {
		cfg.Backup.Destination = planDest
	}

	if err := cfg.ValidatePaths(); err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()
	client := bridge.NewClient(&cfg.Bridge, log)

	estimator := backup.NewEstimator(cfg, client, log)
	result, err := estimator.Estimate(ctx)
	if err != nil {
		return fmt.Errorf("estimation failed: %w", err)
	}

	report.NewRenderer(os.Stdout).Plan(result)
	return nil
}
