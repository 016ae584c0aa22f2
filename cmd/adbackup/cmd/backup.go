package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/galra/adbackup/internal/backup"
	"github.com/galra/adbackup/internal/bridge"
	"github.com/galra/adbackup/internal/logger"
	"github.com/galra/adbackup/internal/report"
)

var (
	backupSource       string
	backupDest         string
	backupOverride     bool
	backupAuto         bool
	backupHashMethod   string
	backupDeleteFaulty bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up a device file or directory to the local computer",
	Long: `Backup copies a file or directory tree from the Android device to a
local destination directory, pulling only what is missing.

The backup process follows these steps:
  1. Check device connectivity and the destination directory
  2. List both trees and classify files as missing or existing
  3. Create missing local directories
  4. With --auto: verify existing copies, drop faulty ones and re-queue them
  5. Pull each missing file and validate the copy (size and hash)

Partial or corrupt pulls are deleted and reported; the run continues with
the next file.

Example:
  adbackup backup --source /sdcard/DCIM --dest ~/backup/dcim`,
	RunE: runBackup,
}

func init() {
	backupCmd.Flags().StringVar(&backupSource, "source", "",
		"Device path to back up (file or directory)")
	backupCmd.Flags().StringVar(&backupDest, "dest", "",
		"Local destination directory")
	backupCmd.Flags().BoolVarP(&backupOverride, "override", "o", false,
		"Re-pull files that already exist locally")
	backupCmd.Flags().BoolVarP(&backupAuto, "auto", "a", false,
		"Verify existing copies first, delete faulty ones and continue the backup")
	backupCmd.Flags().StringVar(&backupHashMethod, "hash-method", "",
		"Override verification method (sha1, size, skip)")
	backupCmd.Flags().BoolVar(&backupDeleteFaulty, "delete-faulty", false,
		"Delete faulty local copies without prompting")

	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Command flags override config values
	if backupSource != "" {
		cfg.Backup.Source = backupSource
	}
	if backupDest != "" {
		cfg.Backup.Destination = backupDest
	}
	if backupOverride {
		cfg.Backup.Override = true
	}
	if backupAuto {
		cfg.Backup.Auto = true
	}
	if backupHashMethod != "" {
		cfg.Verification.Method = backupHashMethod
	}
	if backupDeleteFaulty {
		cfg.Verification.DeleteFaulty = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.ValidatePaths(); err != nil {
		return err
	}

	// Initialize logger
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	log.Infow("Starting backup",
		"source", cfg.Backup.Source,
		"destination", cfg.Backup.Destination,
	)

	// Setup context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Warn("Received shutdown signal - stopping after current file...")
		cancel()
	}()

	client := bridge.NewClient(&cfg.Bridge, log)

	orch, err := backup.NewOrchestrator(cfg, client, log, askYesNo)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	result, err := orch.Execute(ctx, false)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Backup cancelled by user")
			return nil
		}
		return fmt.Errorf("backup failed: %w", err)
	}

	report.NewRenderer(os.Stdout).RunResult(result)

	if !result.Success {
		return fmt.Errorf("backup completed with %d failed files", len(result.FailedFiles))
	}
	return nil
}
