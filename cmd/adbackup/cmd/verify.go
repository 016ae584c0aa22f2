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
	verifySource       string
	verifyDest         string
	verifyHashMethod   string
	verifyDeleteFaulty bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify an existing backup against the device",
	Long: `Verify compares files present on both the device and the local
destination without copying anything.

Each file is checked for size equality, then hash equality (SHA1, computed
on both sides). The hash is only computed when sizes already match. Faulty
copies are reported and can be deleted so a later backup re-pulls them.

Example:
  adbackup verify --source /sdcard/DCIM --dest ~/backup/dcim`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifySource, "source", "",
		"Device path to verify against (file or directory)")
	verifyCmd.Flags().StringVar(&verifyDest, "dest", "",
		"Local backup directory")
	verifyCmd.Flags().StringVar(&verifyHashMethod, "hash-method", "",
		"Override verification method (sha1, size)")
	verifyCmd.Flags().BoolVar(&verifyDeleteFaulty, "delete-faulty", false,
		"Delete faulty local copies without prompting")

	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if verifySource != "" {
		cfg.Backup.Source = verifySource
	}
	if verifyDest != "" {
		cfg.Backup.Destination = verifyDest
	}
	if verifyHashMethod != "" {
		cfg.Verification.Method = verifyHashMethod
	}
	if verifyDeleteFaulty {
		cfg.Verification.DeleteFaulty = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.ValidatePaths(); err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

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

	result, err := orch.Execute(ctx, true)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Verification cancelled by user")
			return nil
		}
		return fmt.Errorf("verification failed: %w", err)
	}

	report.NewRenderer(os.Stdout).RunResult(result)

	if !result.Success {
		return fmt.Errorf("verification found %d faulty files", result.VerifyStats.Faulty())
	}
	return nil
}
