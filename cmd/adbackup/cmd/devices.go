package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/galra/adbackup/internal/bridge"
	"github.com/galra/adbackup/internal/logger"
	"github.com/galra/adbackup/internal/report"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices known to the bridge tool",
	Long: `Devices displays all Android devices reported by the bridge tool
along with their connection state. Only devices in "device" state can be
backed up; "unauthorized" usually means the computer needs to be approved
on the phone.

Example:
  adbackup devices`,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	client := bridge.NewClient(&cfg.Bridge, log)

	devices, err := client.Devices(context.Background())
	if err != nil {
		return err
	}

	report.NewRenderer(os.Stdout).Devices(devices)
	return nil
}
