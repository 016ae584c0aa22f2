package backup

import (
	"context"
	"fmt"
	"os"

	"github.com/galra/adbackup/internal/bridge"
	"github.com/galra/adbackup/internal/logger"
)

// Preflight verifies the run can start at all: a usable device is connected
// and the destination directory exists. Source existence is checked during
// classification, where file and directory sources diverge.
func Preflight(ctx context.Context, b *bridge.Client, destination string, log *logger.Logger) error {
	if err := b.CheckDevice(ctx); err != nil {
		return fmt.Errorf("device check failed: %w", err)
	}

	info, err := os.Stat(destination)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("destination path does not exist: %s", destination)
		}
		return fmt.Errorf("failed to stat destination: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("destination path is not a directory: %s", destination)
	}

	log.Debugw("Preflight checks passed", "destination", destination)
	return nil
}
