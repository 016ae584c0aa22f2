package backup

import (
	"context"
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/galra/adbackup/internal/bridge"
	"github.com/galra/adbackup/internal/config"
	"github.com/galra/adbackup/internal/logger"
)

// EstimateResult holds dry-run estimation results for the plan command.
type EstimateResult struct {
	Source        string
	Destination   string
	MissingFiles  []string
	ExistingFiles int
	MissingDirs   []string
	// FileSizes maps each missing file to its remote size, in device order.
	// Files whose size query failed are absent.
	FileSizes  *orderedmap.OrderedMap[string, int64]
	TotalBytes int64
	Config     *config.Config
}

// Estimator computes what a backup run would pull, without touching the
// destination.
type Estimator struct {
	cfg    *config.Config
	bridge *bridge.Client
	logger *logger.Logger
}

// NewEstimator creates a new estimator.
func NewEstimator(cfg *config.Config, b *bridge.Client, log *logger.Logger) *Estimator {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Estimator{
		cfg:    cfg,
		bridge: b,
		logger: log,
	}
}

// Estimate classifies the trees and sizes the missing files.
func (e *Estimator) Estimate(ctx context.Context) (*EstimateResult, error) {
	result := &EstimateResult{
		Source:      e.cfg.Backup.Source,
		Destination: e.cfg.Backup.Destination,
		FileSizes:   orderedmap.NewOrderedMap[string, int64](),
		Config:      e.cfg,
	}

	if err := Preflight(ctx, e.bridge, result.Destination, e.logger); err != nil {
		return nil, err
	}

	srcRoot, cls, err := Snapshot(ctx, e.bridge, result.Source, result.Destination, e.logger)
	if err != nil {
		return nil, err
	}

	result.MissingFiles = cls.MissingFiles
	result.ExistingFiles = len(cls.ExistingFiles)
	result.MissingDirs = cls.MissingDirs

	for _, f := range cls.MissingFiles {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("estimation interrupted: %w", err)
		}
		size, err := e.bridge.FileSize(ctx, srcRoot, f)
		if err != nil {
			e.logger.Warnw("Failed to query remote size", "file", f, "error", err)
			continue
		}
		result.FileSizes.Set(f, size)
		result.TotalBytes += size
	}

	return result, nil
}
