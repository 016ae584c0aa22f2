// Package backup provides the backup and verification workflow for ADBackup:
// classify the device tree against the destination, verify existing copies,
// and pull what is missing or faulty.
package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/galra/adbackup/internal/bridge"
	"github.com/galra/adbackup/internal/config"
	"github.com/galra/adbackup/internal/localfs"
	"github.com/galra/adbackup/internal/logger"
	"github.com/galra/adbackup/internal/types"
	"github.com/galra/adbackup/internal/verifier"
)

// Confirmer answers a destructive-action prompt. Commands wire this to an
// interactive yes/no question; tests stub it.
type Confirmer func(prompt string) bool

// Result contains statistics and status of a backup or verify run.
type Result struct {
	Source      string
	Destination string
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration

	MissingFiles  []string
	ExistingFiles int
	MissingDirs   int

	VerifyStats   *verifier.Stats
	VerifyResults *verifier.Results
	FaultyFiles   []string
	DeletedFaulty int

	Pulled      int
	PulledBytes int64
	FailedFiles []string

	VerifyOnly bool
	Success    bool
}

// Orchestrator coordinates one backup or verify-only run. Processing is
// strictly sequential: one bridge invocation at a time, each blocking until
// complete.
type Orchestrator struct {
	cfg     *config.Config
	bridge  *bridge.Client
	logger  *logger.Logger
	confirm Confirmer
}

// NewOrchestrator creates an orchestrator for the configured source and
// destination.
func NewOrchestrator(cfg *config.Config, b *bridge.Client, log *logger.Logger, confirm Confirmer) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if b == nil {
		return nil, fmt.Errorf("bridge client is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	if confirm == nil {
		confirm = func(string) bool { return false }
	}
	return &Orchestrator{
		cfg:     cfg,
		bridge:  b,
		logger:  log,
		confirm: confirm,
	}, nil
}

// Execute runs the workflow. With verifyOnly set, existing files are
// verified and nothing is pulled; otherwise missing (and faulty, in auto
// mode) files are copied from the device. Per-file failures are collected
// in the result and never abort the run; only preflight failures, type
// conflicts and cancellation do.
func (o *Orchestrator) Execute(ctx context.Context, verifyOnly bool) (*Result, error) {
	result := &Result{
		Source:      o.cfg.Backup.Source,
		Destination: o.cfg.Backup.Destination,
		StartedAt:   time.Now(),
		VerifyOnly:  verifyOnly,
	}

	runLog := o.logger.WithFields(map[string]interface{}{
		"source":      result.Source,
		"destination": result.Destination,
	})
	runLog.Infow("Starting run",
		"verify_only", verifyOnly,
		"override", o.cfg.Backup.Override,
		"auto", o.cfg.Backup.Auto,
		"method", o.cfg.Verification.Method,
	)

	if err := Preflight(ctx, o.bridge, result.Destination, o.logger); err != nil {
		return nil, err
	}

	srcRoot, cls, err := Snapshot(ctx, o.bridge, result.Source, result.Destination, o.logger)
	if err != nil {
		return nil, err
	}

	result.MissingFiles = cls.MissingFiles
	result.ExistingFiles = len(cls.ExistingFiles)
	result.MissingDirs = len(cls.MissingDirs)

	if err := localfs.EnsureDirs(result.Destination, cls.MissingDirs); err != nil {
		return nil, err
	}

	queue := append([]string(nil), cls.MissingFiles...)

	// Verify phase: always in verify-only mode, in backup mode only when
	// auto is set.
	if verifyOnly || o.cfg.Backup.Auto {
		faulty, err := o.verifyExisting(ctx, srcRoot, cls.ExistingFiles, result)
		if err != nil {
			return result, err
		}
		if len(faulty) > 0 {
			result.DeletedFaulty = o.deleteFaulty(result.Destination, faulty)
			// Faulty files are re-queued even when the user kept them:
			// the pull overwrites the bad copy in place.
			queue = append(queue, faulty...)
		}
	}

	if verifyOnly {
		result.Success = result.VerifyStats == nil || result.VerifyStats.Faulty() == 0
		finalize(result)
		runLog.Infow("Verify run complete", "success", result.Success, "duration", result.Duration)
		return result, nil
	}

	// Override mode requeues every existing file after confirmation.
	if o.cfg.Backup.Override && len(cls.ExistingFiles) > 0 {
		if o.cfg.Backup.AssumeYes || o.confirm(fmt.Sprintf("Override %d existing files?", len(cls.ExistingFiles))) {
			o.logger.Infow("Override enabled, re-pulling existing files", "files", len(cls.ExistingFiles))
			queue = append(queue, cls.ExistingFiles...)
		}
	}

	queue = dedupe(queue)

	if err := o.pullAll(ctx, srcRoot, queue, result); err != nil {
		return result, err
	}

	result.Success = len(result.FailedFiles) == 0
	finalize(result)

	runLog.Infow("Backup run complete",
		"pulled", result.Pulled,
		"pulled_bytes", result.PulledBytes,
		"failed", len(result.FailedFiles),
		"success", result.Success,
		"duration", result.Duration,
	)

	return result, nil
}

// verifyExisting verifies files present on both sides and returns the faulty ones.
func (o *Orchestrator) verifyExisting(ctx context.Context, srcRoot string, existing []string, result *Result) ([]string, error) {
	if len(existing) == 0 {
		return nil, nil
	}

	v, err := verifier.NewVerifier(o.bridge, srcRoot, result.Destination,
		verifier.Method(o.cfg.Verification.Method), o.logger)
	if err != nil {
		return nil, err
	}

	results, stats, err := v.Verify(ctx, existing)
	if err != nil {
		return nil, err
	}

	result.VerifyResults = results
	result.VerifyStats = stats
	result.FaultyFiles = verifier.FaultyFiles(results)
	return result.FaultyFiles, nil
}

// deleteFaulty removes faulty local copies, honoring policy and prompts.
// Returns the number of files deleted (zero when the user declined).
func (o *Orchestrator) deleteFaulty(destination string, faulty []string) int {
	approved := o.cfg.Verification.DeleteFaulty || o.cfg.Backup.AssumeYes ||
		o.confirm(fmt.Sprintf("Delete %d faulty files?", len(faulty)))
	if !approved {
		o.logger.Warnw("Keeping faulty files", "files", len(faulty))
		return 0
	}

	deleted := 0
	for _, f := range faulty {
		if err := localfs.Remove(destination, f); err != nil {
			o.logger.Errorw("Failed to delete faulty file", "file", f, "error", err)
			continue
		}
		deleted++
	}
	o.logger.Infow("Deleted faulty files", "deleted", deleted)
	return deleted
}

// pullAll copies each queued file, validating every copy. Partial or corrupt
// pulls are deleted so a later run re-queues them as missing.
func (o *Orchestrator) pullAll(ctx context.Context, srcRoot string, queue []string, result *Result) error {
	if len(queue) == 0 {
		o.logger.Info("Nothing to pull")
		return nil
	}

	sizes, totalBytes := o.estimateSizes(ctx, srcRoot, queue)
	o.logger.Infow("Pulling files",
		"files", len(queue),
		"total_mb", float64(totalBytes)/(1024*1024),
	)

	puller := NewPuller(o.bridge, srcRoot, result.Destination,
		verifier.Method(o.cfg.Verification.Method), o.logger)

	for i, f := range queue {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("backup interrupted: %w", err)
		}

		flog := o.logger.WithFile(f)
		flog.Debugw("Pulling file", "index", i+1, "total", len(queue))

		status, err := puller.Pull(ctx, f)
		if status.Failed() {
			flog.Errorw("Pull failed", "status", string(status), "error", err)
			result.FailedFiles = append(result.FailedFiles, f)
			if status != types.PullNotPulled {
				if rmErr := localfs.Remove(result.Destination, f); rmErr != nil {
					flog.Errorw("Failed to delete partial pull", "error", rmErr)
				}
			}
			continue
		}

		result.Pulled++
		result.PulledBytes += sizes[f]
	}

	return nil
}

// estimateSizes queries remote sizes for the queue. A failed query is logged
// and estimated as zero; it does not block the pull.
func (o *Orchestrator) estimateSizes(ctx context.Context, srcRoot string, files []string) (map[string]int64, int64) {
	sizes := make(map[string]int64, len(files))
	var total int64
	for _, f := range files {
		size, err := o.bridge.FileSize(ctx, srcRoot, f)
		if err != nil {
			o.logger.Warnw("Failed to query remote size", "file", f, "error", err)
			continue
		}
		sizes[f] = size
		total += size
	}
	return sizes, total
}

func dedupe(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := files[:0]
	for _, f := range files {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func finalize(result *Result) {
	result.CompletedAt = time.Now()
	result.Duration = result.CompletedAt.Sub(result.StartedAt)
}
