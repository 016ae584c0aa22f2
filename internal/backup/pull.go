package backup

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/galra/adbackup/internal/bridge"
	"github.com/galra/adbackup/internal/localfs"
	"github.com/galra/adbackup/internal/logger"
	"github.com/galra/adbackup/internal/types"
	"github.com/galra/adbackup/internal/verifier"
)

// Puller copies single files from the device and validates each copy.
type Puller struct {
	bridge  *bridge.Client
	srcRoot string
	dstRoot string
	method  verifier.Method
	logger  *logger.Logger
}

// NewPuller creates a Puller. The method controls post-pull validation depth:
// sha1 checks existence, size and hash; size and skip check existence and
// size only.
func NewPuller(b *bridge.Client, srcRoot, dstRoot string, method verifier.Method, log *logger.Logger) *Puller {
	if log == nil {
		log = logger.NewDefault()
	}
	return &Puller{
		bridge:  b,
		srcRoot: srcRoot,
		dstRoot: dstRoot,
		method:  method,
		logger:  log,
	}
}

// Pull copies one file and validates the local copy. The returned status
// classifies the outcome; a non-success status carries a descriptive error.
// Validation: the file must exist locally (not_pulled), match the remote
// size (wrong_size), and, for the sha1 method, match the remote SHA1
// (wrong_hash). Callers delete wrong_size/wrong_hash leftovers.
func (p *Puller) Pull(ctx context.Context, relPath string) (types.PullStatus, error) {
	remoteFull := path.Join(p.srcRoot, relPath)
	localFull := localfs.OSPath(p.dstRoot, relPath)

	// The bridge tool keeps the base name, so pull into the parent directory.
	if err := p.bridge.Pull(ctx, remoteFull, filepath.Dir(localFull)); err != nil {
		return types.PullNotPulled, err
	}

	exists, isFile, err := localfs.Exists(p.dstRoot, relPath)
	if err != nil {
		return types.PullNotPulled, fmt.Errorf("failed to stat pulled file: %w", err)
	}
	if !exists {
		return types.PullNotPulled, fmt.Errorf("bridge tool reported success but %s was not created", localFull)
	}
	if !isFile {
		// Classification should have rejected this path before the pull ran.
		return types.PullNotPulled, fmt.Errorf("pulled path exists as a directory: %s", localFull)
	}

	remoteSize, err := p.bridge.FileSize(ctx, p.srcRoot, relPath)
	if err != nil {
		return types.PullWrongSize, fmt.Errorf("failed to confirm remote size: %w", err)
	}
	localSize, err := localfs.FileSize(p.dstRoot, relPath)
	if err != nil {
		return types.PullWrongSize, fmt.Errorf("failed to confirm local size: %w", err)
	}
	if remoteSize != localSize {
		return types.PullWrongSize, fmt.Errorf("incomplete pull: remote=%d bytes, local=%d bytes", remoteSize, localSize)
	}

	if p.method != verifier.MethodSHA1 {
		return types.PullSuccess, nil
	}

	remoteHash, err := p.bridge.HashFile(ctx, p.srcRoot, relPath)
	if err != nil {
		return types.PullWrongHash, fmt.Errorf("failed to hash remote file: %w", err)
	}
	localHash, err := localfs.HashRel(p.dstRoot, relPath)
	if err != nil {
		return types.PullWrongHash, fmt.Errorf("failed to hash pulled file: %w", err)
	}
	if remoteHash != localHash {
		return types.PullWrongHash, fmt.Errorf("corrupt pull: remote sha1 %s, local sha1 %s", remoteHash[:12], localHash[:12])
	}

	return types.PullSuccess, nil
}
