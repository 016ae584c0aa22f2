// Package verifier provides backup integrity verification for ADBackup.
package verifier

import (
	"context"
	"fmt"
	"time"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/galra/adbackup/internal/bridge"
	"github.com/galra/adbackup/internal/localfs"
	"github.com/galra/adbackup/internal/logger"
	"github.com/galra/adbackup/internal/types"
)

// Method defines how to verify file integrity.
type Method string

const (
	// MethodSHA1 compares size, then SHA1 content hash (thorough).
	MethodSHA1 Method = "sha1"
	// MethodSize compares size only (fast).
	MethodSize Method = "size"
	// MethodSkip skips verification entirely.
	MethodSkip Method = "skip"
)

// FileResult holds the comparison outcome for a single file. Remote and
// Local describe the two copies; their hashes stay empty unless the
// comparison actually got that far.
type FileResult struct {
	RelPath string
	Result  types.ComparisonResult
	Remote  types.FileRecord
	Local   types.FileRecord
	Detail  string // mismatch description or error text
}

// Stats contains overall verification statistics.
type Stats struct {
	FilesChecked   int
	Valid          int
	Missing        int
	SizeMismatches int
	HashMismatches int
	Errors         int
	BytesChecked   int64
	Duration       time.Duration
}

// Faulty reports how many files failed verification. Missing files are not
// faulty: they were never backed up in the first place.
func (s *Stats) Faulty() int {
	return s.SizeMismatches + s.HashMismatches + s.Errors
}

// Results maps relative path to comparison outcome, preserving the order in
// which the device listing produced the files.
type Results = orderedmap.OrderedMap[string, *FileResult]

// Verifier compares files on the device against their local backup copies.
type Verifier struct {
	bridge  *bridge.Client
	srcRoot string // device path
	dstRoot string // local path
	method  Method
	logger  *logger.Logger
}

// NewVerifier creates a verifier for the given source and destination roots.
func NewVerifier(b *bridge.Client, srcRoot, dstRoot string, method Method, log *logger.Logger) (*Verifier, error) {
	if b == nil {
		return nil, fmt.Errorf("bridge client is nil")
	}
	if srcRoot == "" {
		return nil, fmt.Errorf("source root is empty")
	}
	if dstRoot == "" {
		return nil, fmt.Errorf("destination root is empty")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	if method == "" {
		method = MethodSHA1
	}

	return &Verifier{
		bridge:  b,
		srcRoot: srcRoot,
		dstRoot: dstRoot,
		method:  method,
		logger:  log,
	}, nil
}

// Compare classifies a single remote file against its local copy.
// Checks run cheapest-first: existence, then size, then hash. The hash is
// computed only when the sizes already match, so a size mismatch never
// costs a full read on either side. Bridge or filesystem failures yield
// ResultError; they are reported, never fatal.
func (v *Verifier) Compare(ctx context.Context, relPath string) *FileResult {
	res := &FileResult{
		RelPath: relPath,
		Remote:  types.FileRecord{RelPath: relPath, Size: -1},
		Local:   types.FileRecord{RelPath: relPath, Size: -1},
	}

	exists, isFile, err := localfs.Exists(v.dstRoot, relPath)
	if err != nil {
		res.Result = types.ResultError
		res.Detail = fmt.Sprintf("local stat failed: %v", err)
		return res
	}
	if !exists {
		res.Result = types.ResultMissing
		return res
	}
	if !isFile {
		res.Result = types.ResultError
		res.Detail = "local path exists but is not a regular file"
		return res
	}

	remoteSize, err := v.bridge.FileSize(ctx, v.srcRoot, relPath)
	if err != nil {
		res.Result = types.ResultError
		res.Detail = fmt.Sprintf("remote size query failed: %v", err)
		return res
	}
	res.Remote.Size = remoteSize

	localSize, err := localfs.FileSize(v.dstRoot, relPath)
	if err != nil {
		res.Result = types.ResultError
		res.Detail = fmt.Sprintf("local size query failed: %v", err)
		return res
	}
	res.Local.Size = localSize

	if remoteSize != localSize {
		res.Result = types.ResultSizeMismatch
		res.Detail = fmt.Sprintf("size mismatch: remote=%d, local=%d", remoteSize, localSize)
		return res
	}

	if v.method == MethodSize {
		res.Result = types.ResultValid
		return res
	}

	remoteHash, err := v.bridge.HashFile(ctx, v.srcRoot, relPath)
	if err != nil {
		res.Result = types.ResultError
		res.Detail = fmt.Sprintf("remote hash failed: %v", err)
		return res
	}
	res.Remote.Hash = remoteHash

	localHash, err := localfs.HashRel(v.dstRoot, relPath)
	if err != nil {
		res.Result = types.ResultError
		res.Detail = fmt.Sprintf("local hash failed: %v", err)
		return res
	}
	res.Local.Hash = localHash

	if remoteHash != localHash {
		res.Result = types.ResultHashMismatch
		res.Detail = fmt.Sprintf("hash mismatch: remote=%s, local=%s", remoteHash[:12], localHash[:12])
		return res
	}

	res.Result = types.ResultValid
	return res
}

// Verify compares each of the given files sequentially and returns per-file
// results in input order plus aggregate statistics. The only error returned
// is context cancellation; per-file failures land in the results.
func (v *Verifier) Verify(ctx context.Context, files []string) (*Results, *Stats, error) {
	started := time.Now()
	results := orderedmap.NewOrderedMap[string, *FileResult]()
	stats := &Stats{}

	if v.method == MethodSkip {
		v.logger.Info("Verification skipped (method=skip)")
		return results, stats, nil
	}

	v.logger.Infow("Starting verification",
		"method", string(v.method),
		"files", len(files),
	)

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return results, stats, fmt.Errorf("verification interrupted: %w", err)
		}

		res := v.Compare(ctx, f)
		results.Set(f, res)
		stats.FilesChecked++

		switch res.Result {
		case types.ResultValid:
			stats.Valid++
			stats.BytesChecked += res.Local.Size
			v.logger.Debugw("Verification passed", "file", f, "size", res.Local.Size)
		case types.ResultMissing:
			stats.Missing++
			v.logger.Debugw("File missing locally", "file", f)
		case types.ResultSizeMismatch:
			stats.SizeMismatches++
			v.logger.Warnw("Verification failed", "file", f, "detail", res.Detail)
		case types.ResultHashMismatch:
			stats.HashMismatches++
			v.logger.Warnw("Verification failed", "file", f, "detail", res.Detail)
		case types.ResultError:
			stats.Errors++
			v.logger.Errorw("Verification error", "file", f, "detail", res.Detail)
		}
	}

	stats.Duration = time.Since(started)

	v.logger.Infow("Verification complete",
		"checked", stats.FilesChecked,
		"valid", stats.Valid,
		"missing", stats.Missing,
		"faulty", stats.Faulty(),
		"duration", stats.Duration,
	)

	return results, stats, nil
}

// FaultyFiles extracts the files that failed verification, in result order.
// Missing files are excluded; the backup phase queues them separately.
func FaultyFiles(results *Results) []string {
	var faulty []string
	for el := results.Front(); el != nil; el = el.Next() {
		switch el.Value.Result {
		case types.ResultSizeMismatch, types.ResultHashMismatch, types.ResultError:
			faulty = append(faulty, el.Key)
		}
	}
	return faulty
}

// Method returns the configured verification method.
func (v *Verifier) Method() Method {
	return v.method
}
