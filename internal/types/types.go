// Package types contains shared types used across multiple packages to avoid import cycles.
package types

import "time"

// FileRecord describes a single file on the device, addressed by its path
// relative to the backup source root. Paths always use forward slashes
// regardless of the host OS.
type FileRecord struct {
	RelPath string
	Size    int64  // bytes; -1 until queried
	Hash    string // sha1 hex; empty until computed
}

// ComparisonResult classifies a remote file against its local copy.
type ComparisonResult string

const (
	// ResultValid means the local copy matches in size and hash.
	ResultValid ComparisonResult = "valid"
	// ResultMissing means no local copy exists.
	ResultMissing ComparisonResult = "missing"
	// ResultSizeMismatch means the local copy has a different size.
	// The hash is never computed for these files.
	ResultSizeMismatch ComparisonResult = "size_mismatch"
	// ResultHashMismatch means sizes match but content differs.
	ResultHashMismatch ComparisonResult = "hash_mismatch"
	// ResultError means a bridge or filesystem failure prevented comparison.
	ResultError ComparisonResult = "error"
)

// PullStatus is the outcome of pulling a single file and validating the copy.
type PullStatus string

const (
	PullSuccess   PullStatus = "success"
	PullNotPulled PullStatus = "not_pulled"
	PullWrongSize PullStatus = "wrong_size"
	PullWrongHash PullStatus = "wrong_hash"
)

// Failed reports whether the pull left no usable local copy behind.
func (s PullStatus) Failed() bool {
	return s != PullSuccess
}

// TreeListing holds the recursive contents of one side of the comparison.
// Entries are slash-relative to the listing root and keep the order the
// underlying listing emitted them in.
type TreeListing struct {
	Files []string
	Dirs  []string
}

// ClassifyStats contains statistics about tree classification.
type ClassifyStats struct {
	RemoteFiles int
	RemoteDirs  int
	LocalFiles  int
	LocalDirs   int
	Duration    time.Duration
}
