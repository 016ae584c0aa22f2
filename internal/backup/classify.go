package backup

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/galra/adbackup/internal/bridge"
	"github.com/galra/adbackup/internal/localfs"
	"github.com/galra/adbackup/internal/logger"
	"github.com/galra/adbackup/internal/types"
)

// Classification splits the remote tree into what already exists locally and
// what does not. Slices keep the device listing order.
type Classification struct {
	MissingFiles  []string
	ExistingFiles []string
	MissingDirs   []string
	ExistingDirs  []string
	Stats         types.ClassifyStats
}

// Diff compares a remote listing against a local one. It fails on type
// conflicts: a remote file that exists locally as a directory (or the
// reverse) cannot be backed up into place and continuing would corrupt the
// destination.
func Diff(remote, local *types.TreeListing) (*Classification, error) {
	localFiles := make(map[string]bool, len(local.Files))
	for _, f := range local.Files {
		localFiles[f] = true
	}
	localDirs := make(map[string]bool, len(local.Dirs))
	for _, d := range local.Dirs {
		localDirs[d] = true
	}

	cls := &Classification{
		Stats: types.ClassifyStats{
			RemoteFiles: len(remote.Files),
			RemoteDirs:  len(remote.Dirs),
			LocalFiles:  len(local.Files),
			LocalDirs:   len(local.Dirs),
		},
	}

	var conflicts []string
	for _, f := range remote.Files {
		switch {
		case localDirs[f]:
			conflicts = append(conflicts, f)
		case localFiles[f]:
			cls.ExistingFiles = append(cls.ExistingFiles, f)
		default:
			cls.MissingFiles = append(cls.MissingFiles, f)
		}
	}
	for _, d := range remote.Dirs {
		switch {
		case localFiles[d]:
			conflicts = append(conflicts, d)
		case localDirs[d]:
			cls.ExistingDirs = append(cls.ExistingDirs, d)
		default:
			cls.MissingDirs = append(cls.MissingDirs, d)
		}
	}

	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return nil, fmt.Errorf("type conflicts between device and destination (file vs directory):\n\t%s",
			strings.Join(conflicts, "\n\t"))
	}

	return cls, nil
}

// Snapshot resolves the source path, lists both sides and classifies the
// difference. For a single-file source the effective root becomes the file's
// parent directory and the listing contains just that file, so the rest of
// the pipeline treats both shapes uniformly.
//
// The returned srcRoot is the device directory all relative paths are
// resolved against.
func Snapshot(ctx context.Context, b *bridge.Client, source, destination string, log *logger.Logger) (srcRoot string, cls *Classification, err error) {
	started := time.Now()

	pathType, err := b.PathType(ctx, source)
	if err != nil {
		return "", nil, err
	}

	var remote *types.TreeListing
	switch pathType {
	case bridge.PathNone:
		return "", nil, fmt.Errorf("source path does not exist on device: %s", source)
	case bridge.PathFile:
		srcRoot = path.Dir(source)
		remote = &types.TreeListing{Files: []string{path.Base(source)}}
	case bridge.PathDirectory:
		srcRoot = source
		remote, err = b.List(ctx, source)
		if err != nil {
			return "", nil, err
		}
	}

	local, err := localfs.List(destination)
	if err != nil {
		return "", nil, err
	}

	cls, err = Diff(remote, local)
	if err != nil {
		return "", nil, err
	}
	cls.Stats.Duration = time.Since(started)

	log.Infow("Classified source tree",
		"source", source,
		"type", string(pathType),
		"missing_files", len(cls.MissingFiles),
		"existing_files", len(cls.ExistingFiles),
		"missing_dirs", len(cls.MissingDirs),
		"duration", cls.Stats.Duration,
	)

	return srcRoot, cls, nil
}
