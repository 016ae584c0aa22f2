// Package localfs implements the host-side file operations for ADBackup:
// hashing, recursive listing, directory materialization and cleanup of
// faulty copies. Paths crossing the package boundary are slash-relative;
// conversion to the host separator happens here.
package localfs

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/galra/adbackup/internal/types"
)

// hashBufSize is the read buffer used for streaming hashes.
const hashBufSize = 128 * 1024

// Sha1Sum computes the SHA1 hex digest of the file at path, streaming the
// content so large media files are not held in memory.
func Sha1Sum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha1.New()
	buf := make([]byte, hashBufSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashRel computes the SHA1 of root/relPath, where relPath is a slash path.
func HashRel(root, relPath string) (string, error) {
	return Sha1Sum(filepath.Join(root, filepath.FromSlash(relPath)))
}

// FileSize returns the size of root/relPath. A missing file is an error.
func FileSize(root, relPath string) (int64, error) {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Exists reports whether root/relPath exists and whether it is a regular file.
func Exists(root, relPath string) (exists bool, isFile bool, err error) {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, false, nil
		}
		return false, false, err
	}
	return true, info.Mode().IsRegular(), nil
}

// List enumerates all files and directories under root recursively,
// returning slash paths relative to root. The root itself is not included.
func List(root string) (*types.TreeListing, error) {
	listing := &types.TreeListing{}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			listing.Dirs = append(listing.Dirs, rel)
		} else {
			listing.Files = append(listing.Files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return listing, nil
}

// EnsureDirs creates the given slash-relative directories under root.
// Parents sort before children, and MkdirAll covers any gaps regardless.
// A path that already exists as a file aborts the backup: pulling into it
// would silently lose data.
func EnsureDirs(root string, dirs []string) error {
	sorted := append([]string(nil), dirs...)
	sort.Strings(sorted)

	for _, d := range sorted {
		full := filepath.Join(root, filepath.FromSlash(d))
		info, err := os.Stat(full)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("path exists as a file where a directory is needed: %s", full)
			}
			continue
		}
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat %s: %w", full, err)
		}
		if err := os.MkdirAll(full, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", full, err)
		}
	}

	return nil
}

// Remove deletes the given slash-relative files under root.
func Remove(root string, files ...string) error {
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		if err := os.Remove(full); err != nil {
			return fmt.Errorf("failed to remove %s: %w", full, err)
		}
	}
	return nil
}

// OSPath maps a slash-relative path to an absolute host path under root.
func OSPath(root, relPath string) string {
	return filepath.Join(root, filepath.FromSlash(relPath))
}
