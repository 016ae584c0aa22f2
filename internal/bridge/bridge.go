// Package bridge wraps the ADB bridge tool as an opaque subprocess client.
// All device interaction (listing, size and hash queries, pulls) goes
// through here; output parsing happens host-side so device shells only run
// plain test/find/stat/sha1sum commands.
package bridge

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"time"

	"github.com/galra/adbackup/internal/config"
	"github.com/galra/adbackup/internal/logger"
	"github.com/galra/adbackup/internal/types"
)

// PathType describes what a remote path points at.
type PathType string

const (
	PathFile      PathType = "file"
	PathDirectory PathType = "directory"
	PathNone      PathType = "none"
)

// Device is one entry of the bridge tool's device list.
type Device struct {
	Serial string
	State  string // device, offline, unauthorized, no permissions
}

// Client talks to a single Android device through the bridge tool.
type Client struct {
	runner Runner
	serial string // optional -s routing
	logger *logger.Logger
}

// NewClient creates a Client backed by the real adb binary.
func NewClient(cfg *config.BridgeConfig, log *logger.Logger) *Client {
	runner := NewExecRunner(cfg.ADBPath, time.Duration(cfg.TimeoutSeconds)*time.Second)
	return NewClientWithRunner(runner, cfg.Serial, log)
}

// NewClientWithRunner creates a Client with a custom runner. Used by tests.
func NewClientWithRunner(runner Runner, serial string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewDefault()
	}
	if serial != "" {
		log = log.WithDevice(serial)
	}
	return &Client{
		runner: runner,
		serial: serial,
		logger: log,
	}
}

// run invokes the bridge tool, routing to the configured serial if set.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	if c.serial != "" {
		args = append([]string{"-s", c.serial}, args...)
	}
	return c.runner.Run(ctx, args...)
}

// shell runs a script in the device shell.
func (c *Client) shell(ctx context.Context, script string) (string, error) {
	return c.run(ctx, "shell", script)
}

// Devices lists devices known to the bridge tool.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	out, err := c.run(ctx, "devices")
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return parseDevices(out), nil
}

// CheckDevice verifies that a usable device is connected. With a serial
// configured, that exact device must be in "device" state; otherwise any
// connected device qualifies.
func (c *Client) CheckDevice(ctx context.Context) error {
	devices, err := c.Devices(ctx)
	if err != nil {
		return err
	}
	for _, d := range devices {
		if d.State != "device" {
			continue
		}
		if c.serial == "" || d.Serial == c.serial {
			return nil
		}
	}
	if c.serial != "" {
		return fmt.Errorf("device %q not connected", c.serial)
	}
	return fmt.Errorf("no device connected")
}

// PathType reports whether the remote path is a file, a directory, or absent.
func (c *Client) PathType(ctx context.Context, remotePath string) (PathType, error) {
	q := shellQuote(remotePath)
	script := fmt.Sprintf("test -f %s && echo file || ( test -d %s && echo directory || echo none )", q, q)
	out, err := c.shell(ctx, script)
	if err != nil {
		return PathNone, fmt.Errorf("failed to stat remote path %s: %w", remotePath, err)
	}
	switch PathType(out) {
	case PathFile, PathDirectory, PathNone:
		return PathType(out), nil
	default:
		return PathNone, fmt.Errorf("unexpected path type output %q for %s", out, remotePath)
	}
}

// List enumerates all files and directories under root, recursively.
// Entries are slash paths relative to root, in device traversal order.
// Symlinks are followed (find -L), matching what a pull would copy.
func (c *Client) List(ctx context.Context, root string) (*types.TreeListing, error) {
	q := shellQuote(root)

	filesOut, err := c.shell(ctx, fmt.Sprintf("cd %s && find -L . -type f", q))
	if err != nil {
		return nil, fmt.Errorf("failed to list remote files: %w", err)
	}

	dirsOut, err := c.shell(ctx, fmt.Sprintf("cd %s && find -L . -type d", q))
	if err != nil {
		return nil, fmt.Errorf("failed to list remote directories: %w", err)
	}

	listing := &types.TreeListing{}
	for _, line := range splitLines(filesOut) {
		listing.Files = append(listing.Files, stripDotSlash(line))
	}
	for _, line := range splitLines(dirsOut) {
		if line == "." {
			continue
		}
		listing.Dirs = append(listing.Dirs, stripDotSlash(line))
	}

	c.logger.Debugw("Listed remote tree",
		"root", root,
		"files", len(listing.Files),
		"dirs", len(listing.Dirs),
	)

	return listing, nil
}

// FileSize returns the size in bytes of root/relPath on the device.
func (c *Client) FileSize(ctx context.Context, root, relPath string) (int64, error) {
	full := joinRemote(root, relPath)
	out, err := c.shell(ctx, fmt.Sprintf("stat -c %%s %s", shellQuote(full)))
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", full, err)
	}
	size, err := strconv.ParseInt(firstField(out), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected stat output %q for %s: %w", out, full, err)
	}
	return size, nil
}

// HashFile returns the SHA1 hex digest of root/relPath computed on the device.
func (c *Client) HashFile(ctx context.Context, root, relPath string) (string, error) {
	full := joinRemote(root, relPath)
	out, err := c.shell(ctx, fmt.Sprintf("sha1sum %s", shellQuote(full)))
	if err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", full, err)
	}
	digest := firstField(out)
	if !sha1Hex.MatchString(digest) {
		return "", fmt.Errorf("unexpected sha1sum output %q for %s", out, full)
	}
	return digest, nil
}

// Pull copies a remote file into the given local directory. The bridge tool
// keeps the file's base name, so the caller passes the parent directory of
// the intended destination.
func (c *Client) Pull(ctx context.Context, remotePath, localDir string) error {
	if _, err := c.run(ctx, "pull", remotePath, localDir); err != nil {
		return fmt.Errorf("failed to pull %s: %w", remotePath, err)
	}
	return nil
}

// Serial returns the configured device serial, if any.
func (c *Client) Serial() string {
	return c.serial
}

// joinRemote joins a device root and a relative slash path.
func joinRemote(root, relPath string) string {
	if relPath == "" {
		return root
	}
	return path.Join(root, relPath)
}
