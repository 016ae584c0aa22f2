// Package bridgetest provides a fake bridge Runner that simulates a device
// filesystem, so verification and backup logic can be tested without ADB or
// a phone. It understands exactly the shell commands the bridge client
// issues: test/find/stat/sha1sum plus the devices and pull subcommands.
package bridgetest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Device is a fake bridge Runner backed by an in-memory file tree.
type Device struct {
	Serial string
	// Files maps absolute device paths to content.
	Files map[string][]byte
	// Dirs lists absolute device directories that exist even when empty.
	Dirs []string

	// FailHash makes sha1sum invocations fail for the given paths.
	FailHash map[string]bool
	// FailStat makes stat invocations fail for the given paths.
	FailStat map[string]bool
	// PullTruncate writes only the first N bytes when pulling the given path.
	PullTruncate map[string]int
	// PullDrop makes pull report success without creating the file.
	PullDrop map[string]bool

	mu    sync.Mutex
	calls []string
}

// NewDevice creates a fake device with the given file tree.
func NewDevice(serial string, files map[string][]byte) *Device {
	return &Device{
		Serial:       serial,
		Files:        files,
		FailHash:     map[string]bool{},
		FailStat:     map[string]bool{},
		PullTruncate: map[string]int{},
		PullDrop:     map[string]bool{},
	}
}

// Calls returns the recorded invocations, one space-joined string each.
func (d *Device) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

// CallCount counts recorded invocations containing the given substring.
func (d *Device) CallCount(substr string) int {
	n := 0
	for _, c := range d.Calls() {
		if strings.Contains(c, substr) {
			n++
		}
	}
	return n
}

var (
	pathTypeRe = regexp.MustCompile(`^test -f '(.*)' && echo file \|\| \( test -d '(.*)' && echo directory \|\| echo none \)$`)
	findRe     = regexp.MustCompile(`^cd '(.*)' && find -L \. -type ([fd])$`)
	statRe     = regexp.MustCompile(`^stat -c %s '(.*)'$`)
	sha1Re     = regexp.MustCompile(`^sha1sum '(.*)'$`)
)

// Run implements bridge.Runner.
func (d *Device) Run(ctx context.Context, args ...string) (string, error) {
	d.mu.Lock()
	d.calls = append(d.calls, strings.Join(args, " "))
	d.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Strip serial routing.
	if len(args) >= 2 && args[0] == "-s" {
		if d.Serial != "" && args[1] != d.Serial {
			return "", fmt.Errorf("adb: device '%s' not found", args[1])
		}
		args = args[2:]
	}
	if len(args) == 0 {
		return "", fmt.Errorf("adb: no command")
	}

	switch args[0] {
	case "devices":
		serial := d.Serial
		if serial == "" {
			serial = "emulator-5554"
		}
		return fmt.Sprintf("List of devices attached\n%s\tdevice\n", serial), nil
	case "shell":
		if len(args) != 2 {
			return "", fmt.Errorf("adb shell: expected one script, got %d args", len(args)-1)
		}
		return d.runShell(args[1])
	case "pull":
		if len(args) != 3 {
			return "", fmt.Errorf("adb pull: expected remote and local, got %v", args[1:])
		}
		return d.pull(args[1], args[2])
	default:
		return "", fmt.Errorf("adb: unknown command %q", args[0])
	}
}

func (d *Device) runShell(script string) (string, error) {
	if m := pathTypeRe.FindStringSubmatch(script); m != nil {
		p := unescape(m[1])
		if _, ok := d.Files[p]; ok {
			return "file", nil
		}
		if d.isDir(p) {
			return "directory", nil
		}
		return "none", nil
	}

	if m := findRe.FindStringSubmatch(script); m != nil {
		root := unescape(m[1])
		if !d.isDir(root) {
			return "", fmt.Errorf("sh: cd: %s: No such file or directory", root)
		}
		if m[2] == "f" {
			return strings.Join(d.findFiles(root), "\n"), nil
		}
		return strings.Join(d.findDirs(root), "\n"), nil
	}

	if m := statRe.FindStringSubmatch(script); m != nil {
		p := unescape(m[1])
		if d.FailStat[p] {
			return "", fmt.Errorf("stat: '%s': Permission denied", p)
		}
		content, ok := d.Files[p]
		if !ok {
			return "", fmt.Errorf("stat: cannot stat '%s': No such file or directory", p)
		}
		return fmt.Sprintf("%d", len(content)), nil
	}

	if m := sha1Re.FindStringSubmatch(script); m != nil {
		p := unescape(m[1])
		if d.FailHash[p] {
			return "", fmt.Errorf("sha1sum: %s: Permission denied", p)
		}
		content, ok := d.Files[p]
		if !ok {
			return "", fmt.Errorf("sha1sum: %s: No such file or directory", p)
		}
		sum := sha1.Sum(content)
		return fmt.Sprintf("%s  %s", hex.EncodeToString(sum[:]), p), nil
	}

	return "", fmt.Errorf("fake device: unrecognized script %q", script)
}

func (d *Device) pull(remote, localDir string) (string, error) {
	content, ok := d.Files[remote]
	if !ok {
		return "", fmt.Errorf("adb: error: remote object '%s' does not exist", remote)
	}
	if d.PullDrop[remote] {
		return "1 file pulled", nil
	}
	if n, ok := d.PullTruncate[remote]; ok && n < len(content) {
		content = content[:n]
	}
	dst := filepath.Join(localDir, path.Base(remote))
	if err := os.WriteFile(dst, content, 0644); err != nil {
		return "", err
	}
	return "1 file pulled", nil
}

// isDir reports whether p exists as a directory: listed explicitly or an
// ancestor of any file.
func (d *Device) isDir(p string) bool {
	p = strings.TrimSuffix(p, "/")
	for _, dir := range d.Dirs {
		if dir == p || strings.HasPrefix(dir, p+"/") {
			return true
		}
	}
	for f := range d.Files {
		if strings.HasPrefix(f, p+"/") {
			return true
		}
	}
	return false
}

// findFiles lists files under root in sorted order, as find prints them.
func (d *Device) findFiles(root string) []string {
	var out []string
	prefix := strings.TrimSuffix(root, "/") + "/"
	for f := range d.Files {
		if strings.HasPrefix(f, prefix) {
			out = append(out, "./"+strings.TrimPrefix(f, prefix))
		}
	}
	sort.Strings(out)
	return out
}

// findDirs lists directories under root including ".", as find prints them.
func (d *Device) findDirs(root string) []string {
	prefix := strings.TrimSuffix(root, "/") + "/"
	set := map[string]bool{".": true}

	add := func(p string) {
		p = strings.TrimSuffix(p, "/")
		if !strings.HasPrefix(p, prefix) {
			return // directly under root, or outside it
		}
		rel := strings.TrimPrefix(p, prefix)
		for rel != "" && rel != "." {
			set["./"+rel] = true
			rel = path.Dir(rel)
			if rel == "." {
				break
			}
		}
	}

	for f := range d.Files {
		if strings.HasPrefix(f, prefix) {
			add(path.Dir(f))
		}
	}
	for _, dir := range d.Dirs {
		if strings.HasPrefix(dir, prefix) {
			add(dir)
		}
	}

	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// unescape reverses the bridge client's single-quote escaping.
func unescape(s string) string {
	return strings.ReplaceAll(s, `'\''`, `'`)
}
