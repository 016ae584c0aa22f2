package bridge

import (
	"regexp"
	"strings"
)

// normalizeOutput strips carriage returns and surrounding newlines from
// bridge tool output. Spaces are kept: device filenames can begin or end
// with one, and find output must survive round-tripping.
func normalizeOutput(s string) string {
	return strings.Trim(strings.ReplaceAll(s, "\r", ""), "\n")
}

// splitLines splits normalized output into non-empty lines, preserving any
// whitespace inside them.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// deviceLine matches one entry of `adb devices` output: serial, whitespace, state.
var deviceLine = regexp.MustCompile(`^(\S+)\s+(device|offline|unauthorized|no permissions)$`)

// parseDevices parses `adb devices` output into device entries.
// The "List of devices attached" header and daemon chatter are skipped.
func parseDevices(out string) []Device {
	var devices []Device
	for _, line := range splitLines(out) {
		m := deviceLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		devices = append(devices, Device{Serial: m[1], State: m[2]})
	}
	return devices
}

// firstField returns the first whitespace-separated field of s.
func firstField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// shellQuote wraps s in single quotes for the device shell, escaping any
// embedded single quotes. Device paths routinely contain spaces and
// parentheses (e.g. "WhatsApp Images (1)").
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// stripDotSlash removes the leading "./" that `find .` prepends to results.
func stripDotSlash(s string) string {
	return strings.TrimPrefix(s, "./")
}

// sha1Hex matches a full SHA1 digest in hex.
var sha1Hex = regexp.MustCompile(`^[0-9a-f]{40}$`)
