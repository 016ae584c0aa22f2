package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeOutput(t *testing.T) {
	// Device shells emit \r\r\n line endings over some transports
	assert.Equal(t, "file", normalizeOutput("file\r\r\n"))
	assert.Equal(t, "a\nb", normalizeOutput("a\r\nb\r\n"))
	// Spaces are filename material and must survive, even on the last line
	assert.Equal(t, "./a.jpg \n./ b.jpg", normalizeOutput("./a.jpg \r\n./ b.jpg\r\n"))
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{"a", "b"}, splitLines("a\n\nb\n"))
	// Leading and trailing spaces inside a line are preserved
	assert.Equal(t, []string{"./trailing ", "./ leading"}, splitLines("./trailing \n./ leading"))
}

func TestParseDevices(t *testing.T) {
	out := normalizeOutput(`List of devices attached
* daemon started successfully
R58M12ABCDE	device
emulator-5554	offline
0123456789	unauthorized
`)
	devices := parseDevices(out)

	assert.Len(t, devices, 3)
	assert.Equal(t, Device{Serial: "R58M12ABCDE", State: "device"}, devices[0])
	assert.Equal(t, Device{Serial: "emulator-5554", State: "offline"}, devices[1])
	assert.Equal(t, Device{Serial: "0123456789", State: "unauthorized"}, devices[2])
}

func TestParseDevicesEmpty(t *testing.T) {
	devices := parseDevices("List of devices attached")
	assert.Empty(t, devices)
}

func TestFirstField(t *testing.T) {
	assert.Equal(t, "da39a3ee", firstField("da39a3ee  /sdcard/x.jpg"))
	assert.Equal(t, "", firstField("   "))
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "'/sdcard/DCIM'", shellQuote("/sdcard/DCIM"))
	// Spaces and parens stay inside the quotes
	assert.Equal(t, "'/sdcard/WhatsApp Images (1)'", shellQuote("/sdcard/WhatsApp Images (1)"))
	// Embedded single quote is escaped
	assert.Equal(t, `'/sdcard/it'\''s here'`, shellQuote("/sdcard/it's here"))
}

func TestStripDotSlash(t *testing.T) {
	assert.Equal(t, "a/b.jpg", stripDotSlash("./a/b.jpg"))
	assert.Equal(t, "a/b.jpg", stripDotSlash("a/b.jpg"))
}
