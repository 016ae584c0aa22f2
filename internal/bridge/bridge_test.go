package bridge_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galra/adbackup/internal/bridge"
	"github.com/galra/adbackup/internal/bridge/bridgetest"
)

func newClient(t *testing.T, dev *bridgetest.Device, serial string) *bridge.Client {
	t.Helper()
	return bridge.NewClientWithRunner(dev, serial, nil)
}

func TestDevices(t *testing.T) {
	dev := bridgetest.NewDevice("R58M12ABCDE", nil)
	client := newClient(t, dev, "")

	devices, err := client.Devices(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "R58M12ABCDE", devices[0].Serial)
	assert.Equal(t, "device", devices[0].State)
}

func TestCheckDevice(t *testing.T) {
	dev := bridgetest.NewDevice("R58M12ABCDE", nil)

	assert.NoError(t, newClient(t, dev, "").CheckDevice(context.Background()))
	assert.NoError(t, newClient(t, dev, "R58M12ABCDE").CheckDevice(context.Background()))
}

func TestCheckDeviceWrongSerial(t *testing.T) {
	dev := bridgetest.NewDevice("R58M12ABCDE", nil)
	client := newClient(t, dev, "OTHER")

	err := client.CheckDevice(context.Background())
	require.Error(t, err)
}

func TestPathType(t *testing.T) {
	dev := bridgetest.NewDevice("", map[string][]byte{
		"/sdcard/DCIM/a.jpg": []byte("aaa"),
	})
	client := newClient(t, dev, "")
	ctx := context.Background()

	pt, err := client.PathType(ctx, "/sdcard/DCIM/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, bridge.PathFile, pt)

	pt, err = client.PathType(ctx, "/sdcard/DCIM")
	require.NoError(t, err)
	assert.Equal(t, bridge.PathDirectory, pt)

	pt, err = client.PathType(ctx, "/sdcard/Nope")
	require.NoError(t, err)
	assert.Equal(t, bridge.PathNone, pt)
}

func TestList(t *testing.T) {
	dev := bridgetest.NewDevice("", map[string][]byte{
		"/sdcard/DCIM/a.jpg":        []byte("aaa"),
		"/sdcard/DCIM/sub/b.jpg":    []byte("bbbb"),
		"/sdcard/DCIM/sub/in/c.mp4": []byte("c"),
	})
	client := newClient(t, dev, "")

	listing, err := client.List(context.Background(), "/sdcard/DCIM")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.jpg", "sub/b.jpg", "sub/in/c.mp4"}, listing.Files)
	assert.ElementsMatch(t, []string{"sub", "sub/in"}, listing.Dirs)
	// The listing root itself is not an entry
	assert.NotContains(t, listing.Dirs, ".")
}

func TestListPreservesFilenameWhitespace(t *testing.T) {
	dev := bridgetest.NewDevice("", map[string][]byte{
		"/sdcard/DCIM/trailing.jpg ": []byte("a"),
		"/sdcard/DCIM/ leading.jpg":  []byte("b"),
	})
	client := newClient(t, dev, "")

	listing, err := client.List(context.Background(), "/sdcard/DCIM")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"trailing.jpg ", " leading.jpg"}, listing.Files)
}

func TestFileSize(t *testing.T) {
	dev := bridgetest.NewDevice("", map[string][]byte{
		"/sdcard/DCIM/a.jpg": []byte("four"),
	})
	client := newClient(t, dev, "")

	size, err := client.FileSize(context.Background(), "/sdcard/DCIM", "a.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(4), size)
}

func TestFileSizeMissing(t *testing.T) {
	dev := bridgetest.NewDevice("", nil)
	client := newClient(t, dev, "")

	_, err := client.FileSize(context.Background(), "/sdcard/DCIM", "nope.jpg")
	require.Error(t, err)
}

func TestHashFile(t *testing.T) {
	dev := bridgetest.NewDevice("", map[string][]byte{
		"/sdcard/DCIM/a.txt": []byte("abc"),
	})
	client := newClient(t, dev, "")

	hash, err := client.HashFile(context.Background(), "/sdcard/DCIM", "a.txt")
	require.NoError(t, err)
	// sha1("abc")
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", hash)
}

func TestSerialRouting(t *testing.T) {
	dev := bridgetest.NewDevice("R58M12ABCDE", map[string][]byte{
		"/sdcard/a.txt": []byte("abc"),
	})
	client := newClient(t, dev, "R58M12ABCDE")

	_, err := client.HashFile(context.Background(), "/sdcard", "a.txt")
	require.NoError(t, err)

	calls := dev.Calls()
	require.NotEmpty(t, calls)
	assert.True(t, strings.HasPrefix(calls[len(calls)-1], "-s R58M12ABCDE "),
		"expected -s routing, got %q", calls[len(calls)-1])
}

func TestQuotedPaths(t *testing.T) {
	dev := bridgetest.NewDevice("", map[string][]byte{
		"/sdcard/WhatsApp Images (1)/pic.jpg": []byte("x"),
	})
	client := newClient(t, dev, "")

	listing, err := client.List(context.Background(), "/sdcard/WhatsApp Images (1)")
	require.NoError(t, err)
	assert.Equal(t, []string{"pic.jpg"}, listing.Files)

	size, err := client.FileSize(context.Background(), "/sdcard/WhatsApp Images (1)", "pic.jpg")
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)
}

func TestRunnerErrorsSurface(t *testing.T) {
	dev := bridgetest.NewDevice("", map[string][]byte{
		"/sdcard/a.txt": []byte("abc"),
	})
	dev.FailHash["/sdcard/a.txt"] = true
	client := newClient(t, dev, "")

	_, err := client.HashFile(context.Background(), "/sdcard", "a.txt")
	require.Error(t, err)
	assert.Contains(t, fmt.Sprint(err), "a.txt")
}
