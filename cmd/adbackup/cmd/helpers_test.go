package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYesPattern(t *testing.T) {
	tests := []struct {
		answer string
		want   bool
	}{
		{"y", true},
		{"yes", true},
		{"n", false},
		{"no", false},
		{"", false},
		{"yep", false},
		{"ye", false},
		{"yess", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			assert.Equal(t, tt.want, yesPattern.MatchString(tt.answer))
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	origCfgFile := cfgFile
	defer func() { cfgFile = origCfgFile }()

	// Point at a missing default-named file: defaults apply
	cfgFile = filepath.Join(t.TempDir(), "adbackup.yaml")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "adb", cfg.Bridge.ADBPath)
	assert.Equal(t, "sha1", cfg.Verification.Method)
}

func TestLoadConfigFromFile(t *testing.T) {
	origCfgFile := cfgFile
	defer func() { cfgFile = origCfgFile }()

	path := filepath.Join(t.TempDir(), "adbackup.yaml")
	content := `
bridge:
  serial: R58M12ABCDE

verification:
  method: size
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfgFile = path

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "R58M12ABCDE", cfg.Bridge.Serial)
	assert.Equal(t, "size", cfg.Verification.Method)
}

func TestLoadConfigInvalid(t *testing.T) {
	origCfgFile := cfgFile
	defer func() { cfgFile = origCfgFile }()

	path := filepath.Join(t.TempDir(), "adbackup.yaml")
	content := `
verification:
  method: md5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfgFile = path

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verification.method")
}
