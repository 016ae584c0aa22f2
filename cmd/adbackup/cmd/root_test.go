package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetConfigFile(t *testing.T) {
	// Save original value and restore after test
	originalCfgFile := cfgFile
	defer func() {
		cfgFile = originalCfgFile
	}()

	tests := []struct {
		name     string
		cfgValue string
		want     string
	}{
		{
			name:     "default config file",
			cfgValue: "adbackup.yaml",
			want:     "adbackup.yaml",
		},
		{
			name:     "custom config file",
			cfgValue: "/path/to/custom.yaml",
			want:     "/path/to/custom.yaml",
		},
		{
			name:     "config file with spaces",
			cfgValue: "/path/to/my config.yaml",
			want:     "/path/to/my config.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgFile = tt.cfgValue
			got := GetConfigFile()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetCLIOverrides(t *testing.T) {
	// Save original values and restore after test
	originalLogLevel := logLevel
	originalLogFormat := logFormat
	originalADBPath := adbPath
	originalSerial := serial
	originalAssumeYes := assumeYes
	defer func() {
		logLevel = originalLogLevel
		logFormat = originalLogFormat
		adbPath = originalADBPath
		serial = originalSerial
		assumeYes = originalAssumeYes
	}()

	tests := []struct {
		name      string
		logLevel  string
		logFormat string
		adbPath   string
		serial    string
		assumeYes bool
		want      CLIOverrides
	}{
		{
			name: "empty overrides",
			want: CLIOverrides{},
		},
		{
			name:      "all overrides set",
			logLevel:  "debug",
			logFormat: "text",
			adbPath:   "/opt/platform-tools/adb",
			serial:    "R58M12ABCDE",
			assumeYes: true,
			want: CLIOverrides{
				LogLevel:  "debug",
				LogFormat: "text",
				ADBPath:   "/opt/platform-tools/adb",
				Serial:    "R58M12ABCDE",
				AssumeYes: true,
			},
		},
		{
			name:     "partial overrides",
			logLevel: "warn",
			serial:   "emulator-5554",
			want: CLIOverrides{
				LogLevel: "warn",
				Serial:   "emulator-5554",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logLevel = tt.logLevel
			logFormat = tt.logFormat
			adbPath = tt.adbPath
			serial = tt.serial
			assumeYes = tt.assumeYes

			assert.Equal(t, tt.want, GetCLIOverrides())
		})
	}
}

func TestRootCommandStructure(t *testing.T) {
	assert.NotNil(t, rootCmd)
	assert.Equal(t, "adbackup", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootPersistentFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()

	configFlag := flags.Lookup("config")
	assert.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "adbackup.yaml", configFlag.DefValue)

	for _, name := range []string{"log-level", "log-format", "adb-path", "serial"} {
		f := flags.Lookup(name)
		assert.NotNil(t, f, "flag %s should exist", name)
		assert.Equal(t, "", f.DefValue)
	}

	yesFlag := flags.Lookup("yes")
	assert.NotNil(t, yesFlag)
	assert.Equal(t, "y", yesFlag.Shorthand)
	assert.Equal(t, "false", yesFlag.DefValue)
}

func TestRootSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"backup", "verify", "plan", "devices", "version"} {
		assert.True(t, names[want], "%s command should be added to root command", want)
	}
}
