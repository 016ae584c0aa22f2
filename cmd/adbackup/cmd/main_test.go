package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	// Execute() calls os.Exit(1) on error, so the error path cannot run
	// inside a test. This is primarily a compile-time check.
	assert.NotNil(t, Execute)
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version, "Version should not be empty")
	assert.NotEmpty(t, Commit, "Commit should not be empty")
}

func TestCLIFlagsVariables(t *testing.T) {
	// Package-level variables set by cobra flags via init()
	assert.Equal(t, "adbackup.yaml", cfgFile, "cfgFile should default to adbackup.yaml")
	assert.Equal(t, "", logLevel)
	assert.Equal(t, "", logFormat)
	assert.Equal(t, "", adbPath)
	assert.Equal(t, "", serial)
	assert.Equal(t, false, assumeYes)
}

func TestCLIOverrideStruct(t *testing.T) {
	overrides := CLIOverrides{
		LogLevel:  "debug",
		LogFormat: "json",
		ADBPath:   "/opt/adb",
		Serial:    "R58M12ABCDE",
		AssumeYes: true,
	}

	assert.Equal(t, "debug", overrides.LogLevel)
	assert.Equal(t, "json", overrides.LogFormat)
	assert.Equal(t, "/opt/adb", overrides.ADBPath)
	assert.Equal(t, "R58M12ABCDE", overrides.Serial)
	assert.True(t, overrides.AssumeYes)
}
