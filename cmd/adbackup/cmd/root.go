package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile   string
	logLevel  string
	logFormat string
	adbPath   string
	serial    string
	assumeYes bool
)

var rootCmd = &cobra.Command{
	Use:   "adbackup",
	Short: "Android Directory Backup & Verifier",
	Long: `A CLI tool for safely backing up files and directories from an Android
device to the local computer over ADB, with integrity verification.

Features:
  - Recursive directory backup via the ADB bridge tool
  - Size and SHA1 verification of existing backups
  - Post-pull validation of every copied file
  - Faulty copy detection and cleanup
  - Dry-run planning with total size estimates`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "adbackup.yaml",
		"Path to configuration file (optional)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Bridge overrides
	rootCmd.PersistentFlags().StringVar(&adbPath, "adb-path", "",
		"Path to the ADB binary, if not in PATH")
	rootCmd.PersistentFlags().StringVar(&serial, "serial", "",
		"Device serial to target when multiple devices are connected")

	// Prompt override
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false,
		"Automatically approve deletion of faulty backups and overrides")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// ConfigFileExplicit reports whether the user set --config themselves.
// A missing default config file is fine; a missing explicit one is an error.
func ConfigFileExplicit() bool {
	return rootCmd.PersistentFlags().Changed("config")
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel  string
	LogFormat string
	ADBPath   string
	Serial    string
	AssumeYes bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:  logLevel,
		LogFormat: logFormat,
		ADBPath:   adbPath,
		Serial:    serial,
		AssumeYes: assumeYes,
	}
}
