// Package config provides configuration structures and loading for ADBackup.
package config

// Config represents the complete application configuration.
type Config struct {
	Bridge       BridgeConfig       `yaml:"bridge" mapstructure:"bridge"`
	Backup       BackupConfig       `yaml:"backup" mapstructure:"backup"`
	Verification VerificationConfig `yaml:"verification" mapstructure:"verification"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
}

// BridgeConfig represents the ADB bridge tool settings.
type BridgeConfig struct {
	ADBPath        string `yaml:"adb_path" mapstructure:"adb_path"`
	Serial         string `yaml:"serial" mapstructure:"serial"` // device serial for -s routing, optional
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// BackupConfig represents source/destination selection and copy policy.
type BackupConfig struct {
	Source      string `yaml:"source" mapstructure:"source"`           // device path (file or directory)
	Destination string `yaml:"destination" mapstructure:"destination"` // local directory
	Override    bool   `yaml:"override" mapstructure:"override"`       // re-pull files that already exist locally
	Auto        bool   `yaml:"auto" mapstructure:"auto"`               // verify, drop faulty copies, continue the backup
	AssumeYes   bool   `yaml:"assume_yes" mapstructure:"assume_yes"`   // answer yes to destructive prompts
}

// VerificationConfig represents backup verification settings.
type VerificationConfig struct {
	Method       string `yaml:"method" mapstructure:"method"` // "sha1", "size" or "skip"
	DeleteFaulty bool   `yaml:"delete_faulty" mapstructure:"delete_faulty"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Bridge: BridgeConfig{
			ADBPath:        "adb",
			TimeoutSeconds: 0, // no per-invocation timeout; pulling large files can take long
		},
		Verification: VerificationConfig{
			Method:       "sha1",
			DeleteFaulty: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
