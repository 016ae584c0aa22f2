package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// validMethods are the accepted verification methods.
var validMethods = map[string]bool{
	"sha1": true,
	"size": true,
	"skip": true,
}

// Validate checks the configuration for required fields and valid values.
// Source and destination are validated separately by ValidatePaths, because
// commands like "devices" run without them.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if c.Bridge.ADBPath == "" {
		errors = append(errors, ValidationError{
			Field:   "bridge.adb_path",
			Message: "bridge tool path is required",
		})
	}

	if c.Bridge.TimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "bridge.timeout_seconds",
			Message: "timeout must not be negative",
		})
	}

	if !validMethods[c.Verification.Method] {
		errors = append(errors, ValidationError{
			Field:   "verification.method",
			Message: fmt.Sprintf("method must be one of sha1, size, skip (got %q)", c.Verification.Method),
		})
	}

	if err := c.validateLogging(); err != nil {
		errors = append(errors, err...)
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidatePaths checks that source and destination are set. Called by the
// commands that actually touch the device tree.
func (c *Config) ValidatePaths() error {
	var errors ValidationErrors

	if c.Backup.Source == "" {
		errors = append(errors, ValidationError{
			Field:   "backup.source",
			Message: "device source path is required",
		})
	}

	if c.Backup.Destination == "" {
		errors = append(errors, ValidationError{
			Field:   "backup.destination",
			Message: "local destination path is required",
		})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("level must be one of debug, info, warn, error (got %q)", c.Logging.Level),
		})
	}

	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("format must be json or text (got %q)", c.Logging.Format),
		})
	}

	return errors
}
