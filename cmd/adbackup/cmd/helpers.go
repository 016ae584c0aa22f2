package cmd

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/galra/adbackup/internal/config"
)

// loadConfig loads the config file (or defaults when the default file is
// absent), applies CLI overrides and validates the result.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(GetConfigFile(), ConfigFileExplicit())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.ADBPath, overrides.Serial, overrides.AssumeYes)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// yesPattern accepts "y" or "yes" in any case, as the only affirmative answers.
var yesPattern = regexp.MustCompile(`^y(es)?$`)

// askYesNo asks an interactive yes/no question on the terminal.
// Anything but y/yes counts as no.
func askYesNo(prompt string) bool {
	fmt.Printf("%s y(es)/n(o) ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return yesPattern.MatchString(strings.ToLower(strings.TrimSpace(answer)))
}
