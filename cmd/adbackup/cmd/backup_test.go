package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackupCommandStructure(t *testing.T) {
	assert.NotNil(t, backupCmd)
	assert.Equal(t, "backup", backupCmd.Use)
	assert.NotEmpty(t, backupCmd.Short)
	assert.NotEmpty(t, backupCmd.Long)
	assert.NotNil(t, backupCmd.RunE)
}

func TestBackupCommandFlags(t *testing.T) {
	flags := backupCmd.Flags()

	sourceFlag := flags.Lookup("source")
	assert.NotNil(t, sourceFlag)
	assert.Equal(t, "", sourceFlag.DefValue)

	destFlag := flags.Lookup("dest")
	assert.NotNil(t, destFlag)
	assert.Equal(t, "", destFlag.DefValue)

	overrideFlag := flags.Lookup("override")
	assert.NotNil(t, overrideFlag)
	assert.Equal(t, "o", overrideFlag.Shorthand)
	assert.Equal(t, "false", overrideFlag.DefValue)

	autoFlag := flags.Lookup("auto")
	assert.NotNil(t, autoFlag)
	assert.Equal(t, "a", autoFlag.Shorthand)
	assert.Equal(t, "false", autoFlag.DefValue)

	assert.NotNil(t, flags.Lookup("hash-method"))
	assert.NotNil(t, flags.Lookup("delete-faulty"))
}

func TestBackupCommandExample(t *testing.T) {
	assert.Contains(t, backupCmd.Long, "Example:")
	assert.Contains(t, backupCmd.Long, "adbackup backup")
}

func TestBackupCommandStepsDocumentation(t *testing.T) {
	doc := backupCmd.Long
	assert.Contains(t, doc, "Check device")
	assert.Contains(t, doc, "classify")
	assert.Contains(t, doc, "Pull")
}

func TestBackupCmd_Execute_MissingPaths(t *testing.T) {
	origSource := backupSource
	origDest := backupDest
	defer func() {
		backupSource = origSource
		backupDest = origDest
		rootCmd.SetArgs(nil)
	}()

	// No source or destination anywhere: path validation must fail before
	// any device interaction.
	rootCmd.SetArgs([]string{"backup"})
	err := rootCmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "backup.source")
}
