package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDevicesCommandStructure(t *testing.T) {
	assert.NotNil(t, devicesCmd)
	assert.Equal(t, "devices", devicesCmd.Use)
	assert.NotEmpty(t, devicesCmd.Short)
	assert.NotEmpty(t, devicesCmd.Long)
	assert.NotNil(t, devicesCmd.RunE)
}

func TestDevicesCommandExample(t *testing.T) {
	assert.Contains(t, devicesCmd.Long, "Example:")
	assert.Contains(t, devicesCmd.Long, "adbackup devices")
}

func TestDevicesCommandHasNoFlags(t *testing.T) {
	assert.False(t, devicesCmd.Flags().HasFlags())
}
