package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanCommandStructure(t *testing.T) {
	assert.NotNil(t, planCmd)
	assert.Equal(t, "plan", planCmd.Use)
	assert.NotEmpty(t, planCmd.Short)
	assert.NotEmpty(t, planCmd.Long)
	assert.NotNil(t, planCmd.RunE)
}

func TestPlanCommandFlags(t *testing.T) {
	flags := planCmd.Flags()

	assert.NotNil(t, flags.Lookup("source"))
	assert.NotNil(t, flags.Lookup("dest"))
}

func TestPlanCommandExample(t *testing.T) {
	assert.Contains(t, planCmd.Long, "Example:")
	assert.Contains(t, planCmd.Long, "adbackup plan")
}

func TestPlanCommandDocumentation(t *testing.T) {
	doc := planCmd.Long
	assert.Contains(t, doc, "without")
	assert.Contains(t, doc, "Total transfer size")
}
