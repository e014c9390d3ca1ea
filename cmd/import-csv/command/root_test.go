package command

import (
	"testing"

	"reviewhub/internal/importer"

	"github.com/stretchr/testify/assert"
)

func TestRoot_RequiresAction(t *testing.T) {
	rootCmd.SetArgs([]string{"titles.csv"})
	err := rootCmd.Execute()
	assert.ErrorIs(t, err, importer.ErrNoAction)
}

func TestRoot_RequiresFile(t *testing.T) {
	rootCmd.SetArgs([]string{"--write"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}
