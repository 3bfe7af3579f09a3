package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd verifies the command tree.
func TestGetRootCmd(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "gnobs", cmd.Use)
	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)

	var names []string
	for _, v := range cmd.Commands() {
		names = append(names, v.Name())
	}
	for _, v := range []string{"create", "extract", "ingest", "features",
		"optimize"} {
		assert.Contains(t, names, v)
	}

	for _, v := range []string{"dialect", "db-path", "schema"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(v), v)
	}
}

// TestGetRootCmd_Version verifies both version flags.
func TestGetRootCmd_Version(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		cmd := getRootCmd()
		cmd.Version = "version: v1.2.3\nbuild:   abc123"

		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{flag})

		require.NoError(t, cmd.Execute())
		assert.Contains(t, buf.String(), "v1.2.3", flag)
		assert.Contains(t, buf.String(), "abc123", flag)
	}
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	help := buf.String()
	for _, v := range []string{"GNobs", "PostgreSQL", "DuckDB", "SQLite",
		"GNOBS_", "ingest"} {
		assert.Contains(t, help, v)
	}
}
