package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded := expandPath("~/.mouseminder/config.json")
	assert.Equal(t, filepath.Join(home, ".mouseminder", "config.json"), expanded)

	abs := expandPath("/tmp/config.json")
	assert.Equal(t, "/tmp/config.json", abs)

	rel := expandPath("config.json")
	assert.True(t, filepath.IsAbs(rel), "relative paths are made absolute")
	assert.True(t, strings.HasSuffix(rel, "config.json"))
}

func TestRootCommandFlags(t *testing.T) {
	for _, name := range []string{"hotkey", "poll-interval", "idle-threshold", "config", "headless"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), "missing flag --%s", name)
	}
	for _, name := range []string{"log-file", "debug"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing persistent flag --%s", name)
	}
}

func TestVersionCommandRegistered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"version"})
	require.NoError(t, err)
	assert.Equal(t, "version", cmd.Name())
}
