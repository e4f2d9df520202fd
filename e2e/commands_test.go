//go:build e2e && unix

package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)

	out, err := tf.Command("--help")
	require.NoError(t, err, "Help command should run without error")
	assert.Contains(t, out, "Usage")
	for _, sub := range []string{"run", "config", "log", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)

	out, err := tf.Command("config", "path")
	require.NoError(t, err)
	assert.Equal(t, tf.ConfigPath(), strings.TrimSpace(out))

	_, err = tf.Command("config", "init")
	require.NoError(t, err)
	_, err = os.Stat(tf.ConfigPath())
	require.NoError(t, err, "config init should write the file")

	out, err = tf.Command("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "[scanning]")

	_, err = tf.Command("config", "init")
	assert.Error(t, err, "init should refuse to overwrite")
}

func TestUnknownFlagExitsWithUsage(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)

	out, err := tf.Command("--bogus")
	require.Error(t, err)
	assert.Contains(t, out, "unknown flag")
}
