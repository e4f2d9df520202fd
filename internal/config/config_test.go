package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second, cfg.Scanning.Rate())
	assert.Equal(t, 500*time.Millisecond, cfg.Switch.HoldTime())
	assert.True(t, cfg.Cursor.Block())
	assert.False(t, cfg.Scanning.Manual())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	cfg.Scanning.Method = "radar"
	cfg.Switch.IgnoreRepeat = true
	cfg.Switches = append(cfg.Switches, SwitchConfig{Name: "Back", Code: "esc", Press: "back"})
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := NewConfigServiceAt(filepath.Join(t.TempDir(), "absent.toml"))
	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scanning]\nrate_ms = 750\n"), 0644))

	cfg, err := NewConfigServiceAt(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 750*time.Millisecond, cfg.Scanning.Rate())
	assert.Equal(t, "item", cfg.Scanning.Method)
	assert.Equal(t, DefaultSwitches(), cfg.Switches)
}

func TestDuplicateSwitchCodeRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Switches = []SwitchConfig{
		{Name: "A", Code: "space", Press: "select"},
		{Name: "B", Code: "space", Press: "next"},
	}
	assert.ErrorIs(t, cfg.Validate(), ErrDuplicateSwitch)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"mode", func(c *Config) { c.Scanning.Mode = "sometimes" }},
		{"method", func(c *Config) { c.Scanning.Method = "spiral" }},
		{"cursor mode", func(c *Config) { c.Cursor.Mode = "triple" }},
		{"rate", func(c *Config) { c.Scanning.RateMS = 0 }},
		{"group size", func(c *Config) { c.Items.GroupSize = 0 }},
		{"negative delay", func(c *Config) { c.Selection.AutoSelectDelayMS = -1 }},
		{"threshold", func(c *Config) { c.Items.ThresholdDP = 0 }},
		{"radar", func(c *Config) { c.Radar.AngleStepDeg = 0 }},
		{"empty code", func(c *Config) { c.Switches = []SwitchConfig{{Name: "x"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLoadInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("scanning = ["), 0644))
	_, err := NewConfigServiceAt(path).Load()
	assert.Error(t, err)
}
