package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	// AppName names the config directory and default file
	AppName = "switchscan"

	currentVersion = 1
)

var (
	// ErrInvalid is wrapped by every validation failure
	ErrInvalid = errors.New("invalid configuration")
	// ErrDuplicateSwitch is returned when two switches share a code
	ErrDuplicateSwitch = errors.New("duplicate switch code")
)

// Config is the read-only configuration surface of the scan engine
type Config struct {
	Version   int               `toml:"version"`
	Scanning  ScanningSettings  `toml:"scanning"`
	Items     ItemSettings      `toml:"items"`
	Cursor    CursorSettings    `toml:"cursor"`
	Radar     RadarSettings     `toml:"radar"`
	Switch    SwitchSettings    `toml:"switch"`
	Selection SelectionSettings `toml:"selection"`
	Switches  []SwitchConfig    `toml:"switches"`
}

// ScanningSettings apply to every strategy
type ScanningSettings struct {
	Mode                   string `toml:"mode"`   // auto | manual
	Method                 string `toml:"method"` // item | cursor | radar
	RateMS                 int    `toml:"rate_ms"`
	InitialDelayMS         int    `toml:"initial_delay_ms"`
	EmptyTargetsFallbackMS int    `toml:"empty_targets_fallback_ms"`
	StopOnSelect           bool   `toml:"stop_on_select"`
}

// ItemSettings configure grouping of discrete targets
type ItemSettings struct {
	ThresholdDP float64 `toml:"threshold_dp"`
	Density     float64 `toml:"density"`
	RowColumn   bool    `toml:"row_column"`
	GroupScan   bool    `toml:"group_scan"`
	GroupSize   int     `toml:"group_size"`
}

// CursorSettings configure the axis cursor strategy
type CursorSettings struct {
	Mode       string `toml:"mode"` // single | block
	FineRateMS int    `toml:"fine_rate_ms"`
	LineStepPX int    `toml:"line_step_px"`
}

// RadarSettings configure the radar strategy
type RadarSettings struct {
	FineRateMS   int     `toml:"fine_rate_ms"`
	AngleStepDeg float64 `toml:"angle_step_deg"`
	RadiusStepPX float64 `toml:"radius_step_px"`
}

// SwitchSettings configure press handling
type SwitchSettings struct {
	HoldTimeMS          int  `toml:"hold_time_ms"`
	IgnoreRepeat        bool `toml:"ignore_repeat"`
	IgnoreRepeatDelayMS int  `toml:"ignore_repeat_delay_ms"`
	PauseOnHold         bool `toml:"pause_on_hold"`
}

// SelectionSettings configure how chosen points are committed
type SelectionSettings struct {
	AutoSelect        bool `toml:"auto_select"`
	AutoSelectDelayMS int  `toml:"auto_select_delay_ms"`
	AutoRestart       bool `toml:"auto_restart"`
}

// SwitchConfig binds a raw input code to actions
type SwitchConfig struct {
	Name  string   `toml:"name"`
	Code  string   `toml:"code"`
	Press string   `toml:"press"`
	Hold  []string `toml:"hold,omitempty"`
}

func millis(v int) time.Duration { return time.Duration(v) * time.Millisecond }

func (s ScanningSettings) Rate() time.Duration         { return millis(s.RateMS) }
func (s ScanningSettings) InitialDelay() time.Duration { return millis(s.InitialDelayMS) }
func (s ScanningSettings) EmptyTargetsFallback() time.Duration {
	return millis(s.EmptyTargetsFallbackMS)
}
func (s ScanningSettings) Manual() bool { return s.Mode == "manual" }

func (c CursorSettings) FineRate() time.Duration { return millis(c.FineRateMS) }
func (c CursorSettings) Block() bool             { return c.Mode != "single" }

func (r RadarSettings) FineRate() time.Duration { return millis(r.FineRateMS) }

func (s SwitchSettings) HoldTime() time.Duration          { return millis(s.HoldTimeMS) }
func (s SwitchSettings) IgnoreRepeatDelay() time.Duration { return millis(s.IgnoreRepeatDelayMS) }

func (s SelectionSettings) AutoSelectDelay() time.Duration { return millis(s.AutoSelectDelayMS) }

// Validate checks value ranges and switch uniqueness
func (c *Config) Validate() error {
	switch c.Scanning.Mode {
	case "auto", "manual":
	default:
		return fmt.Errorf("%w: scanning.mode %q", ErrInvalid, c.Scanning.Mode)
	}
	switch c.Scanning.Method {
	case "item", "cursor", "radar":
	default:
		return fmt.Errorf("%w: scanning.method %q", ErrInvalid, c.Scanning.Method)
	}
	switch c.Cursor.Mode {
	case "single", "block":
	default:
		return fmt.Errorf("%w: cursor.mode %q", ErrInvalid, c.Cursor.Mode)
	}

	positive := map[string]int{
		"scanning.rate_ms":    c.Scanning.RateMS,
		"cursor.fine_rate_ms": c.Cursor.FineRateMS,
		"cursor.line_step_px": c.Cursor.LineStepPX,
		"radar.fine_rate_ms":  c.Radar.FineRateMS,
		"switch.hold_time_ms": c.Switch.HoldTimeMS,
		"items.group_size":    c.Items.GroupSize,
	}
	for key, v := range positive {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalid, key)
		}
	}
	if c.Scanning.InitialDelayMS < 0 || c.Switch.IgnoreRepeatDelayMS < 0 ||
		c.Selection.AutoSelectDelayMS < 0 || c.Scanning.EmptyTargetsFallbackMS < 0 {
		return fmt.Errorf("%w: delays must not be negative", ErrInvalid)
	}
	if c.Items.ThresholdDP <= 0 || c.Items.Density <= 0 {
		return fmt.Errorf("%w: items.threshold_dp and items.density must be positive", ErrInvalid)
	}
	if c.Radar.AngleStepDeg <= 0 || c.Radar.RadiusStepPX <= 0 {
		return fmt.Errorf("%w: radar steps must be positive", ErrInvalid)
	}

	seen := make(map[string]string, len(c.Switches))
	for _, sw := range c.Switches {
		if sw.Code == "" {
			return fmt.Errorf("%w: switch %q has no code", ErrInvalid, sw.Name)
		}
		if other, ok := seen[sw.Code]; ok {
			return fmt.Errorf("%w: %q used by %q and %q", ErrDuplicateSwitch, sw.Code, other, sw.Name)
		}
		seen[sw.Code] = sw.Name
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	filePath string
}

// NewConfigService creates a config service rooted in the user config dir
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, AppName, "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration, falling back to defaults when no file exists
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save writes the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Switches = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.Switches) == 0 {
		cfg.Switches = DefaultSwitches()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(config)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal encodes the configuration as TOML
func Marshal(config *Config) ([]byte, error) {
	data, err := toml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: currentVersion,
		Scanning: ScanningSettings{
			Mode:                   "auto",
			Method:                 "item",
			RateMS:                 1000,
			InitialDelayMS:         1000,
			EmptyTargetsFallbackMS: 3000,
			StopOnSelect:           false,
		},
		Items: ItemSettings{
			ThresholdDP: 40,
			Density:     1,
			RowColumn:   false,
			GroupScan:   false,
			GroupSize:   4,
		},
		Cursor: CursorSettings{
			Mode:       "block",
			FineRateMS: 50,
			LineStepPX: 10,
		},
		Radar: RadarSettings{
			FineRateMS:   50,
			AngleStepDeg: 2,
			RadiusStepPX: 10,
		},
		Switch: SwitchSettings{
			HoldTimeMS:          500,
			IgnoreRepeat:        false,
			IgnoreRepeatDelayMS: 300,
			PauseOnHold:         false,
		},
		Selection: SelectionSettings{
			AutoSelect:        true,
			AutoSelectDelayMS: 1000,
			AutoRestart:       true,
		},
		Switches: DefaultSwitches(),
	}
}

// DefaultSwitches maps the two keys of a typical two-switch setup
func DefaultSwitches() []SwitchConfig {
	return []SwitchConfig{
		{Name: "Select", Code: "space", Press: "select", Hold: []string{"toggle_direction", "change_method"}},
		{Name: "Next", Code: "enter", Press: "next", Hold: []string{"stop"}},
	}
}
