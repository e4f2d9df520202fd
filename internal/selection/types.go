// Package selection decides what happens to a point a strategy settled on.
package selection

import (
	"time"

	"switchscan/internal/config"
	"switchscan/internal/domain"
)

// Committer performs the default action at a point, e.g. a tap
type Committer interface {
	Commit(c domain.Candidate)
}

// ActionChooser lets the user pick what to do with a point
type ActionChooser interface {
	Choose(c domain.Candidate)
}

// Restarter is the engine side the policy restarts scanning through
type Restarter interface {
	ActiveKind() domain.StrategyKind
	StartScanning()
}

// Options control auto-select
type Options struct {
	AutoSelect  bool
	Delay       time.Duration
	AutoRestart bool
}

// OptionsFromConfig reads the selection settings
func OptionsFromConfig(s config.SelectionSettings) Options {
	return Options{
		AutoSelect:  s.AutoSelect,
		Delay:       s.AutoSelectDelay(),
		AutoRestart: s.AutoRestart,
	}
}
