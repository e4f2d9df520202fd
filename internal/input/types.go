// Package input turns raw switch presses and releases into scan actions.
package input

import (
	"fmt"
	"time"

	"switchscan/internal/config"
)

// Action is a named command a switch can trigger
type Action string

const (
	ActionNone            Action = "none"
	ActionSelect          Action = "select"
	ActionNext            Action = "next"
	ActionPrevious        Action = "previous"
	ActionToggleDirection Action = "toggle_direction"
	ActionStart           Action = "start"
	ActionStop            Action = "stop"
	ActionChangeMethod    Action = "change_method"
	ActionReselect        Action = "reselect"
	ActionMenu            Action = "menu"
	ActionBack            Action = "back"
)

var actions = map[Action]struct{}{
	ActionNone: {}, ActionSelect: {}, ActionNext: {}, ActionPrevious: {},
	ActionToggleDirection: {}, ActionStart: {}, ActionStop: {}, ActionChangeMethod: {},
	ActionReselect: {}, ActionMenu: {}, ActionBack: {},
}

// ParseAction validates a configured action name. Empty means none.
func ParseAction(s string) (Action, error) {
	if s == "" {
		return ActionNone, nil
	}
	a := Action(s)
	if _, ok := actions[a]; !ok {
		return ActionNone, fmt.Errorf("unknown switch action %q", s)
	}
	return a, nil
}

// SwitchEvent binds a switch code to its actions. Code is the identity.
type SwitchEvent struct {
	Name        string
	Code        string
	PressAction Action
	HoldActions []Action
}

// Options control press timing
type Options struct {
	HoldTime          time.Duration
	IgnoreRepeat      bool
	IgnoreRepeatDelay time.Duration
	PauseOnHold       bool
}

// ActionSink performs the actions fired by switches
type ActionSink interface {
	HandleAction(action Action, sw SwitchEvent)
}

// Scanner is the part of the engine paused while a switch is held
type Scanner interface {
	PauseOnHoldRequired() bool
	Pause()
	Resume()
}

// SwitchesFromConfig converts configured switches, rejecting unknown actions
func SwitchesFromConfig(cfgs []config.SwitchConfig) ([]SwitchEvent, error) {
	out := make([]SwitchEvent, 0, len(cfgs))
	for _, c := range cfgs {
		press, err := ParseAction(c.Press)
		if err != nil {
			return nil, fmt.Errorf("switch %q: %w", c.Name, err)
		}
		sw := SwitchEvent{Name: c.Name, Code: c.Code, PressAction: press}
		for _, h := range c.Hold {
			a, err := ParseAction(h)
			if err != nil {
				return nil, fmt.Errorf("switch %q: %w", c.Name, err)
			}
			if a != ActionNone {
				sw.HoldActions = append(sw.HoldActions, a)
			}
		}
		out = append(out, sw)
	}
	return out, nil
}

// OptionsFromConfig reads press timing from the switch settings
func OptionsFromConfig(s config.SwitchSettings) Options {
	return Options{
		HoldTime:          s.HoldTime(),
		IgnoreRepeat:      s.IgnoreRepeat,
		IgnoreRepeatDelay: s.IgnoreRepeatDelay(),
		PauseOnHold:       s.PauseOnHold,
	}
}
