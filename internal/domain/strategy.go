package domain

import "fmt"

// StrategyKind identifies a scanning strategy
type StrategyKind string

const (
	StrategyItem   StrategyKind = "item"
	StrategyCursor StrategyKind = "cursor"
	StrategyRadar  StrategyKind = "radar"
)

var strategyOrder = []StrategyKind{StrategyItem, StrategyCursor, StrategyRadar}

// Next returns the strategy that follows k when cycling scan methods
func (k StrategyKind) Next() StrategyKind {
	for i, s := range strategyOrder {
		if s == k {
			return strategyOrder[(i+1)%len(strategyOrder)]
		}
	}
	return StrategyItem
}

// ParseStrategyKind converts a config value into a StrategyKind
func ParseStrategyKind(s string) (StrategyKind, error) {
	switch StrategyKind(s) {
	case StrategyItem, StrategyCursor, StrategyRadar:
		return StrategyKind(s), nil
	case "":
		return StrategyItem, nil
	}
	return "", fmt.Errorf("unknown scan method %q", s)
}
