// Package items scans a tree of on-screen targets row by row.
package items

import (
	"time"

	"switchscan/internal/scan/grouping"
)

// Options configures the item strategy
type Options struct {
	Manual       bool
	Rate         time.Duration
	InitialDelay time.Duration
	StopOnSelect bool
	GroupScan    bool
	Grouping     grouping.Options
}
