package clock

import "time"

// Timer is a pending callback that can be cancelled
type Timer interface {
	Stop() bool
}

// Source abstracts wall-clock time so scans can be driven by a fake in tests
type Source interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// RealSource uses the system clock
type RealSource struct{}

func (RealSource) Now() time.Time { return time.Now() }

func (RealSource) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
