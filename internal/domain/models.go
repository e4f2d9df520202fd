package domain

// ScanTarget is a selectable region the engine can step through.
// Implementations map to on-screen elements, virtual keyboard keys or menu entries.
type ScanTarget interface {
	Bounds() Rect
	Highlight()
	Unhighlight()
	Select()
}

// Direction is the order in which a scan advances
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Reverse returns the opposite direction
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// ScanMode controls whether the scan advances on a timer or only on switch input
type ScanMode string

const (
	ScanModeAuto   ScanMode = "auto"
	ScanModeManual ScanMode = "manual"
)

// Candidate is a point chosen by a scan strategy, waiting to be committed
type Candidate struct {
	Point  Point
	Target ScanTarget // nil for continuous-space strategies
}
