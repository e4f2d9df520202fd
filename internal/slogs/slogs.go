package slogs

// Structured logging keys
const (
	Component = "component"
	Strategy  = "strategy"
	State     = "state"
	Event     = "event"
	Error     = "error"
	Stack     = "stack"
	Code      = "code"
	Switch    = "switch"
	Action    = "action"
	Phase     = "phase"
	Item      = "item"
	Group     = "group"
	Column    = "column"
	Quadrant  = "quadrant"
	Point     = "point"
	Angle     = "angle"
	Radius    = "radius"
	Request   = "request_id"
	Delay     = "delay"
	Period    = "period"
	Count     = "count"
	Path      = "path"
	Duration  = "duration"
)
