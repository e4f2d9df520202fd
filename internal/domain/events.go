package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventScanStateChanged  EventType = "ScanStateChanged"
	EventStrategyChanged   EventType = "StrategyChanged"
	EventTargetsUpdated    EventType = "TargetsUpdated"
	EventHighlightChanged  EventType = "HighlightChanged"
	EventEscapePending     EventType = "EscapePending"
	EventTargetSelected    EventType = "TargetSelected"
	EventCandidateChosen   EventType = "CandidateChosen"
	EventCommitScheduled   EventType = "CommitScheduled"
	EventCommitCancelled   EventType = "CommitCancelled"
	EventCommitted         EventType = "Committed"
	EventSwitchPressed     EventType = "SwitchPressed"
	EventSwitchReleased    EventType = "SwitchReleased"
	EventActionFired       EventType = "ActionFired"
	EventMenuChanged       EventType = "MenuChanged"
	EventGestureDispatched EventType = "GestureDispatched"
	EventError             EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ScanState is the externally visible state of the active scan
type ScanState string

const (
	ScanIdle    ScanState = "idle"
	ScanRunning ScanState = "running"
	ScanPaused  ScanState = "paused"
)

// ScanStateChangedEvent is emitted when scanning starts, stops, pauses or resumes
type ScanStateChangedEvent struct {
	Strategy StrategyKind
	State    ScanState
}

func (e ScanStateChangedEvent) Type() EventType { return EventScanStateChanged }

// StrategyChangedEvent is emitted when the active scanning strategy changes
type StrategyChangedEvent struct {
	From StrategyKind
	To   StrategyKind
}

func (e StrategyChangedEvent) Type() EventType { return EventStrategyChanged }

// TargetsUpdatedEvent is emitted after the scan tree has been rebuilt
type TargetsUpdatedEvent struct {
	Items    int
	Targets  int
	Excluded int
}

func (e TargetsUpdatedEvent) Type() EventType { return EventTargetsUpdated }

// HighlightLevel describes what part of the scan tree is highlighted
type HighlightLevel string

const (
	HighlightItem   HighlightLevel = "item"
	HighlightGroup  HighlightLevel = "group"
	HighlightTarget HighlightLevel = "target"
)

// HighlightChangedEvent is emitted when the item scan moves its highlight
type HighlightChangedEvent struct {
	Level  HighlightLevel
	Bounds Rect
	Item   int
	Group  int
	Column int
}

func (e HighlightChangedEvent) Type() EventType { return EventHighlightChanged }

// EscapePendingEvent is emitted when the scan reaches the edge of an item
// and waits for the user to confirm leaving it
type EscapePendingEvent struct {
	Item   int
	Bounds Rect
}

func (e EscapePendingEvent) Type() EventType { return EventEscapePending }

// TargetSelectedEvent is emitted after ScanTarget.Select was invoked
type TargetSelectedEvent struct {
	Bounds Rect
}

func (e TargetSelectedEvent) Type() EventType { return EventTargetSelected }

// CandidateChosenEvent is emitted when a strategy settles on a point
type CandidateChosenEvent struct {
	Strategy StrategyKind
	Point    Point
}

func (e CandidateChosenEvent) Type() EventType { return EventCandidateChosen }

// CommitScheduledEvent is emitted when an auto-select delay starts
type CommitScheduledEvent struct {
	RequestID string
	Point     Point
	Delay     time.Duration
}

func (e CommitScheduledEvent) Type() EventType { return EventCommitScheduled }

// CommitCancelledEvent is emitted when a pending auto-select is dropped
type CommitCancelledEvent struct {
	RequestID string
}

func (e CommitCancelledEvent) Type() EventType { return EventCommitCancelled }

// CommittedEvent is emitted after the commit action ran
type CommittedEvent struct {
	RequestID string
	Point     Point
	Restarted bool
}

func (e CommittedEvent) Type() EventType { return EventCommitted }

// SwitchPressedEvent is emitted for every recognized, non-debounced press
type SwitchPressedEvent struct {
	Code string
	Name string
}

func (e SwitchPressedEvent) Type() EventType { return EventSwitchPressed }

// SwitchReleasedEvent is emitted when a pressed switch is released
type SwitchReleasedEvent struct {
	Code string
	Held time.Duration
}

func (e SwitchReleasedEvent) Type() EventType { return EventSwitchReleased }

// ActionFiredEvent is emitted when a switch action reaches the engine
type ActionFiredEvent struct {
	Code   string
	Action string
	Hold   bool
}

func (e ActionFiredEvent) Type() EventType { return EventActionFired }

// MenuChangedEvent is emitted when a menu is opened or closed
type MenuChangedEvent struct {
	Title string
	Depth int
}

func (e MenuChangedEvent) Type() EventType { return EventMenuChanged }

// GestureDispatchedEvent is emitted by gesture dispatchers that report back
type GestureDispatchedEvent struct {
	Gesture string
	Point   Point
}

func (e GestureDispatchedEvent) Type() EventType { return EventGestureDispatched }

// ErrorEvent is emitted when a scan cycle was aborted
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
