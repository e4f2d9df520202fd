package navigation

import (
	"switchscan/internal/domain"
	"switchscan/internal/eventbus"
	"switchscan/internal/scan/grouping"
)

// Service walks the tree produced by grouping.BuildTree
type Service struct {
	state     State
	items     []grouping.Item
	groupScan bool
	escapeDir domain.Direction
	bus       eventbus.EventBus
}

// NewService creates a navigator over an empty tree
func NewService(bus eventbus.EventBus) *Service {
	if bus == nil {
		bus = eventbus.Null{}
	}
	return &Service{bus: bus}
}

// SetTree replaces the tree and resets the cursor
func (s *Service) SetTree(items []grouping.Item) {
	s.items = items
	s.Reset()
}

// SetGroupScan enables scanning groups before columns inside an item
func (s *Service) SetGroupScan(enabled bool) {
	s.groupScan = enabled
}

// State returns a copy of the cursor state
func (s *Service) State() State {
	return s.state
}

// Reset returns to the first item, outside of it, keeping the direction
func (s *Service) Reset() {
	dir := s.state.Direction
	s.state = State{Direction: dir}
}

// SwapDirection flips the scan direction without moving
func (s *Service) SwapDirection() {
	s.state.Direction = s.state.Direction.Reverse()
}

// Step moves one position in the current direction
func (s *Service) Step() Move {
	if s.state.Direction == domain.Backward {
		return s.MovePrevious()
	}
	return s.MoveNext()
}

// MoveNext advances the cursor
func (s *Service) MoveNext() Move {
	return s.move(domain.Forward)
}

// MovePrevious moves the cursor back
func (s *Service) MovePrevious() Move {
	return s.move(domain.Backward)
}

func (s *Service) move(dir domain.Direction) Move {
	if !s.ensureValid() {
		return Empty
	}
	if s.state.ShouldEscape {
		return Escape
	}

	if !s.state.InsideItem {
		s.state.CurrentItem = s.wrapItem(s.state.CurrentItem, dir)
		s.publishFocus()
		return Moved
	}

	item := s.items[s.state.CurrentItem]
	var moved bool
	if s.state.ScanningGroups {
		moved = s.moveGroup(item, dir)
	} else {
		moved = s.moveColumn(item, dir)
	}
	if !moved {
		s.state.ShouldEscape = true
		s.escapeDir = dir
		s.bus.Publish(domain.EscapePendingEvent{Item: s.state.CurrentItem, Bounds: item.Bounds()})
		return Escape
	}

	s.publishFocus()
	return Moved
}

func (s *Service) moveGroup(item grouping.Item, dir domain.Direction) bool {
	if dir == domain.Forward {
		if s.state.CurrentGroup+1 < len(item.Groups) {
			s.state.CurrentGroup++
			return true
		}
		return false
	}
	if s.state.CurrentGroup > 0 {
		s.state.CurrentGroup--
		return true
	}
	return false
}

func (s *Service) moveColumn(item grouping.Item, dir domain.Direction) bool {
	group := item.Groups[s.state.CurrentGroup]
	if dir == domain.Forward {
		switch {
		case s.state.CurrentColumn+1 < len(group):
			s.state.CurrentColumn++
		case s.state.CurrentGroup+1 < len(item.Groups):
			s.state.CurrentGroup++
			s.state.CurrentColumn = 0
		default:
			return false
		}
		return true
	}

	switch {
	case s.state.CurrentColumn > 0:
		s.state.CurrentColumn--
	case s.state.CurrentGroup > 0:
		s.state.CurrentGroup--
		s.state.CurrentColumn = len(item.Groups[s.state.CurrentGroup]) - 1
	default:
		return false
	}
	return true
}

// EnterItem moves inside the current item. Returns false when there is
// nothing to enter or the cursor is already inside.
func (s *Service) EnterItem() bool {
	if !s.ensureValid() || s.state.InsideItem {
		return false
	}
	item := s.items[s.state.CurrentItem]
	s.state.InsideItem = true
	s.state.ShouldEscape = false
	s.state.ScanningGroups = s.groupScan && len(item.Groups) > 1
	s.toEdge(item, s.state.Direction)
	s.publishFocus()
	return true
}

// EnterGroup switches from scanning groups to scanning the columns of the
// current group
func (s *Service) EnterGroup() bool {
	if !s.ensureValid() || !s.state.InsideItem || !s.state.ScanningGroups {
		return false
	}
	group := s.items[s.state.CurrentItem].Groups[s.state.CurrentGroup]
	s.state.ScanningGroups = false
	s.state.CurrentColumn = 0
	if s.state.Direction == domain.Backward {
		s.state.CurrentColumn = len(group) - 1
	}
	s.publishFocus()
	return true
}

// LeaveItem returns to item level on the current item
func (s *Service) LeaveItem() {
	if !s.ensureValid() {
		return
	}
	item := s.state.CurrentItem
	s.Reset()
	s.state.CurrentItem = item
	s.publishFocus()
}

// ResolveEscape applies the user's answer to a pending escape
func (s *Service) ResolveEscape(decision EscapeDecision) Move {
	if !s.state.ShouldEscape {
		return Empty
	}
	if !s.ensureValid() {
		return Empty
	}

	s.state.ShouldEscape = false
	if decision == ConfirmEscape {
		s.state.InsideItem = false
		s.state.ScanningGroups = false
		s.state.CurrentGroup = 0
		s.state.CurrentColumn = 0
		s.state.CurrentItem = s.wrapItem(s.state.CurrentItem, s.escapeDir)
		s.publishFocus()
		return Moved
	}

	// deny: wrap inside the item, starting over from the edge the scan runs from
	s.toEdge(s.items[s.state.CurrentItem], s.escapeDir)
	s.publishFocus()
	return Moved
}

// ConfirmEscape leaves the current item
func (s *Service) ConfirmEscape() Move { return s.ResolveEscape(ConfirmEscape) }

// DenyEscape stays inside the current item
func (s *Service) DenyEscape() Move { return s.ResolveEscape(DenyEscape) }

// CurrentItem returns the item under the cursor
func (s *Service) CurrentItem() (grouping.Item, bool) {
	if !s.ensureValid() {
		return grouping.Item{}, false
	}
	return s.items[s.state.CurrentItem], true
}

// CurrentGroup returns the group under the cursor when inside an item
func (s *Service) CurrentGroup() (grouping.Group, bool) {
	item, ok := s.CurrentItem()
	if !ok || !s.state.InsideItem {
		return nil, false
	}
	return item.Groups[s.state.CurrentGroup], true
}

// CurrentTarget returns the target under the cursor when scanning columns
func (s *Service) CurrentTarget() (domain.ScanTarget, bool) {
	group, ok := s.CurrentGroup()
	if !ok || s.state.ScanningGroups {
		return nil, false
	}
	return group[s.state.CurrentColumn], true
}

// Focus describes what should be highlighted
func (s *Service) Focus() Focus {
	item, ok := s.CurrentItem()
	if !ok {
		return Focus{}
	}
	if !s.state.InsideItem || s.state.ShouldEscape {
		targets := item.Targets()
		return Focus{
			Level:    domain.HighlightItem,
			Targets:  targets,
			Bounds:   domain.BoundsOf(targets),
			Escaping: s.state.ShouldEscape,
		}
	}
	group := item.Groups[s.state.CurrentGroup]
	if s.state.ScanningGroups {
		return Focus{Level: domain.HighlightGroup, Targets: group, Bounds: domain.BoundsOf(group)}
	}
	target := group[s.state.CurrentColumn]
	return Focus{Level: domain.HighlightTarget, Targets: []domain.ScanTarget{target}, Bounds: target.Bounds()}
}

func (s *Service) toEdge(item grouping.Item, dir domain.Direction) {
	if dir == domain.Backward {
		if s.state.ScanningGroups {
			s.state.CurrentGroup = len(item.Groups) - 1
			s.state.CurrentColumn = 0
			return
		}
		s.state.CurrentGroup = len(item.Groups) - 1
		s.state.CurrentColumn = len(item.Groups[s.state.CurrentGroup]) - 1
		return
	}
	s.state.CurrentGroup = 0
	s.state.CurrentColumn = 0
}

func (s *Service) wrapItem(index int, dir domain.Direction) int {
	n := len(s.items)
	if dir == domain.Backward {
		return (index - 1 + n) % n
	}
	return (index + 1) % n
}

// ensureValid lazily repairs a cursor that points outside the tree.
// Returns false when the tree is empty.
func (s *Service) ensureValid() bool {
	if len(s.items) == 0 {
		if s.state != (State{Direction: s.state.Direction}) {
			s.Reset()
		}
		return false
	}
	if s.state.CurrentItem < 0 || s.state.CurrentItem >= len(s.items) {
		s.Reset()
		return true
	}
	if !s.state.InsideItem {
		s.state.CurrentGroup = 0
		s.state.CurrentColumn = 0
		s.state.ScanningGroups = false
		return true
	}
	item := s.items[s.state.CurrentItem]
	if len(item.Groups) == 0 || s.state.CurrentGroup < 0 || s.state.CurrentGroup >= len(item.Groups) ||
		s.state.CurrentColumn < 0 || s.state.CurrentColumn >= len(item.Groups[s.state.CurrentGroup]) {
		s.Reset()
	}
	return true
}

func (s *Service) publishFocus() {
	f := s.Focus()
	s.bus.Publish(domain.HighlightChangedEvent{
		Level:  f.Level,
		Bounds: f.Bounds,
		Item:   s.state.CurrentItem,
		Group:  s.state.CurrentGroup,
		Column: s.state.CurrentColumn,
	})
}
