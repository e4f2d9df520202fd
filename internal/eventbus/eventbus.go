package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"switchscan/internal/domain"
	"switchscan/internal/slogs"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// Bus is the asynchronous implementation of EventBus
type Bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus. Each handler call runs on its own goroutine.
func New() *Bus {
	b := &Bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Close stops the dispatcher and drops undelivered events
func (b *Bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// Publish queues an event for all subscribers
func (b *Bus) Publish(event DomainEvent) {
	// Highlight moves fire on every tick
	switch event.Type() {
	case domain.EventHighlightChanged:
	default:
		slog.Debug("EventBus: publishing event", slogs.Event, event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		slog.Warn("Event bus channel full, dropping event", slogs.Event, event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// dispatch handles event distribution to subscribers
func (b *Bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							slog.Error("Event handler panic",
								slogs.Event, eventType, slogs.Error, r, slogs.Stack, string(debug.Stack()))
						}
					}()
					h(event)
				}(s.handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// Sync delivers events inline on the publishing goroutine, in order.
// Handlers must not publish back into the same bus while holding their own locks.
type Sync struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	all      []EventHandler
	nextID   uint64
}

// NewSync creates a synchronous bus
func NewSync() *Sync {
	return &Sync{handlers: make(map[EventType][]subscription)}
}

func (s *Sync) Publish(event DomainEvent) {
	s.mu.RLock()
	subs := make([]subscription, len(s.handlers[event.Type()]))
	copy(subs, s.handlers[event.Type()])
	all := make([]EventHandler, len(s.all))
	copy(all, s.all)
	s.mu.RUnlock()

	for _, h := range all {
		h(event)
	}
	for _, sub := range subs {
		sub.handler(event)
	}
}

func (s *Sync) Subscribe(eventType EventType, handler EventHandler) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.handlers[eventType] = append(s.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		subs := s.handlers[eventType]
		for i, sub := range subs {
			if sub.id == id {
				s.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// SubscribeAll registers a handler for every event type
func (s *Sync) SubscribeAll(handler EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append(s.all, handler)
}

// Null drops every event
type Null struct{}

func (Null) Publish(DomainEvent)                      {}
func (Null) Subscribe(EventType, EventHandler) func() { return func() {} }
