// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	SimulationStarted Type = "simulation_started"
	SimulationReset   Type = "simulation_reset"
	ParameterToggled  Type = "parameter_toggled"
	ApoapsisReached   Type = "apoapsis_reached"
	GroundImpact      Type = "ground_impact"
	ThrustCutoff      Type = "thrust_cutoff"
	TickCompleted     Type = "tick_completed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus dispatches events synchronously to subscribed handlers
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a handler by its subscription ID. It reports whether
// the handler was found.
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish sends an event to all subscribed handlers in subscription order.
// Handlers run on the caller's goroutine.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.handlers[event.GetType()]...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// VehicleEvent reports a state change of one vehicle
type VehicleEvent struct {
	BaseEvent
	VehicleID   uint64
	VehicleName string
	Time        float64
	Altitude    float64
}

// NewVehicleEvent creates a new vehicle event
func NewVehicleEvent(eventType Type, source interface{}, vehicleID uint64, name string, time, altitude float64) *VehicleEvent {
	return &VehicleEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		VehicleID:   vehicleID,
		VehicleName: name,
		Time:        time,
		Altitude:    altitude,
	}
}

// ToggleEvent reports a change of a global simulation toggle
type ToggleEvent struct {
	BaseEvent
	Parameter string
	Enabled   bool
}

// NewToggleEvent creates a new toggle event
func NewToggleEvent(source interface{}, parameter string, enabled bool) *ToggleEvent {
	return &ToggleEvent{
		BaseEvent: BaseEvent{
			EventType: ParameterToggled,
			Source:    source,
		},
		Parameter: parameter,
		Enabled:   enabled,
	}
}
