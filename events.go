package flatland

import (
	"unsafe"

	"github.com/akmonengine/flatland/actor"
	"github.com/google/uuid"
)

const (
	PLANE_ADDED EventType = iota
	PLANE_UPDATED
	PLANE_REMOVED
	GAMEPLAY_STARTED
	GAMEPLAY_ENDED
	TOUCH_ENTER
	TOUCH_STAY
	TOUCH_EXIT
	COIN_COLLECTED
	ENEMY_HIT
	LEVEL_COMPLETE
)

type pairKey struct {
	bodyA *actor.RigidBody
	bodyB *actor.RigidBody
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB *actor.RigidBody) pairKey {
	ptrA := uintptr(unsafe.Pointer(bodyA))
	ptrB := uintptr(unsafe.Pointer(bodyB))

	if ptrB < ptrA {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Plane events
type PlaneAddedEvent struct {
	PlaneID uuid.UUID
}

func (e PlaneAddedEvent) Type() EventType { return PLANE_ADDED }

type PlaneUpdatedEvent struct {
	PlaneID  uuid.UUID
	Revision uint64
}

func (e PlaneUpdatedEvent) Type() EventType { return PLANE_UPDATED }

type PlaneRemovedEvent struct {
	PlaneID uuid.UUID
	// Active is true when the plane hosted the running gameplay, which is now paused
	Active bool
}

func (e PlaneRemovedEvent) Type() EventType { return PLANE_REMOVED }

// Gameplay events
type GameplayStartedEvent struct {
	PlaneID uuid.UUID
}

func (e GameplayStartedEvent) Type() EventType { return GAMEPLAY_STARTED }

type GameplayEndedEvent struct {
	PlaneID uuid.UUID
	Score   int
}

func (e GameplayEndedEvent) Type() EventType { return GAMEPLAY_ENDED }

// Touch events, between the agent and a collectible
type TouchEnterEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e TouchEnterEvent) Type() EventType { return TOUCH_ENTER }

type TouchStayEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e TouchStayEvent) Type() EventType { return TOUCH_STAY }

type TouchExitEvent struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

func (e TouchExitEvent) Type() EventType { return TOUCH_EXIT }

// Level events
type CoinCollectedEvent struct {
	Collectible *Collectible
	Score       int
}

func (e CoinCollectedEvent) Type() EventType { return COIN_COLLECTED }

type EnemyHitEvent struct {
	Collectible *Collectible
}

func (e EnemyHitEvent) Type() EventType { return ENEMY_HIT }

type LevelCompleteEvent struct {
	PlaneID uuid.UUID
	Score   int
}

func (e LevelCompleteEvent) Type() EventType { return LEVEL_COMPLETE }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Touch tracking for Enter/Stay/Exit detection
	previousTouches map[pairKey]bool
	currentTouches  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:       make(map[EventType][]EventListener),
		buffer:          make([]Event, 0, 64),
		previousTouches: make(map[pairKey]bool),
		currentTouches:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// emit buffers an event until the next flush
func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// recordTouch is called during a step for every overlapping pair
func (e *Events) recordTouch(bodyA, bodyB *actor.RigidBody) {
	e.currentTouches[makePairKey(bodyA, bodyB)] = true
}

// processTouches compares current and previous pairs to emit Enter/Stay/Exit.
// It returns the pairs that started touching during this step.
func (e *Events) processTouches() []pairKey {
	var entered []pairKey

	for pair := range e.currentTouches {
		if e.previousTouches[pair] {
			e.buffer = append(e.buffer, TouchStayEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		} else {
			e.buffer = append(e.buffer, TouchEnterEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
			entered = append(entered, pair)
		}
	}

	for pair := range e.previousTouches {
		if !e.currentTouches[pair] {
			e.buffer = append(e.buffer, TouchExitEvent{BodyA: pair.bodyA, BodyB: pair.bodyB})
		}
	}

	// Swap for next step and clear current
	e.previousTouches, e.currentTouches = e.currentTouches, e.previousTouches
	clear(e.currentTouches)

	return entered
}

// forget drops every tracked pair involving the body, without emitting exits
func (e *Events) forget(body *actor.RigidBody) {
	for pair := range e.previousTouches {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousTouches, pair)
		}
	}
	for pair := range e.currentTouches {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.currentTouches, pair)
		}
	}
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	// listeners may emit while being called: only dispatch what is buffered now
	pending := e.buffer
	e.buffer = make([]Event, 0, cap(pending))

	for _, event := range pending {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
}
