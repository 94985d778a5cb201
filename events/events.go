// Package events announces menu changes to other processes.
package events

import (
	"context"
	"sync"
	"time"
)

type Kind string

const (
	KindRestaurant Kind = "restaurant"
	KindCategory   Kind = "category"
	KindItem       Kind = "item"
)

type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionDeleted   Action = "deleted"
	ActionReordered Action = "reordered"
)

type Event struct {
	Kind         Kind      `json:"kind"`
	Action       Action    `json:"action"`
	RestaurantID string    `json:"restaurantId,omitempty"`
	ID           string    `json:"id,omitempty"`
	IDs          []string  `json:"ids,omitempty"` // reorder batches
	At           time.Time `json:"at"`
}

// RoutingKey is menu.<kind>.<action>.
func (e Event) RoutingKey() string {
	return "menu." + string(e.Kind) + "." + string(e.Action)
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
