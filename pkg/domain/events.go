package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventIterationStart EventType = "iteration_start"
	EventIterationEnd   EventType = "iteration_end"
	EventCommandApplied EventType = "command_applied"
	EventCommandSkipped EventType = "command_skipped"
	EventCommandFailed  EventType = "command_failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// IterationEvent describes one realized sequence.
type IterationEvent struct {
	EventBase
	Mode     Mode     `json:"mode"`
	Selected []string `json:"selected"`
	// Executed is only set on EventIterationEnd.
	Executed []string `json:"executed,omitempty"`
}

// CommandEvent describes the outcome of one command in a sequence.
type CommandEvent struct {
	EventBase
	Index   int           `json:"index"`
	Label   string        `json:"label"`
	Elapsed time.Duration `json:"elapsed,omitempty"`
	// Panic holds the recovered value on EventCommandFailed.
	Panic any `json:"-"`
}

// LifecycleHooks defines callbacks for harness observability.
// Every field is optional.
type LifecycleHooks struct {
	OnIterationStart func(context.Context, *IterationEvent)
	OnIterationEnd   func(context.Context, *IterationEvent)
	OnCommandApplied func(context.Context, *CommandEvent)
	OnCommandSkipped func(context.Context, *CommandEvent)
	OnCommandFailed  func(context.Context, *CommandEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnIterationStart: chain(h.OnIterationStart, other.OnIterationStart),
		OnIterationEnd:   chain(h.OnIterationEnd, other.OnIterationEnd),
		OnCommandApplied: chain(h.OnCommandApplied, other.OnCommandApplied),
		OnCommandSkipped: chain(h.OnCommandSkipped, other.OnCommandSkipped),
		OnCommandFailed:  chain(h.OnCommandFailed, other.OnCommandFailed),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
