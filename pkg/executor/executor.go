package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/madhouse/pkg/domain"
)

// Executor applies realized command sequences to a state.
type Executor[S domain.State] struct {
	settings
}

// New creates an executor. By default it reports to Stdout and logs nothing.
func New[S domain.State](opts ...Option) *Executor[S] {
	e := &Executor[S]{settings: defaultSettings()}
	for _, opt := range opts {
		opt(&e.settings)
	}
	return e
}

// Execute runs seq against state and returns the commands that were applied.
//
// Commands are visited in order. Each one is checked against the current
// state; if the check passes it is applied and timed, otherwise it is skipped.
// Earlier commands are never re-checked. The result is an ordered subsequence
// of seq.
//
// A panic inside Check or Apply is fatal: the report of what ran so far is
// written and the panic is re-raised unchanged.
func Execute[S domain.State](seq []domain.Wrapper[S], state S) []domain.Executed[S] {
	return New[S]().Execute(context.Background(), seq, state)
}

// Execute runs seq against state. See the package level Execute.
func (e *Executor[S]) Execute(ctx context.Context, seq []domain.Wrapper[S], state S) []domain.Executed[S] {
	executed := make([]domain.Executed[S], 0, len(seq))
	current := -1

	defer func() {
		if current < 0 {
			return
		}
		// Only reached when Check or Apply did not return.
		r := recover()
		cmd := seq[current]
		e.logger.Error("command failed",
			"index", current,
			"command", cmd.Label(),
			"state", fmt.Sprintf("%+v", state),
			"panic", r,
		)
		if e.hooks.OnCommandFailed != nil {
			e.hooks.OnCommandFailed(ctx, &domain.CommandEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCommandFailed},
				Index:     current,
				Label:     cmd.Label(),
				Panic:     r,
			})
		}
		e.report(seq, executed, current)
		if r != nil {
			panic(r)
		}
	}()

	for i, cmd := range seq {
		current = i
		if !cmd.Check(state) {
			current = -1
			e.logger.Debug("command skipped", "index", i, "command", cmd.Label())
			if e.hooks.OnCommandSkipped != nil {
				e.hooks.OnCommandSkipped(ctx, &domain.CommandEvent{
					EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCommandSkipped},
					Index:     i,
					Label:     cmd.Label(),
				})
			}
			continue
		}

		start := time.Now()
		cmd.Apply(state)
		elapsed := time.Since(start)
		current = -1

		executed = append(executed, domain.Executed[S]{Wrapper: cmd, Index: i, Elapsed: elapsed})
		e.logger.Debug("command applied", "index", i, "command", cmd.Label(), "elapsed", elapsed)
		if e.hooks.OnCommandApplied != nil {
			e.hooks.OnCommandApplied(ctx, &domain.CommandEvent{
				EventBase: domain.EventBase{Timestamp: start, Type: domain.EventCommandApplied},
				Index:     i,
				Label:     cmd.Label(),
				Elapsed:   elapsed,
			})
		}
	}

	e.report(seq, executed, -1)
	return executed
}
