package domain

import "time"

// Wrapper erases the concrete type of a command so that heterogeneous
// commands can live in one sequence.
//
// A Wrapper is a small value: copying it shares the wrapped command instead of
// cloning it, which keeps generation and shrinking cheap. The wrapped command
// is never modified after construction.
type Wrapper[S State] struct {
	command Command[S]
}

// Wrap creates a wrapper around cmd. It panics if cmd is nil.
func Wrap[S State](cmd Command[S]) Wrapper[S] {
	if cmd == nil {
		panic("domain: Wrap called with a nil command")
	}
	return Wrapper[S]{command: cmd}
}

// Command returns the wrapped command.
func (w Wrapper[S]) Command() Command[S] {
	return w.command
}

// Check delegates to the wrapped command.
func (w Wrapper[S]) Check(state S) bool {
	return w.command.Check(state)
}

// Apply delegates to the wrapped command.
func (w Wrapper[S]) Apply(state S) {
	w.command.Apply(state)
}

// Label delegates to the wrapped command.
func (w Wrapper[S]) Label() string {
	return w.command.Label()
}

// String returns the command label.
func (w Wrapper[S]) String() string {
	return w.Label()
}

// GoString returns the command label, so %#v output (used by rapid when it
// logs drawn values) stays readable.
func (w Wrapper[S]) GoString() string {
	return w.Label()
}

// Executed is a command that passed its precondition and was applied.
type Executed[S State] struct {
	Wrapper[S]

	// Index is the position of the command in the sequence it came from.
	Index int

	// Elapsed is the wall-clock duration of Apply.
	Elapsed time.Duration
}

// Labels returns the labels of a sequence, in order.
func Labels[S State](seq []Wrapper[S]) []string {
	labels := make([]string, len(seq))
	for i, w := range seq {
		labels[i] = w.Label()
	}
	return labels
}
