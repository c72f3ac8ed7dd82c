package domain

// State is the model of the system under test.
//
// Any value satisfies it. In practice it is a pointer to a struct so that
// Command.Apply can mutate it in place. A fresh State is created for every
// realized sequence and discarded when the iteration ends.
//
// Reports format the state with %+v, or with String() when it implements
// fmt.Stringer.
type State interface{}

// TestContext is the read-only configuration shared by every command builder
// of a run.
//
// Clone must return an independent copy that is observably equal to the
// receiver. The orchestrator hands a clone to each builder so that no builder
// can affect another through the shared value.
type TestContext[C any] interface {
	Clone() C
}

// Command is a guarded state transition.
type Command[S State] interface {
	// Check reports whether the command may be applied to the current state.
	// It must not mutate the state.
	Check(state S) bool

	// Apply mutates the state. Invariant violations panic (see Assertf) and
	// abort the iteration.
	Apply(state S)

	// Label is a stable, human readable identifier. It must not depend on
	// mutable state.
	Label() string
}
