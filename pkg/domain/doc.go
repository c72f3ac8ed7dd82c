/*
Package domain contains the contracts of the madhouse harness.

It defines what a model-based test is made of: a mutable State, a read-only
TestContext and a set of Commands, each one a precondition (Check) plus a
transition (Apply). The package is kept free of generation, I/O and
persistence concerns.

# Key Entities

  - Command: a guarded transition with a stable Label.
  - Wrapper: the type-erased, cheaply copyable handle stored in sequences.
  - Executed: a command that passed its precondition, with its position and apply time.
  - Mode: deterministic (all-of) or random (one-of) sequence composition.
  - ViolationError: the panic value of Assertf (invariant) and Abortf (contract misuse).
*/
package domain
