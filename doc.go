/*
Package madhouse is a model-based (state-machine) testing harness built on rapid.

A model is a mutable State, a cloneable test context and a set of commands.
Each command has a precondition (Check), an effect that may assert
invariants (Apply) and a Label. The harness generates sequences of commands,
runs them against a fresh state, skips commands whose precondition does not
hold and reports what was selected and what was executed. When an invariant
fails, rapid shrinks the sequence towards a minimal reproduction.

# Modes

Deterministic mode, the default, draws exactly one instance of each declared
source, in declaration order. Random mode (MADHOUSE=1) draws sequences of
1 to 15 commands, each picked from any source. The number of cases, the
shrink time and the random bounds come from MADHOUSE_* variables; see
pkg/config.

# Usage

	func TestCounter(t *testing.T) {
		madhouse.Run(t, &counter.Context{}, counter.NewState,
			madhouse.Build(counter.BuildIncrement),
			madhouse.Build(counter.BuildDecrement),
			madhouse.Fixed[*counter.State, *counter.Context](counter.Reset{}),
		)
	}

Commands report broken invariants with domain.Assertf, which panics with a
*domain.ViolationError and fails the case.

The cmd/madhouse binary runs registered models outside of `go test`.
*/
package madhouse
