package strategy

import (
	"fmt"

	"github.com/aretw0/madhouse/pkg/domain"
	"pgregory.net/rapid"
)

// Builder turns a test context into a generator of one command variant.
// Every wrapper it produces must wrap an instance of that variant.
type Builder[S domain.State, C any] func(ctx C) *rapid.Generator[domain.Wrapper[S]]

// Just always produces the given command.
func Just[S domain.State](cmd domain.Command[S]) *rapid.Generator[domain.Wrapper[S]] {
	return rapid.Just(domain.Wrap(cmd))
}

// Select picks a value from pool and turns it into a command.
// Shrinking moves towards the first element of the pool.
func Select[S domain.State, P any](pool []P, fn func(P) domain.Command[S]) *rapid.Generator[domain.Wrapper[S]] {
	return rapid.Map(rapid.SampledFrom(pool), func(p P) domain.Wrapper[S] {
		return domain.Wrap(fn(p))
	})
}

// Range draws an integer in [lo, hi] and turns it into a command.
// Shrinking moves towards lo.
func Range[S domain.State](lo, hi int, fn func(int) domain.Command[S]) *rapid.Generator[domain.Wrapper[S]] {
	return rapid.Map(rapid.IntRange(lo, hi), func(n int) domain.Wrapper[S] {
		return domain.Wrap(fn(n))
	})
}

// AllOf combines generators into one that yields exactly one value from each,
// in argument order.
//
// The combination is built recursively: a single generator yields a one
// element list, and longer lists are the first generator's list followed by
// the combination of the rest. Position i of every output always comes from
// gens[i]. AllOf panics when called without generators.
func AllOf[T any](gens ...*rapid.Generator[T]) *rapid.Generator[[]T] {
	if len(gens) == 0 {
		panic("strategy: AllOf called without generators")
	}

	head := rapid.Map(gens[0], func(v T) []T {
		return []T{v}
	})
	if len(gens) == 1 {
		return head
	}

	tail := AllOf(gens[1:]...)
	return rapid.Custom(func(t *rapid.T) []T {
		first := head.Draw(t, "head")
		rest := tail.Draw(t, "rest")
		return append(first, rest...)
	})
}

// OneOf yields a value from one randomly chosen generator.
// It panics when called without generators.
func OneOf[T any](gens ...*rapid.Generator[T]) *rapid.Generator[T] {
	if len(gens) == 0 {
		panic("strategy: OneOf called without generators")
	}
	return rapid.OneOf(gens...)
}

// Sequence yields lists of independent draws from elem whose length lies in
// [minLen, maxLen). Shrinking shortens the list and simplifies its elements.
func Sequence[T any](elem *rapid.Generator[T], minLen, maxLen int) *rapid.Generator[[]T] {
	if err := ValidateBounds(minLen, maxLen); err != nil {
		panic(err.Error())
	}
	return rapid.SliceOfN(elem, minLen, maxLen-1)
}

// ValidateBounds checks a half-open length range [minLen, maxLen).
func ValidateBounds(minLen, maxLen int) error {
	if minLen < 0 || maxLen <= minLen {
		return fmt.Errorf("%w: [%d, %d)", domain.ErrInvalidStepBounds, minLen, maxLen)
	}
	return nil
}

// Compose combines per-source generators according to mode.
// Deterministic mode uses AllOf; random mode draws a Sequence of OneOf.
func Compose[T any](mode domain.Mode, minLen, maxLen int, gens ...*rapid.Generator[T]) (*rapid.Generator[[]T], error) {
	if len(gens) == 0 {
		return nil, domain.ErrNoSources
	}
	switch mode {
	case domain.ModeDeterministic, "":
		return AllOf(gens...), nil
	case domain.ModeRandom:
		if err := ValidateBounds(minLen, maxLen); err != nil {
			return nil, err
		}
		return Sequence(OneOf(gens...), minLen, maxLen), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMode, mode)
	}
}
