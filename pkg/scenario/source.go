package scenario

import (
	"github.com/aretw0/madhouse/pkg/domain"
	"github.com/aretw0/madhouse/pkg/strategy"
	"pgregory.net/rapid"
)

// Source is one declared command source of a scenario: either a builder that
// generates instances of a command variant from the test context, or a fixed
// command instance.
type Source[S domain.State, C domain.TestContext[C]] struct {
	build strategy.Builder[S, C]
	fixed domain.Command[S]
}

// Build declares a command variant through its builder.
func Build[S domain.State, C domain.TestContext[C]](fn func(ctx C) *rapid.Generator[domain.Wrapper[S]]) Source[S, C] {
	return Source[S, C]{build: fn}
}

// Fixed declares a command instance that is used as is.
func Fixed[S domain.State, C domain.TestContext[C]](cmd domain.Command[S]) Source[S, C] {
	return Source[S, C]{fixed: cmd}
}

// generator returns the generator of this source. Builders receive their
// own clone of the context.
func (s Source[S, C]) generator(ctx C) *rapid.Generator[domain.Wrapper[S]] {
	if s.build != nil {
		return s.build(ctx.Clone())
	}
	return strategy.Just(s.fixed)
}

func (s Source[S, C]) valid() bool {
	return s.build != nil || s.fixed != nil
}
