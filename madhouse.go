package madhouse

import (
	"github.com/aretw0/madhouse/pkg/config"
	"github.com/aretw0/madhouse/pkg/domain"
	"github.com/aretw0/madhouse/pkg/executor"
	"github.com/aretw0/madhouse/pkg/scenario"
	"pgregory.net/rapid"
)

// Build declares a command variant through its builder.
func Build[S domain.State, C domain.TestContext[C]](fn func(ctx C) *rapid.Generator[domain.Wrapper[S]]) scenario.Source[S, C] {
	return scenario.Build(fn)
}

// Fixed declares a command instance that is used as is.
func Fixed[S domain.State, C domain.TestContext[C]](cmd domain.Command[S]) scenario.Source[S, C] {
	return scenario.Fixed[S, C](cmd)
}

// Run checks a scenario under t with the configuration read from the
// environment (MADHOUSE=1 selects random mode). Declaration or
// configuration errors fail t immediately.
func Run[S domain.State, C domain.TestContext[C]](t rapid.TB, ctx C, newState func() S, sources ...scenario.Source[S, C]) {
	t.Helper()

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("madhouse: %v", err)
		return
	}
	RunWith(t, ctx, newState, sources, scenario.WithConfig(cfg))
}

// RunWith is Run with explicit options instead of the environment.
func RunWith[S domain.State, C domain.TestContext[C]](t rapid.TB, ctx C, newState func() S, sources []scenario.Source[S, C], opts ...scenario.Option) {
	t.Helper()

	sc, err := scenario.New(ctx, newState, sources...)
	if err != nil {
		t.Fatalf("madhouse: %v", err)
		return
	}
	sc.Run(t, opts...)
}

// Execute applies seq to state, skipping commands whose precondition does
// not hold, and returns the applied ones. See executor.Execute.
func Execute[S domain.State](seq []domain.Wrapper[S], state S) []domain.Executed[S] {
	return executor.Execute(seq, state)
}
