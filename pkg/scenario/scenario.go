package scenario

import (
	"fmt"
	"time"

	"github.com/aretw0/madhouse/pkg/domain"
	"github.com/aretw0/madhouse/pkg/executor"
	"github.com/aretw0/madhouse/pkg/strategy"
	"pgregory.net/rapid"
)

// Scenario binds a test context, a state factory and the declared command
// sources of a model.
type Scenario[S domain.State, C domain.TestContext[C]] struct {
	ctx      C
	newState func() S
	sources  []Source[S, C]
}

// New validates and creates a scenario. Sources keep their declaration order,
// which is the order of every deterministic sequence.
func New[S domain.State, C domain.TestContext[C]](ctx C, newState func() S, sources ...Source[S, C]) (*Scenario[S, C], error) {
	if newState == nil {
		return nil, domain.ErrNilStateFactory
	}
	if len(sources) == 0 {
		return nil, domain.ErrNoSources
	}
	for i, src := range sources {
		if !src.valid() {
			return nil, fmt.Errorf("source %d declares neither a builder nor a command", i)
		}
	}
	return &Scenario[S, C]{ctx: ctx, newState: newState, sources: sources}, nil
}

// Len returns the number of declared sources.
func (sc *Scenario[S, C]) Len() int {
	return len(sc.sources)
}

// Strategy returns the sequence generator selected by the options.
func (sc *Scenario[S, C]) Strategy(opts ...Option) (*rapid.Generator[[]domain.Wrapper[S]], error) {
	return sc.strategy(resolve(opts))
}

func (sc *Scenario[S, C]) strategy(st settings) (*rapid.Generator[[]domain.Wrapper[S]], error) {
	gens := make([]*rapid.Generator[domain.Wrapper[S]], len(sc.sources))
	for i, src := range sc.sources {
		gens[i] = src.generator(sc.ctx)
	}
	return strategy.Compose(st.cfg.Mode(), st.cfg.MinSteps, st.cfg.MaxSteps, gens...)
}

// Property returns the rapid property of the scenario: draw a sequence,
// start from a fresh state and execute it.
func (sc *Scenario[S, C]) Property(opts ...Option) (func(*rapid.T), error) {
	st := resolve(opts)
	if err := st.cfg.Validate(); err != nil {
		return nil, err
	}
	gen, err := sc.strategy(st)
	if err != nil {
		return nil, err
	}

	execOpts := []executor.Option{
		executor.WithOutput(st.out),
		executor.WithLogger(st.logger),
		executor.WithLifecycleHooks(st.hooks),
		executor.WithQuiet(st.cfg.Quiet),
	}
	if st.cfg.NoColor {
		execOpts = append(execOpts, executor.WithoutColor())
	}
	exec := executor.New[S](execOpts...)
	mode := st.cfg.Mode()

	return func(t *rapid.T) {
		ctx := st.ctx
		if err := ctx.Err(); err != nil {
			t.Skipf("run stopped: %v", err)
		}
		seq := gen.Draw(t, "commands")
		selected := domain.Labels(seq)

		if !st.cfg.Quiet && st.out != nil {
			fmt.Fprintf(st.out, "\n=== New Test Run (%s mode) ===\n\n", mode)
		}
		st.logger.Debug("iteration started", "mode", mode, "commands", len(seq))
		if st.hooks.OnIterationStart != nil {
			st.hooks.OnIterationStart(ctx, &domain.IterationEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventIterationStart},
				Mode:      mode,
				Selected:  selected,
			})
		}

		executed := exec.Execute(ctx, seq, sc.newState())

		labels := make([]string, len(executed))
		for i, ex := range executed {
			labels[i] = ex.Label()
		}
		st.logger.Debug("iteration finished", "selected", len(seq), "executed", len(executed))
		if st.hooks.OnIterationEnd != nil {
			st.hooks.OnIterationEnd(ctx, &domain.IterationEvent{
				EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventIterationEnd},
				Mode:      mode,
				Selected:  selected,
				Executed:  labels,
			})
		}
	}, nil
}

// Run checks the scenario with rapid. Setup errors fail t. A violation raised
// by a command fails t after rapid has shrunk the sequence within the
// configured shrink time.
//
// Once the context given with WithContext is done, the remaining iterations
// are skipped and rapid reports the run as incomplete.
//
// Engine flags given explicitly on the command line (-rapid.checks and
// friends) take precedence over the configuration.
func (sc *Scenario[S, C]) Run(t rapid.TB, opts ...Option) {
	t.Helper()

	st := resolve(opts)
	if err := st.ctx.Err(); err != nil {
		t.Skipf("madhouse: run stopped: %v", err)
		return
	}
	prop, err := sc.Property(opts...)
	if err != nil {
		t.Fatalf("madhouse: %v", err)
		return
	}
	restore, err := overrideEngine(st.cfg)
	if err != nil {
		t.Fatalf("madhouse: %v", err)
		return
	}
	defer restore()

	st.logger.Info("running scenario",
		"mode", st.cfg.Mode(),
		"cases", st.cfg.Cases,
		"shrink_time", st.cfg.ShrinkTime,
		"sources", len(sc.sources),
	)
	rapid.Check(t, prop)
}
