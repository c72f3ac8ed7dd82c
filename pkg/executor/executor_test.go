package executor_test

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/aretw0/madhouse/examples/counter"
	"github.com/aretw0/madhouse/internal/testutils"
	"github.com/aretw0/madhouse/pkg/domain"
	"github.com/aretw0/madhouse/pkg/executor"
	"github.com/aretw0/madhouse/pkg/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type reject struct{}

func (reject) Check(*counter.State) bool { return false }
func (reject) Apply(*counter.State)      { panic("reject must never be applied") }
func (reject) Label() string             { return "REJECT" }

// broken panics while checking, as a command with an inconsistent model does.
type broken struct{}

func (broken) Check(*counter.State) bool { panic("check exploded") }
func (broken) Apply(*counter.State)      {}
func (broken) Label() string             { return "BROKEN" }

func wrap(cmds ...domain.Command[*counter.State]) []domain.Wrapper[*counter.State] {
	return testutils.Seq(cmds...)
}

func quiet() *executor.Executor[*counter.State] {
	return executor.New[*counter.State](executor.WithQuiet(true))
}

func TestExecute_Empty(t *testing.T) {
	state := counter.NewState()
	executed := quiet().Execute(context.Background(), nil, state)
	assert.Empty(t, executed)
}

func TestExecute_AllRejected(t *testing.T) {
	state := counter.NewState()
	executed := quiet().Execute(context.Background(), wrap(reject{}, reject{}), state)
	assert.Empty(t, executed)
}

func TestExecute_IncrementDecrementIncrement(t *testing.T) {
	state := counter.NewState()
	seq := wrap(&counter.Increment{Amount: 1}, counter.Decrement{}, &counter.Increment{Amount: 1})

	executed := quiet().Execute(context.Background(), seq, state)

	require.Len(t, executed, 3)
	for i, ex := range executed {
		assert.Equal(t, i, ex.Index)
		assert.Equal(t, seq[i].Label(), ex.Label())
	}
	assert.Equal(t, uint64(1), state.Value)
}

func TestExecute_DecrementFromZero(t *testing.T) {
	state := counter.NewState()
	executed := quiet().Execute(context.Background(), wrap(counter.Decrement{}), state)

	assert.Empty(t, executed)
	assert.Equal(t, uint64(0), state.Value)
}

func TestExecute_ChecksAgainstCurrentState(t *testing.T) {
	state := counter.NewState()
	// The first decrement is illegal, the second one becomes legal after the increment.
	seq := wrap(counter.Decrement{}, &counter.Increment{Amount: 1}, counter.Decrement{}, counter.Decrement{})

	executed := quiet().Execute(context.Background(), seq, state)

	require.Len(t, executed, 2)
	assert.Equal(t, 1, executed[0].Index)
	assert.Equal(t, 2, executed[1].Index)
	assert.Equal(t, uint64(0), state.Value)
}

func TestExecute_Report(t *testing.T) {
	var buf bytes.Buffer
	exec := executor.New[*counter.State](executor.WithOutput(&buf), executor.WithoutColor())
	seq := wrap(counter.Decrement{}, &counter.Increment{Amount: 3})

	exec.Execute(context.Background(), seq, counter.NewState())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Selected:", lines[0])
	assert.Equal(t, "01. DECREMENT", lines[1])
	assert.Equal(t, "02. INCREMENT(3)", lines[2])
	assert.Equal(t, "Executed:", lines[3])
	assert.Regexp(t, regexp.MustCompile(`^01\. INCREMENT\(3\) \(\d+\.\d{2}(ns|µs|ms|s)\)$`), lines[4])
}

func TestExecute_FatalApply(t *testing.T) {
	var buf bytes.Buffer
	var failed *domain.CommandEvent
	exec := executor.New[*counter.State](
		executor.WithOutput(&buf),
		executor.WithoutColor(),
		executor.WithLifecycleHooks(domain.LifecycleHooks{
			OnCommandFailed: func(_ context.Context, e *domain.CommandEvent) { failed = e },
		}),
	)
	seq := wrap(
		&counter.Increment{Amount: 60},
		&counter.Increment{Amount: 50},
		&counter.Increment{Amount: 1},
	)
	state := counter.NewState()

	func() {
		defer func() {
			ve, ok := domain.AsViolation(recover())
			require.True(t, ok, "the assertion must propagate unchanged")
			assert.Equal(t, domain.KindInvariant, ve.Kind)
			assert.Contains(t, ve.Message, "110")
		}()
		exec.Execute(context.Background(), seq, state)
		t.Fatal("Execute must not return after a failed assertion")
	}()

	require.NotNil(t, failed)
	assert.Equal(t, 1, failed.Index)
	assert.Equal(t, "INCREMENT(50)", failed.Label)

	out := buf.String()
	assert.Contains(t, out, "03. INCREMENT(1)\n", "the whole selection is reported")
	assert.Contains(t, out, "02. INCREMENT(50) (failed)")
	assert.Equal(t, uint64(110), state.Value)
}

func TestExecute_FatalCheck(t *testing.T) {
	var buf bytes.Buffer
	var failed *domain.CommandEvent
	exec := executor.New[*counter.State](
		executor.WithOutput(&buf),
		executor.WithoutColor(),
		executor.WithLifecycleHooks(domain.LifecycleHooks{
			OnCommandFailed: func(_ context.Context, e *domain.CommandEvent) { failed = e },
		}),
	)
	seq := wrap(&counter.Increment{Amount: 2}, broken{}, counter.Reset{})

	assert.PanicsWithValue(t, "check exploded", func() {
		exec.Execute(context.Background(), seq, counter.NewState())
	})

	require.NotNil(t, failed)
	assert.Equal(t, 1, failed.Index)
	assert.Equal(t, "BROKEN", failed.Label)

	out := buf.String()
	assert.Contains(t, out, "Selected:\n01. INCREMENT(2)\n02. BROKEN\n03. RESET\n")
	assert.Contains(t, out, "02. BROKEN (failed)")
}

func TestExecute_Hooks(t *testing.T) {
	var applied, skipped []int
	exec := executor.New[*counter.State](
		executor.WithQuiet(true),
		executor.WithLifecycleHooks(domain.LifecycleHooks{
			OnCommandApplied: func(_ context.Context, e *domain.CommandEvent) { applied = append(applied, e.Index) },
			OnCommandSkipped: func(_ context.Context, e *domain.CommandEvent) { skipped = append(skipped, e.Index) },
		}),
	)

	exec.Execute(context.Background(), wrap(reject{}, &counter.Increment{Amount: 1}, reject{}), counter.NewState())

	assert.Equal(t, []int{1}, applied)
	assert.Equal(t, []int{0, 2}, skipped)
}

// sequences mixes always-legal, sometimes-legal and never-legal commands.
func sequences() *rapid.Generator[[]domain.Wrapper[*counter.State]] {
	elem := strategy.OneOf(
		strategy.Range(1, 3, func(n int) domain.Command[*counter.State] {
			return &counter.Increment{Amount: uint64(n)}
		}),
		strategy.Just[*counter.State](counter.Decrement{}),
		strategy.Just[*counter.State](counter.Reset{}),
		strategy.Just[*counter.State](reject{}),
	)
	return strategy.Sequence(elem, 0, 20)
}

func TestExecute_OrderedSubsequence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seq := sequences().Draw(rt, "seq")
		executed := quiet().Execute(context.Background(), seq, counter.NewState())

		last := -1
		for _, ex := range executed {
			assert.Greater(rt, ex.Index, last, "executed commands keep their order")
			assert.Equal(rt, seq[ex.Index].Label(), ex.Label())
			assert.NotEqual(rt, "REJECT", ex.Label(), "a command that never passes its check never runs")
			last = ex.Index
		}
	})
}

func TestExecute_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seq := sequences().Draw(rt, "seq")

		first := quiet().Execute(context.Background(), seq, counter.NewState())
		second := quiet().Execute(context.Background(), seq, counter.NewState())

		require.Len(rt, second, len(first))
		for i := range first {
			assert.Equal(rt, first[i].Label(), second[i].Label())
			assert.Equal(rt, first[i].Index, second[i].Index)
		}
	})
}
