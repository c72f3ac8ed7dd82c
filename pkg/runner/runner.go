package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/madhouse/pkg/config"
	"github.com/aretw0/madhouse/pkg/domain"
	"github.com/aretw0/madhouse/pkg/registry"
	"github.com/aretw0/madhouse/pkg/scenario"
	"pgregory.net/rapid"
)

// Result summarizes one model run.
type Result struct {
	Model    string
	Failed   bool
	Skipped  bool
	Messages []string
	Duration time.Duration
}

// Runner executes registered models outside of `go test`, for the CLI and
// for soak runs against real systems.
type Runner struct {
	// Registry holds the runnable models.
	Registry *registry.Registry

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Output receives run banners, command reports and engine messages.
	Output io.Writer

	// Hooks are forwarded to every scenario run.
	Hooks domain.LifecycleHooks
}

// NewRunner creates a Runner over reg writing to Stdout.
func NewRunner(reg *registry.Registry, opts ...Option) *Runner {
	r := &Runner{
		Registry: reg,
		Output:   os.Stdout,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run runs the named model with the given profile, which may be nil.
//
// The returned error covers setup problems and cancellation. A model that
// fails its properties yields a Result with Failed set and a nil error.
// When ctx is cancelled the command in progress is allowed to finish, the
// remaining iterations are skipped and ctx.Err is returned.
func (r *Runner) Run(ctx context.Context, name string, profile *config.Profile) (Result, error) {
	model, err := r.Registry.Get(name)
	if err != nil {
		return Result{}, err
	}
	if profile == nil {
		profile = &config.Profile{Config: config.Default()}
	}
	cfg := profile.Config
	// Fail files are keyed by test name and only make sense under `go test`.
	cfg.NoFailFile = true

	opts := []scenario.Option{
		scenario.WithConfig(cfg),
		scenario.WithContext(ctx),
		scenario.WithOutput(r.Output),
		scenario.WithLogger(r.Logger),
		scenario.WithLifecycleHooks(r.Hooks),
	}

	t := NewT(name, r.Output)
	start := time.Now()
	done := make(chan struct{})

	r.Logger.Info("model started", "model", name, "mode", cfg.Mode(), "cases", cfg.Cases)
	go func() {
		defer close(done)
		t.Do(func(tb rapid.TB) {
			model.Run(tb, profile, opts...)
		})
	}()

	select {
	case <-done:
	case <-ctx.Done():
		r.Logger.Warn("model interrupted, waiting for the current command", "model", name)
		<-done
	}

	res := Result{
		Model:    name,
		Failed:   t.Failed(),
		Skipped:  t.Skipped(),
		Messages: t.Messages(),
		Duration: time.Since(start),
	}
	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("model %s: %w", name, err)
	}
	r.Logger.Info("model finished",
		"model", name,
		"failed", res.Failed,
		"duration", res.Duration,
	)
	return res, nil
}
