package scenario

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/madhouse/pkg/config"
	"github.com/aretw0/madhouse/pkg/domain"
)

type settings struct {
	ctx    context.Context
	cfg    config.Config
	out    io.Writer
	logger *slog.Logger
	hooks  domain.LifecycleHooks
}

func resolve(opts []Option) settings {
	s := settings{
		ctx:    context.Background(),
		cfg:    config.Default(),
		out:    os.Stdout,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option defines a functional option for configuring a run.
type Option func(*settings)

// WithConfig replaces the whole run configuration. Apply it before the
// narrower options below.
func WithConfig(cfg config.Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithContext stops a run once ctx is done. The iteration in progress
// finishes its current command; later iterations are skipped.
func WithContext(ctx context.Context) Option {
	return func(s *settings) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithMode selects deterministic or random composition.
func WithMode(mode domain.Mode) Option {
	return func(s *settings) {
		s.cfg.Random = mode == domain.ModeRandom
	}
}

// WithCases sets the number of sequences generated per run.
func WithCases(n int) Option {
	return func(s *settings) {
		s.cfg.Cases = n
	}
}

// WithSteps bounds random-mode sequence length to [minSteps, maxSteps).
func WithSteps(minSteps, maxSteps int) Option {
	return func(s *settings) {
		s.cfg.MinSteps = minSteps
		s.cfg.MaxSteps = maxSteps
	}
}

// WithOutput sets where banners and command reports are written.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks. Hooks from several
// calls are all invoked, in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = s.hooks.Merge(hooks)
	}
}
