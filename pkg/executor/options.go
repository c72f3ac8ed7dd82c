package executor

import (
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/madhouse/internal/presentation/report"
	"github.com/aretw0/madhouse/pkg/domain"
	"github.com/muesli/termenv"
)

type settings struct {
	out     io.Writer
	palette report.Palette
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	quiet   bool
}

func defaultSettings() settings {
	return settings{
		out:     os.Stdout,
		palette: report.NewPalette(report.ProfileFor(os.Stdout, false)),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Option defines a functional option for configuring the Executor.
type Option func(*settings)

// WithOutput sets where the Selected/Executed report is written.
// Colors are disabled unless w is a terminal.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
		s.palette = report.NewPalette(report.ProfileFor(w, false))
	}
}

// WithColorProfile forces the color profile of the report.
func WithColorProfile(profile termenv.Profile) Option {
	return func(s *settings) {
		s.palette = report.NewPalette(profile)
	}
}

// WithoutColor disables colored labels.
func WithoutColor() Option {
	return func(s *settings) {
		s.palette = report.Plain()
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

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// WithQuiet suppresses the report.
func WithQuiet(quiet bool) Option {
	return func(s *settings) {
		s.quiet = quiet
	}
}
