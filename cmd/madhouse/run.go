package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/madhouse"
	httpAdapter "github.com/aretw0/madhouse/internal/adapters/http"
	"github.com/aretw0/madhouse/internal/logging"
	"github.com/aretw0/madhouse/pkg/config"
	"github.com/aretw0/madhouse/pkg/observability"
	"github.com/aretw0/madhouse/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// errFailed is returned when a model run finds a violation. The details have
// already been reported.
var errFailed = errors.New("model failed")

var runCmd = &cobra.Command{
	Use:   "run <model>",
	Short: "Run a model",
	Long: `Runs a registered model. Settings are layered: defaults, then the --profile
file, then MADHOUSE_* environment variables, then flags given on the command line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := loadProfile(cmd.Flags())
		if err != nil {
			return err
		}

		level, err := logging.ParseLevel(profile.LogLevel)
		if err != nil {
			return err
		}
		logger := logging.New(level)

		reg := models()
		metrics := prometheus.NewRegistry()
		m, err := observability.NewMetrics(metrics)
		if err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}

		if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
			srv := httpAdapter.Start(addr, httpAdapter.NewHandler(reg, metrics, madhouse.Version), logger)
			defer func() {
				if err := srv.Shutdown(); err != nil {
					logger.Error("metrics server stopped with error", "error", err)
				}
			}()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		r := runner.NewRunner(reg,
			runner.WithLogger(logger),
			runner.WithOutput(cmd.OutOrStdout()),
			runner.WithLifecycleHooks(m.Hooks()),
		)
		res, err := r.Run(ctx, args[0], profile)
		if err != nil {
			return err
		}

		logger.Info("run complete", "model", res.Model, "failed", res.Failed, "duration", res.Duration)
		if res.Failed {
			return fmt.Errorf("%w: %s", errFailed, res.Model)
		}
		return nil
	},
}

// loadProfile layers the configuration sources in precedence order.
func loadProfile(flags *pflag.FlagSet) (*config.Profile, error) {
	profile := &config.Profile{Config: config.Default()}
	if path, _ := flags.GetString("profile"); path != "" {
		p, err := config.LoadProfile(path)
		if err != nil {
			return nil, err
		}
		profile = p
	}
	if err := config.ApplyEnv(&profile.Config); err != nil {
		return nil, err
	}
	if err := applyFlags(flags, &profile.Config); err != nil {
		return nil, err
	}
	return profile, profile.Validate()
}

// applyFlags copies only the flags that were set explicitly.
func applyFlags(flags *pflag.FlagSet, cfg *config.Config) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "random":
			cfg.Random, err = flags.GetBool(f.Name)
		case "cases":
			cfg.Cases, err = flags.GetInt(f.Name)
		case "shrink-time":
			cfg.ShrinkTime, err = flags.GetDuration(f.Name)
		case "min-steps":
			cfg.MinSteps, err = flags.GetInt(f.Name)
		case "max-steps":
			cfg.MaxSteps, err = flags.GetInt(f.Name)
		case "seed":
			cfg.Seed, err = flags.GetUint64(f.Name)
		case "quiet":
			cfg.Quiet, err = flags.GetBool(f.Name)
		case "no-color":
			cfg.NoColor, err = flags.GetBool(f.Name)
		case "log-level":
			cfg.LogLevel, err = flags.GetString(f.Name)
		}
	})
	return err
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("profile", "", "YAML profile with settings and a model context")
	runCmd.Flags().Bool("random", false, "Random mode: sequences drawn from any source (same as MADHOUSE=1)")
	runCmd.Flags().Int("cases", 1, "Number of sequences to generate")
	runCmd.Flags().Duration("shrink-time", 0, "Time budget for shrinking a failing sequence")
	runCmd.Flags().Int("min-steps", 1, "Minimum random-mode sequence length")
	runCmd.Flags().Int("max-steps", 16, "Random-mode sequence length upper bound (exclusive)")
	runCmd.Flags().Uint64("seed", 0, "Fixed PRNG seed (0 picks one)")
	runCmd.Flags().Bool("quiet", false, "Suppress the Selected/Executed report")
	runCmd.Flags().String("metrics-addr", "", "Serve /metrics, /models and /health on this address during the run")
}
