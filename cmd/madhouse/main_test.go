package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/madhouse/internal/testutils"
	"github.com/aretw0/madhouse/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every flag of cmd and its children back to its default so
// one execution does not leak into the next.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue), f.Name)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(t, c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t, rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "madhouse version ")
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "counter")
	assert.Contains(t, out, "mining")
}

func TestRun(t *testing.T) {
	t.Run("Counter", func(t *testing.T) {
		_, err := execute(t, "run", "counter", "--quiet", "--cases", "5", "--log-level", "error")
		assert.NoError(t, err)
	})

	t.Run("FlagsDoNotCarryOver", func(t *testing.T) {
		_, err := execute(t, "run", "counter", "--quiet", "--cases", "2", "--log-level", "error")
		require.NoError(t, err)

		out, err := execute(t, "run", "counter", "--log-level", "error")
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(out, "=== New Test Run (deterministic mode) ==="))
	})

	t.Run("UnknownModel", func(t *testing.T) {
		_, err := execute(t, "run", "nope", "--log-level", "error")
		assert.EqualError(t, err, "model not found: nope")
	})

	t.Run("InvalidBounds", func(t *testing.T) {
		_, err := execute(t, "run", "counter", "--min-steps", "5", "--max-steps", "5", "--log-level", "error")
		assert.Error(t, err)
	})

	t.Run("Overflow", func(t *testing.T) {
		path := testutils.WriteProfile(t, "random: true\ncontext:\n  steps: [50]\n")

		out, err := execute(t, "run", "counter",
			"--profile", path,
			"--min-steps", "1",
			"--max-steps", "12",
			"--cases", "200",
			"--shrink-time", "1s",
			"--log-level", "error",
		)
		assert.ErrorIs(t, err, errFailed)
		assert.Contains(t, out, "(failed)")
	})
}

func TestApplyFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("random", false, "")
	flags.Int("cases", 1, "")
	flags.Duration("shrink-time", 0, "")
	flags.Uint64("seed", 0, "")
	require.NoError(t, flags.Parse([]string{"--random", "--seed", "9"}))

	cfg := config.Default()
	cfg.Cases = 40
	require.NoError(t, applyFlags(flags, &cfg))

	assert.True(t, cfg.Random)
	assert.Equal(t, uint64(9), cfg.Seed)
	assert.Equal(t, 40, cfg.Cases, "flags left at their default do not override")
}
