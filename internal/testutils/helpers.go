package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/madhouse/pkg/domain"
	"github.com/stretchr/testify/require"
)

// Seq wraps commands into a realized sequence.
func Seq[S domain.State](cmds ...domain.Command[S]) []domain.Wrapper[S] {
	seq := make([]domain.Wrapper[S], len(cmds))
	for i, c := range cmds {
		seq[i] = domain.Wrap(c)
	}
	return seq
}

// ExecutedLabels returns the labels of applied commands, in order.
func ExecutedLabels[S domain.State](executed []domain.Executed[S]) []string {
	out := make([]string, len(executed))
	for i, ex := range executed {
		out[i] = ex.Label()
	}
	return out
}

// WriteProfile writes a YAML profile into a temporary directory and returns
// its path. It fails the test immediately on error.
func WriteProfile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "Failed to write profile")
	return path
}
