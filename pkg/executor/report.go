package executor

import (
	"fmt"
	"io"
	"time"

	"github.com/aretw0/madhouse/internal/presentation/report"
	"github.com/aretw0/madhouse/pkg/domain"
)

// report writes the two-section summary of one sequence.
// failed is the index of the command whose Apply panicked, or -1.
func (e *Executor[S]) report(seq []domain.Wrapper[S], executed []domain.Executed[S], failed int) {
	if e.quiet || e.out == nil {
		return
	}
	writeReport(e.out, e.palette, seq, executed, failed)
}

// writeReport prints the Selected section (every command of seq) followed by
// the Executed section (the applied commands with their apply time).
// Lines are numbered from 1 with two digits, e.g. "01. INCREMENT".
func writeReport[S domain.State](w io.Writer, p report.Palette, seq []domain.Wrapper[S], executed []domain.Executed[S], failed int) {
	fmt.Fprintln(w, "Selected:")
	for i, cmd := range seq {
		fmt.Fprintf(w, "%02d. %s\n", i+1, p.Selected(cmd.Label()))
	}

	fmt.Fprintln(w, "Executed:")
	for i, ex := range executed {
		fmt.Fprintf(w, "%02d. %s (%s)\n", i+1, p.Executed(ex.Label()), formatElapsed(ex.Elapsed))
	}
	if failed >= 0 && failed < len(seq) {
		fmt.Fprintf(w, "%02d. %s (failed)\n", len(executed)+1, p.Failed(seq[failed].Label()))
	}
}

// formatElapsed renders d with two decimals in the largest fitting unit.
func formatElapsed(d time.Duration) string {
	switch {
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	case d >= time.Microsecond:
		return fmt.Sprintf("%.2fµs", float64(d)/float64(time.Microsecond))
	default:
		return fmt.Sprintf("%.2fns", float64(d))
	}
}
