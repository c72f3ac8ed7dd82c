package report

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ANSI palette indices used by the command report.
const (
	colorSelected = "3" // yellow
	colorExecuted = "2" // green
	colorFailed   = "1" // red
)

// Palette colors report lines for a given terminal profile.
type Palette struct {
	profile termenv.Profile
}

// NewPalette creates a palette for the given profile.
func NewPalette(profile termenv.Profile) Palette {
	return Palette{profile: profile}
}

// Plain returns a palette that never emits escape sequences.
func Plain() Palette {
	return Palette{profile: termenv.Ascii}
}

// ProfileFor picks the color profile for w.
// Colors are only used when w is a terminal and noColor is false.
func ProfileFor(w io.Writer, noColor bool) termenv.Profile {
	if noColor {
		return termenv.Ascii
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// Selected colors the label of a generated command.
func (p Palette) Selected(label string) string {
	return p.paint(label, colorSelected)
}

// Executed colors the label of an applied command.
func (p Palette) Executed(label string) string {
	return p.paint(label, colorExecuted)
}

// Failed colors the label of a command whose Apply panicked.
func (p Palette) Failed(label string) string {
	return p.paint(label, colorFailed)
}

func (p Palette) paint(s, color string) string {
	if p.profile == termenv.Ascii {
		return s
	}
	return p.profile.String(s).Foreground(p.profile.Color(color)).String()
}
