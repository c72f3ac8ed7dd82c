package report

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestPlainPalette(t *testing.T) {
	p := Plain()
	assert.Equal(t, "INCREMENT", p.Selected("INCREMENT"))
	assert.Equal(t, "INCREMENT", p.Executed("INCREMENT"))
	assert.Equal(t, "INCREMENT", p.Failed("INCREMENT"))
}

func TestANSIPalette(t *testing.T) {
	p := NewPalette(termenv.ANSI)
	out := p.Selected("INCREMENT")
	assert.Contains(t, out, "INCREMENT")
	assert.Contains(t, out, "\x1b[")
}

func TestProfileFor(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, termenv.Ascii, ProfileFor(&buf, false), "buffers are never terminals")
	assert.Equal(t, termenv.Ascii, ProfileFor(&buf, true))
}
