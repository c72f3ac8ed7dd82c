package domain

import (
	"fmt"
	"strings"
)

// Mode selects how command sources are combined into a sequence.
type Mode string

const (
	// ModeDeterministic draws exactly one command from every source, in declaration order.
	ModeDeterministic Mode = "deterministic"
	// ModeRandom draws a bounded number of commands, each from a randomly chosen source.
	ModeRandom Mode = "random"
)

// Default bounds for the length of a random-mode sequence: [1, 16).
const (
	DefaultMinSteps = 1
	DefaultMaxSteps = 16
)

// ParseMode converts a mode name into a Mode.
// "madhouse" is accepted as an alias for random mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeDeterministic), "normal":
		return ModeDeterministic, nil
	case string(ModeRandom), "madhouse":
		return ModeRandom, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
