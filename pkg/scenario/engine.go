package scenario

import (
	"flag"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/aretw0/madhouse/pkg/config"
)

// rapid reads its settings from flags registered on flag.CommandLine, so
// runs that override them are serialized.
var engineMu sync.Mutex

type flagValue struct {
	name  string
	value string
}

func engineFlags(cfg config.Config) []flagValue {
	// rapid treats the shrink time as a deadline; the smallest positive
	// duration stops it after the first shrink attempt.
	shrink := cfg.ShrinkTime
	if shrink <= 0 {
		shrink = time.Nanosecond
	}
	values := []flagValue{
		{name: "rapid.checks", value: strconv.Itoa(cfg.Cases)},
		{name: "rapid.shrinktime", value: shrink.String()},
	}
	if cfg.Seed != 0 {
		values = append(values, flagValue{name: "rapid.seed", value: strconv.FormatUint(cfg.Seed, 10)})
	}
	if cfg.NoFailFile {
		values = append(values, flagValue{name: "rapid.nofailfile", value: "true"})
	}
	return values
}

// overrideEngine sets rapid's flags from cfg and returns a function that
// restores them. Flags set explicitly through flag.Parse are left alone.
func overrideEngine(cfg config.Config) (restore func(), err error) {
	explicit := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = true
	})

	engineMu.Lock()
	var previous []flagValue
	restore = func() {
		for i := len(previous) - 1; i >= 0; i-- {
			if f := flag.Lookup(previous[i].name); f != nil {
				_ = f.Value.Set(previous[i].value)
			}
		}
		engineMu.Unlock()
	}

	for _, v := range engineFlags(cfg) {
		if explicit[v.name] {
			continue
		}
		f := flag.Lookup(v.name)
		if f == nil {
			continue
		}
		old := f.Value.String()
		if err := f.Value.Set(v.value); err != nil {
			restore()
			return nil, fmt.Errorf("failed to set -%s: %w", v.name, err)
		}
		previous = append(previous, flagValue{name: v.name, value: old})
	}
	return restore, nil
}
