package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Profile is a YAML file describing a run: the Config knobs plus a free-form
// context that is decoded into the model's test context.
//
//	random: true
//	cases: 50
//	shrink_time: 5s
//	context:
//	  steps: [1, 5, 10]
type Profile struct {
	Config  `yaml:",inline"`
	Context map[string]any `yaml:"context"`
}

// LoadProfile reads a profile file on top of Default.
// The environment is not applied; call ApplyEnv afterwards.
func LoadProfile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer f.Close()

	p, err := ReadProfile(f)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// ReadProfile decodes a profile from r on top of Default.
func ReadProfile(r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	p := &Profile{Config: Default()}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// DecodeContext copies the profile context into out, a pointer to a context
// struct tagged with `mapstructure`. Weakly typed input is accepted so YAML
// integers fill unsigned or byte fields. Strings are decoded into fields
// implementing encoding.TextUnmarshaler and into time.Duration.
func (p *Profile) DecodeContext(out any) error {
	if len(p.Context) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused:      true,
	})
	if err != nil {
		return fmt.Errorf("failed to create context decoder: %w", err)
	}
	if err := dec.Decode(p.Context); err != nil {
		return fmt.Errorf("invalid context: %w", err)
	}
	return nil
}
