package utils

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParseConfig(t *testing.T) {
	withDefaults := func(f func(*Config)) Config {
		cfg := DefaultConfig()
		f(&cfg)
		return cfg
	}

	tests := []struct {
		name  string
		input string
		want  Config
	}{
		{"empty", "", DefaultConfig()},
		{
			"overrides",
			"widen-after = 2\nsource-prefix = \"input\"\n",
			withDefaults(func(cfg *Config) {
				cfg.WidenAfter = 2
				cfg.SourcePrefix = "input"
			}),
		},
		{
			"explicit zero disables ceiling",
			"max-block-visits = 0\nmax-path-length = 0\n",
			withDefaults(func(cfg *Config) {
				cfg.MaxBlockVisits = 0
				cfg.MaxPathLength = 0
			}),
		},
		{
			"unknown keys are ignored",
			"narrow-passes = 0\nbogus = true\n",
			withDefaults(func(cfg *Config) {
				cfg.NarrowPasses = 0
			}),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := ParseConfig(strings.NewReader(test.input))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
				t.Errorf("Unexpected configuration (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseConfigInvalid(t *testing.T) {
	for _, input := range []string{
		"widen-after = 0",
		"narrow-passes = -1",
		"fixed-point-repeats = 0",
		"max-block-visits = -3",
		"widen-after = \"five\"",
		"widen-after = ",
	} {
		if _, err := ParseConfig(strings.NewReader(input)); err == nil {
			t.Errorf("Expected %q to be rejected", input)
		}
	}
}
