package utils

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Config holds the thresholds that bound the analyses.
type Config struct {
	// Number of visits to a block after which its incoming state is widened.
	WidenAfter int `toml:"widen-after"`
	// Number of descending passes run after the ascending iteration stabilises.
	NarrowPasses int `toml:"narrow-passes"`
	// Consecutive unchanged visits after which a path is cut.
	FixedPointRepeats int `toml:"fixed-point-repeats"`
	// Global ceiling on block visits. Zero disables it.
	MaxBlockVisits int `toml:"max-block-visits"`
	// Per-path ceiling on visited blocks. Zero disables it.
	MaxPathLength int `toml:"max-path-length"`
	// Variables whose name starts with this prefix are taint sources.
	SourcePrefix string `toml:"source-prefix"`
	// Functions whose name starts with this prefix are analyzed.
	EntryPrefix string `toml:"entry-prefix"`

	meta toml.MetaData
}

func DefaultConfig() Config {
	return Config{
		WidenAfter:        5,
		NarrowPasses:      2,
		FixedPointRepeats: 4,
		MaxBlockVisits:    100000,
		MaxPathLength:     1000,
		SourcePrefix:      "source",
		EntryPrefix:       "main",
	}
}

// Merge overrides the values of cfg with those explicitly set in ocfg.
func (cfg Config) Merge(ocfg Config) Config {
	if ocfg.meta.IsDefined("widen-after") {
		cfg.WidenAfter = ocfg.WidenAfter
	}
	if ocfg.meta.IsDefined("narrow-passes") {
		cfg.NarrowPasses = ocfg.NarrowPasses
	}
	if ocfg.meta.IsDefined("fixed-point-repeats") {
		cfg.FixedPointRepeats = ocfg.FixedPointRepeats
	}
	if ocfg.meta.IsDefined("max-block-visits") {
		cfg.MaxBlockVisits = ocfg.MaxBlockVisits
	}
	if ocfg.meta.IsDefined("max-path-length") {
		cfg.MaxPathLength = ocfg.MaxPathLength
	}
	if ocfg.meta.IsDefined("source-prefix") {
		cfg.SourcePrefix = ocfg.SourcePrefix
	}
	if ocfg.meta.IsDefined("entry-prefix") {
		cfg.EntryPrefix = ocfg.EntryPrefix
	}
	return cfg
}

func (cfg Config) validate() error {
	switch {
	case cfg.WidenAfter < 1:
		return errors.Errorf("widen-after must be positive, got %d", cfg.WidenAfter)
	case cfg.NarrowPasses < 0:
		return errors.Errorf("narrow-passes must not be negative, got %d", cfg.NarrowPasses)
	case cfg.FixedPointRepeats < 1:
		return errors.Errorf("fixed-point-repeats must be positive, got %d", cfg.FixedPointRepeats)
	case cfg.MaxBlockVisits < 0 || cfg.MaxPathLength < 0:
		return errors.New("visit ceilings must not be negative")
	}
	return nil
}

// ParseConfig reads a TOML configuration and merges it over the defaults.
func ParseConfig(r io.Reader) (Config, error) {
	var ocfg Config
	meta, err := toml.DecodeReader(r, &ocfg)
	if err != nil {
		return Config{}, errors.Wrap(err, "decoding configuration")
	}
	ocfg.meta = meta
	for _, key := range meta.Undecoded() {
		log.Warnf("Ignoring unknown configuration key %q", key.String())
	}

	cfg := DefaultConfig().Merge(ocfg)
	return cfg, cfg.validate()
}

// LoadConfig returns the configuration selected by -config, or the defaults.
// A -fun flag other than the default takes precedence over entry-prefix.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if path := opts.configFile; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "opening configuration")
		}
		defer f.Close()

		if cfg, err = ParseConfig(f); err != nil {
			return Config{}, errors.Wrapf(err, "in %s", path)
		}
	}
	if opts.function != "" && opts.function != "main" {
		cfg.EntryPrefix = opts.function
	}
	return cfg, nil
}
