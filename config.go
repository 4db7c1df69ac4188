package ember

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Default tuning values used by DefaultConfig and by normalization when a
// loaded config leaves a field unset or nonsensical.
const (
	DefaultDesktopCount  = 1400
	DefaultMobileCount   = 700
	DefaultMobileWidth   = 600.0
	DefaultDensityFactor = 1.2
)

// Message is one entry of the scripted intro sequence. A message flagged
// Balloon extends its hold with the balloon sub-animation.
type Message struct {
	Text    string `yaml:"text"`
	Balloon bool   `yaml:"balloon,omitempty"`
}

// Durations holds the fixed phase lengths in seconds.
type Durations struct {
	// Explosion is the length of the legacy explosion intro (only used when
	// Config.Explosion is set).
	Explosion float64 `yaml:"explosion"`
	// ParticleLife is the free-running span between messages.
	ParticleLife float64 `yaml:"particle_life"`
	// Forming is the span over which formation force ramps to full strength.
	Forming float64 `yaml:"forming"`
	// Holding is how long a formed message stays on screen.
	Holding float64 `yaml:"holding"`
	// FirstHolding replaces Holding for the very first message.
	FirstHolding float64 `yaml:"first_holding"`
	// BalloonHolding replaces Holding for a message flagged Balloon.
	BalloonHolding float64 `yaml:"balloon_holding"`
	// BalloonRise is the length of the balloon sub-animation.
	BalloonRise float64 `yaml:"balloon_rise"`
	// Dissolving is the scatter span after a hold ends.
	Dissolving float64 `yaml:"dissolving"`
	// MatrixReroll is the interval at which the infinite tail re-rolls the
	// attraction matrix.
	MatrixReroll float64 `yaml:"matrix_reroll"`
}

// Config controls a System. The zero value is not usable; start from
// DefaultConfig or a named Preset.
type Config struct {
	// Messages is the scripted intro sequence, formed in order.
	Messages []Message `yaml:"messages"`

	// DesktopCount and MobileCount are the base particle populations; the
	// mobile count applies when the canvas is narrower than MobileWidth.
	// The population grows beyond the base when needed so that every
	// silhouette has at least DensityFactor particles per sample point.
	DesktopCount  int     `yaml:"desktop_count"`
	MobileCount   int     `yaml:"mobile_count"`
	MobileWidth   float64 `yaml:"mobile_width"`
	DensityFactor float64 `yaml:"density_factor"`

	Durations Durations `yaml:"durations"`

	// Explosion enables the legacy explosion intro instead of starting on
	// the first message already formed.
	Explosion bool `yaml:"explosion"`
	// Pointer enables pointer/touch repulsion during the free-running phase.
	Pointer bool `yaml:"pointer"`

	// Matrix forces a named attraction preset for every roll; empty picks
	// one uniformly at random per roll.
	Matrix string `yaml:"matrix,omitempty"`
	// Seed fixes the random source; 0 seeds from the clock.
	Seed int64 `yaml:"seed,omitempty"`

	// LogLevel enables diagnostics ("debug", "info", "warn", "error");
	// empty keeps the system silent. LogFile redirects output to a file.
	LogLevel string `yaml:"log_level,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"`
}

// DefaultConfig returns the standard hero-animation setup: three messages,
// the last one flagged for the balloon, no explosion intro.
func DefaultConfig() *Config {
	return &Config{
		Messages: []Message{
			{Text: "hello"},
			{Text: "this is ember"},
			{Text: "say hi", Balloon: true},
		},
		DesktopCount:  DefaultDesktopCount,
		MobileCount:   DefaultMobileCount,
		MobileWidth:   DefaultMobileWidth,
		DensityFactor: DefaultDensityFactor,
		Durations: Durations{
			Explosion:      1.8,
			ParticleLife:   7.0,
			Forming:        3.5,
			Holding:        5.0,
			FirstHolding:   3.2,
			BalloonHolding: 2.6,
			BalloonRise:    6.0,
			Dissolving:     2.2,
			MatrixReroll:   12.0,
		},
		Pointer: true,
	}
}

// LoadConfig reads a YAML config from path, applied over DefaultConfig so
// omitted fields keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ember: read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("ember: parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as YAML to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("ember: marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ember: write config %s: %w", path, err)
	}
	return nil
}

// normalize replaces unusable values with defaults so New never has to fail.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.DesktopCount <= 0 {
		c.DesktopCount = def.DesktopCount
	}
	if c.MobileCount <= 0 {
		c.MobileCount = def.MobileCount
	}
	if c.MobileWidth <= 0 {
		c.MobileWidth = def.MobileWidth
	}
	if c.DensityFactor <= 0 {
		c.DensityFactor = def.DensityFactor
	}
	d, dd := &c.Durations, def.Durations
	if d.Explosion <= 0 {
		d.Explosion = dd.Explosion
	}
	if d.ParticleLife <= 0 {
		d.ParticleLife = dd.ParticleLife
	}
	if d.Forming <= 0 {
		d.Forming = dd.Forming
	}
	if d.Holding <= 0 {
		d.Holding = dd.Holding
	}
	if d.FirstHolding <= 0 {
		d.FirstHolding = dd.FirstHolding
	}
	if d.BalloonHolding <= 0 {
		d.BalloonHolding = dd.BalloonHolding
	}
	if d.BalloonRise <= 0 {
		d.BalloonRise = dd.BalloonRise
	}
	if d.Dissolving <= 0 {
		d.Dissolving = dd.Dissolving
	}
	if d.MatrixReroll <= 0 {
		d.MatrixReroll = dd.MatrixReroll
	}
}

// configPresets builds named starting configurations. Builders return fresh
// values so callers can mutate the result freely.
var configPresets = map[string]func() *Config{
	"default": DefaultConfig,
	"calm": func() *Config {
		cfg := DefaultConfig()
		cfg.DesktopCount = 900
		cfg.MobileCount = 500
		cfg.Durations.Holding = 6.5
		cfg.Durations.FirstHolding = 4.0
		cfg.Durations.ParticleLife = 9.0
		cfg.Pointer = false
		return cfg
	},
	"storm": func() *Config {
		cfg := DefaultConfig()
		cfg.DesktopCount = 2000
		cfg.MobileCount = 1000
		cfg.Explosion = true
		cfg.Matrix = string(PresetChaos)
		cfg.Durations.ParticleLife = 5.0
		cfg.Durations.Forming = 2.8
		cfg.Durations.Holding = 4.0
		cfg.Durations.MatrixReroll = 8.0
		return cfg
	},
	"minimal": func() *Config {
		cfg := DefaultConfig()
		cfg.Messages = []Message{{Text: "hi"}}
		cfg.DesktopCount = 800
		cfg.MobileCount = 400
		cfg.Pointer = false
		return cfg
	},
}

// Preset returns a copy of a named configuration, or false if the name is
// unknown.
func Preset(name string) (*Config, bool) {
	build, ok := configPresets[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// PresetNames lists the available configuration presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(configPresets))
	for name := range configPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
