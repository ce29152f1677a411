package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lixenwraith/pi-catcher/constants"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Duration decodes TOML strings such as "16ms" or "2s"
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Game holds simulation tunables
type Game struct {
	ScreenSize      float64 `toml:"screen_size"`
	PieRadius       float64 `toml:"pie_radius"`
	PieAccel        float64 `toml:"pie_accel"`
	SpawnRate       uint64  `toml:"spawn_rate"`
	PlateWidth      float64 `toml:"plate_width"`
	PlateHeight     float64 `toml:"plate_height"`
	DigitsPerFetch  int     `toml:"digits_per_fetch"`
	RefillThreshold float64 `toml:"refill_threshold"`

	// Seed for pie generation, 0 = time based
	Seed uint64 `toml:"seed"`
}

// Half returns the distance from the center to an edge
func (g Game) Half() float64 {
	return g.ScreenSize / 2
}

// PlateY returns the fixed vertical center of the plate
func (g Game) PlateY() float64 {
	return -g.Half() + g.PlateHeight/2
}

// Source selects and tunes the digit source
type Source struct {
	Kind           string   `toml:"kind"`
	URL            string   `toml:"url"`
	Timeout        Duration `toml:"timeout"`
	MaxAttempts    int      `toml:"max_attempts"`
	InitialBackoff Duration `toml:"initial_backoff"`
	MaxBackoff     Duration `toml:"max_backoff"`
}

// Log configures the debug log file
type Log struct {
	Debug      bool   `toml:"debug"`
	Dir        string `toml:"dir"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Display configures the terminal frontend
type Display struct {
	TickInterval Duration `toml:"tick_interval"`
}

// Config is the root configuration
type Config struct {
	Game    Game    `toml:"game"`
	Source  Source  `toml:"source"`
	Log     Log     `toml:"log"`
	Display Display `toml:"display"`
}

// DefaultConfig returns the values the game was tuned with
func DefaultConfig() *Config {
	return &Config{
		Game: Game{
			ScreenSize:      constants.ScreenSize,
			PieRadius:       constants.PieRadius,
			PieAccel:        constants.PieAccel,
			SpawnRate:       constants.PieSpawnRate,
			PlateWidth:      constants.PlateWidth,
			PlateHeight:     constants.PlateHeight,
			DigitsPerFetch:  constants.DigitsLoadedAtOnce,
			RefillThreshold: constants.RefillThreshold,
		},
		Source: Source{
			Kind:           constants.SourceHTTP,
			URL:            constants.PiAPIURL,
			Timeout:        Duration{constants.FetchTimeout},
			MaxAttempts:    constants.FetchMaxAttempts,
			InitialBackoff: Duration{constants.FetchInitialBackoff},
			MaxBackoff:     Duration{constants.FetchMaxBackoff},
		},
		Log: Log{
			Dir:        constants.LogDir,
			File:       constants.LogFileName,
			MaxSizeMB:  constants.LogMaxSizeMB,
			MaxBackups: constants.LogMaxBackups,
		},
		Display: Display{
			TickInterval: Duration{constants.FrameUpdateInterval},
		},
	}
}

// Parse overlays TOML data onto the defaults
// Keys absent from data keep their default value
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads path and parses it; an empty path yields the defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config read: %w", err)
	}
	return Parse(data)
}

// Validate rejects values the simulation cannot run with
func (c *Config) Validate() error {
	g := c.Game
	switch {
	case g.ScreenSize <= 0:
		return fmt.Errorf("%w: game.screen_size must be positive", ErrInvalidConfig)
	case g.PieRadius <= 0:
		return fmt.Errorf("%w: game.pie_radius must be positive", ErrInvalidConfig)
	case g.PieAccel <= 0:
		return fmt.Errorf("%w: game.pie_accel must be positive", ErrInvalidConfig)
	case g.SpawnRate == 0:
		return fmt.Errorf("%w: game.spawn_rate must be positive", ErrInvalidConfig)
	case g.PlateWidth <= 0 || g.PlateHeight <= 0:
		return fmt.Errorf("%w: game.plate_width and game.plate_height must be positive", ErrInvalidConfig)
	case g.DigitsPerFetch <= 0:
		return fmt.Errorf("%w: game.digits_per_fetch must be positive", ErrInvalidConfig)
	case g.RefillThreshold <= 0 || g.RefillThreshold > 1:
		return fmt.Errorf("%w: game.refill_threshold must be in (0, 1]", ErrInvalidConfig)
	}

	s := c.Source
	switch s.Kind {
	case constants.SourceHTTP:
		if s.URL == "" {
			return fmt.Errorf("%w: source.url required for http source", ErrInvalidConfig)
		}
	case constants.SourceStatic:
	default:
		return fmt.Errorf("%w: unknown source.kind %q", ErrInvalidConfig, s.Kind)
	}
	if s.MaxAttempts <= 0 {
		return fmt.Errorf("%w: source.max_attempts must be positive", ErrInvalidConfig)
	}
	if s.Timeout.Duration <= 0 {
		return fmt.Errorf("%w: source.timeout must be positive", ErrInvalidConfig)
	}

	if c.Display.TickInterval.Duration <= 0 {
		return fmt.Errorf("%w: display.tick_interval must be positive", ErrInvalidConfig)
	}
	return nil
}
