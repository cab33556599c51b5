package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/hamstercide/audio"
	"github.com/lixenwraith/hamstercide/device"
	"github.com/lixenwraith/hamstercide/game"
	"github.com/lixenwraith/hamstercide/parameter"
	"github.com/lixenwraith/hamstercide/target"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// EnvPrefix namespaces every environment override
const EnvPrefix = "HAMSTERCIDE_"

// Duration is a time.Duration that reads and writes as "300ms" style text
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

type HapticConfig struct {
	RateHz      float64 `toml:"rate_hz"`
	Realtime    bool    `toml:"realtime"`
	MaxForce    float64 `toml:"max_force"`
	ProbeRadius float64 `toml:"probe_radius"`
}

type GridConfig struct {
	Rows    int     `toml:"rows"`
	Cols    int     `toml:"cols"`
	Spacing float64 `toml:"spacing"`
	Seed    uint64  `toml:"seed"` // 0 picks a time-based seed at startup
}

type SwingConfig struct {
	Duration Duration `toml:"duration"`
	Depth    float64  `toml:"depth"`
	RestZ    float64  `toml:"rest_z"`
}

// Params converts to the driver's swing shape
func (s SwingConfig) Params() device.SwingParams {
	return device.SwingParams{Duration: s.Duration.Std(), Depth: s.Depth, RestZ: s.RestZ}
}

type RoundConfig struct {
	Duration Duration `toml:"duration"` // 0 disables the countdown
}

type SpectatorConfig struct {
	Addr     string   `toml:"addr"` // empty disables the feed
	Interval Duration `toml:"interval"`
}

// Config is the full runtime configuration
// Zero value is not usable; start from Default
type Config struct {
	Debug    bool `toml:"debug"`
	Headless bool `toml:"headless"`
	SoftBody bool `toml:"soft_body"`

	Haptic    HapticConfig     `toml:"haptic"`
	Grid      GridConfig       `toml:"grid"`
	Target    target.Params    `toml:"target"`
	Rules     game.Rules       `toml:"scoring"`
	Vibration game.Vibration   `toml:"vibration"`
	Board     game.BoardLayout `toml:"board"`
	Swing     SwingConfig      `toml:"swing"`
	Round     RoundConfig      `toml:"round"`
	Audio     audio.Config     `toml:"audio"`
	Spectator SpectatorConfig  `toml:"spectator"`
}

// Default returns the built-in configuration
func Default() Config {
	swing := device.DefaultSwingParams()
	return Config{
		SoftBody: true,
		Haptic: HapticConfig{
			RateHz:      parameter.HapticRateHz,
			MaxForce:    parameter.MaxDeviceForce,
			ProbeRadius: parameter.ProbeRadius,
		},
		Grid: GridConfig{
			Rows:    parameter.GridRows,
			Cols:    parameter.GridCols,
			Spacing: parameter.GridSpacing,
		},
		Target:    target.DefaultParams(),
		Rules:     game.DefaultRules(),
		Vibration: game.DefaultVibration(),
		Board:     game.DefaultBoardLayout(),
		Swing: SwingConfig{
			Duration: Duration(swing.Duration),
			Depth:    swing.Depth,
			RestZ:    swing.RestZ,
		},
		Round:     RoundConfig{Duration: Duration(parameter.RoundDuration)},
		Audio:     audio.DefaultConfig(),
		Spectator: SpectatorConfig{Interval: Duration(parameter.SpectatorInterval)},
	}
}

// LookupFunc resolves an environment key; matches os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Load applies defaults, the TOML file at path (optional), a .env file in the
// working directory (optional) and HAMSTERCIDE_* overrides, then validates
func Load(path string) (Config, error) {
	return LoadFrom(path, ".env", os.LookupEnv)
}

// LoadFrom is Load with an explicit .env path and environment source
// Process environment wins over .env entries, as with godotenv.Load
func LoadFrom(path, envFile string, lookup LookupFunc) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			dotenv, err := godotenv.Read(envFile)
			if err != nil {
				return cfg, fmt.Errorf("read %s: %w", envFile, err)
			}
			lookup = withFallback(lookup, dotenv)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode overlays TOML data onto cfg; unknown keys are an error
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Encode renders cfg as TOML
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

func withFallback(primary LookupFunc, fallback map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if primary != nil {
			if v, ok := primary(key); ok {
				return v, true
			}
		}
		v, ok := fallback[key]
		return v, ok
	}
}

// applyEnv reads HAMSTERCIDE_* keys; malformed values are reported, not ignored
func applyEnv(cfg *Config, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return v, ok && v != ""
	}
	bad := func(name, v string, err error) error {
		return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, name, v, err)
	}

	if v, ok := get("DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return bad("DEBUG", v, err)
		}
		cfg.Debug = b
	}

	if v, ok := get("HEADLESS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return bad("HEADLESS", v, err)
		}
		cfg.Headless = b
	}

	if v, ok := get("SOFT_BODY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return bad("SOFT_BODY", v, err)
		}
		cfg.SoftBody = b
	}

	if v, ok := get("SEED"); ok {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return bad("SEED", v, err)
		}
		cfg.Grid.Seed = n
	}

	if v, ok := get("ROUND"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return bad("ROUND", v, err)
		}
		cfg.Round.Duration = Duration(d)
	}

	if v, ok := get("HAPTIC_RATE"); ok {
		hz, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return bad("HAPTIC_RATE", v, err)
		}
		cfg.Haptic.RateHz = hz
	}

	if v, ok := lookup(EnvPrefix + "SPECTATOR_ADDR"); ok {
		cfg.Spectator.Addr = v
	}

	if v, ok := get("AUDIO_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return bad("AUDIO_ENABLED", v, err)
		}
		cfg.Audio.Enabled = b
	}

	// Volume 0-100 converted to 0.0-1.0
	if v, ok := get("AUDIO_VOLUME"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return bad("AUDIO_VOLUME", v, err)
		}
		cfg.Audio.Volume = math.Max(0, math.Min(1, float64(n)/100.0))
	}

	return nil
}

// Validate checks every section
func (c Config) Validate() error {
	wrap := func(section string, err error) error {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, section, err)
	}

	if !(c.Haptic.RateHz > 0) || math.IsInf(c.Haptic.RateHz, 0) {
		return fmt.Errorf("%w: haptic rate %v", ErrInvalid, c.Haptic.RateHz)
	}
	if !(c.Haptic.MaxForce > 0) {
		return fmt.Errorf("%w: max force %v", ErrInvalid, c.Haptic.MaxForce)
	}
	if !(c.Haptic.ProbeRadius > 0) {
		return fmt.Errorf("%w: probe radius %v", ErrInvalid, c.Haptic.ProbeRadius)
	}
	if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalid, c.Grid.Rows, c.Grid.Cols)
	}
	if !(c.Grid.Spacing > 0) {
		return fmt.Errorf("%w: grid spacing %v", ErrInvalid, c.Grid.Spacing)
	}
	if err := c.Target.Validate(); err != nil {
		return wrap("target", err)
	}
	if err := c.Rules.Validate(); err != nil {
		return wrap("scoring", err)
	}
	if c.Vibration.Ticks < 0 || c.Vibration.Frequency < 0 || c.Vibration.Amplitude < 0 {
		return fmt.Errorf("%w: vibration %+v", ErrInvalid, c.Vibration)
	}
	if c.Swing.Duration <= 0 || !(c.Swing.Depth > 0) {
		return fmt.Errorf("%w: swing duration %s depth %v", ErrInvalid, c.Swing.Duration.Std(), c.Swing.Depth)
	}
	if c.Round.Duration < 0 {
		return fmt.Errorf("%w: round duration %s", ErrInvalid, c.Round.Duration.Std())
	}
	if err := c.Audio.Validate(); err != nil {
		return wrap("audio", err)
	}
	if c.Spectator.Addr != "" && c.Spectator.Interval <= 0 {
		return fmt.Errorf("%w: spectator interval %s", ErrInvalid, c.Spectator.Interval.Std())
	}
	return nil
}

// HapticInterval is the loop period derived from RateHz
func (c Config) HapticInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.Haptic.RateHz)
}
