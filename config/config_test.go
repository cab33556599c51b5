package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.HapticInterval(); got != time.Millisecond {
		t.Errorf("interval = %v, want 1ms", got)
	}
	if cfg.Target.PFall != 0 {
		t.Errorf("p_fall default = %v, want 0", cfg.Target.PFall)
	}
}

func TestLoadFrom_TOMLOverlay(t *testing.T) {
	path := writeFile(t, "h.toml", `
debug = true

[grid]
rows = 2
cols = 4
seed = 42

[scoring]
strike_speed = 2.0

[swing]
duration = "250ms"

[round]
duration = "30s"
`)
	cfg, err := LoadFrom(path, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug || cfg.Grid.Rows != 2 || cfg.Grid.Cols != 4 || cfg.Grid.Seed != 42 {
		t.Errorf("overlay not applied: %+v", cfg.Grid)
	}
	if cfg.Rules.StrikeSpeed != 2.0 {
		t.Errorf("strike speed = %v", cfg.Rules.StrikeSpeed)
	}
	if cfg.Swing.Duration.Std() != 250*time.Millisecond {
		t.Errorf("swing duration = %v", cfg.Swing.Duration.Std())
	}
	if cfg.Round.Duration.Std() != 30*time.Second {
		t.Errorf("round = %v", cfg.Round.Duration.Std())
	}
	// untouched keys keep defaults
	if cfg.Rules.LiftSpeed != Default().Rules.LiftSpeed {
		t.Errorf("lift speed lost default: %v", cfg.Rules.LiftSpeed)
	}
}

func TestLoadFrom_UnknownKeyRejected(t *testing.T) {
	path := writeFile(t, "h.toml", "[grid]\nrowz = 3\n")
	if _, err := LoadFrom(path, "", nil); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"), "", nil); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, c Config)
	}{
		{"debug", map[string]string{"HAMSTERCIDE_DEBUG": "true"}, func(t *testing.T, c Config) {
			if !c.Debug {
				t.Error("debug not set")
			}
		}},
		{"seed", map[string]string{"HAMSTERCIDE_SEED": "7"}, func(t *testing.T, c Config) {
			if c.Grid.Seed != 7 {
				t.Errorf("seed = %d", c.Grid.Seed)
			}
		}},
		{"round", map[string]string{"HAMSTERCIDE_ROUND": "90s"}, func(t *testing.T, c Config) {
			if c.Round.Duration.Std() != 90*time.Second {
				t.Errorf("round = %v", c.Round.Duration.Std())
			}
		}},
		{"volume clamps", map[string]string{"HAMSTERCIDE_AUDIO_VOLUME": "150"}, func(t *testing.T, c Config) {
			if c.Audio.Volume != 1 {
				t.Errorf("volume = %v", c.Audio.Volume)
			}
		}},
		{"volume percent", map[string]string{"HAMSTERCIDE_AUDIO_VOLUME": "25"}, func(t *testing.T, c Config) {
			if c.Audio.Volume != 0.25 {
				t.Errorf("volume = %v", c.Audio.Volume)
			}
		}},
		{"spectator", map[string]string{"HAMSTERCIDE_SPECTATOR_ADDR": ":9000"}, func(t *testing.T, c Config) {
			if c.Spectator.Addr != ":9000" {
				t.Errorf("addr = %q", c.Spectator.Addr)
			}
		}},
		{"empty ignored", map[string]string{"HAMSTERCIDE_HAPTIC_RATE": ""}, func(t *testing.T, c Config) {
			if c.Haptic.RateHz != Default().Haptic.RateHz {
				t.Errorf("rate = %v", c.Haptic.RateHz)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := applyEnv(&cfg, mapLookup(tt.env)); err != nil {
				t.Fatal(err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestApplyEnv_Malformed(t *testing.T) {
	for _, key := range []string{"DEBUG", "SEED", "ROUND", "HAPTIC_RATE", "AUDIO_VOLUME", "SOFT_BODY"} {
		cfg := Default()
		err := applyEnv(&cfg, mapLookup(map[string]string{EnvPrefix + key: "bogus"}))
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", key, err)
		}
	}
}

func TestLoadFrom_DotEnvFallback(t *testing.T) {
	envFile := writeFile(t, ".env", "HAMSTERCIDE_SEED=11\nHAMSTERCIDE_HEADLESS=true\n")

	cfg, err := LoadFrom("", envFile, mapLookup(map[string]string{"HAMSTERCIDE_SEED": "5"}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Grid.Seed != 5 {
		t.Errorf("process env should win: seed = %d", cfg.Grid.Seed)
	}
	if !cfg.Headless {
		t.Error(".env value not applied")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero rate", func(c *Config) { c.Haptic.RateHz = 0 }},
		{"negative force cap", func(c *Config) { c.Haptic.MaxForce = -1 }},
		{"empty grid", func(c *Config) { c.Grid.Rows = 0 }},
		{"inverted z", func(c *Config) { c.Target.ZMin, c.Target.ZMax = 0.1, -0.1 }},
		{"probability", func(c *Config) { c.Target.PRise = 1.5 }},
		{"stun not above fall", func(c *Config) { c.Target.StunStep = c.Target.FallStep }},
		{"swing depth", func(c *Config) { c.Swing.Depth = 0 }},
		{"round negative", func(c *Config) { c.Round.Duration = -1 }},
		{"audio volume", func(c *Config) { c.Audio.Volume = 2 }},
		{"spectator interval", func(c *Config) { c.Spectator.Addr = ":1"; c.Spectator.Interval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestEncode_Decodes(t *testing.T) {
	cfg := Default()
	cfg.Grid.Seed = 99
	data, err := Encode(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got := Default()
	if err := Decode(data, &got); err != nil {
		t.Fatalf("decode encoded config: %v\n%s", err, data)
	}
	if got.Grid.Seed != 99 || got.Swing.Duration != cfg.Swing.Duration {
		t.Errorf("round trip mismatch: %+v", got.Grid)
	}
}
