package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	embedded, err := parseMatch3(defaultMatch3YAML)
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	want, err := yaml.Marshal(DefaultMatch3Config())
	if err != nil {
		t.Fatal(err)
	}
	got, err := yaml.Marshal(embedded)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Errorf("embedded YAML drifted from DefaultMatch3Config:\n%s\nwant:\n%s", got, want)
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := DefaultMatch3Config().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestLoadMatch3CustomPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `
board:
  rows: 6
  cols: 9
scoring:
  multi_group: 2.25
modes:
  blitz: { moves: 5 }
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg.Board.Rows != 6 || cfg.Board.Cols != 9 {
		t.Errorf("board = %+v, want 6x9", cfg.Board)
	}
	if cfg.Board.TileTypes != 7 {
		t.Errorf("tile_types = %d, want default 7", cfg.Board.TileTypes)
	}
	if !cfg.Scoring.MultiGroup.Equal(decimal.RequireFromString("2.25")) {
		t.Errorf("multi_group = %s, want 2.25", cfg.Scoring.MultiGroup)
	}
	if len(cfg.Scoring.Cascade) != 5 {
		t.Errorf("cascade table should keep defaults, got %v", cfg.Scoring.Cascade)
	}
	if cfg.Mode(ModeBlitz).Moves != 5 {
		t.Errorf("blitz moves = %d, want 5", cfg.Mode(ModeBlitz).Moves)
	}
	if cfg.Mode(ModeStandard).Moves != 30 {
		t.Errorf("standard moves = %d, want default 30", cfg.Mode(ModeStandard).Moves)
	}
}

func TestLoadMatch3CustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMatch3(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	broken := filepath.Join(dir, "broken.yaml")
	os.WriteFile(broken, []byte("board: [1, 2"), 0o644)
	if _, err := LoadMatch3(broken); err == nil {
		t.Error("malformed YAML should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	os.WriteFile(invalid, []byte("board: { rows: 0 }"), 0o644)
	_, err := LoadMatch3(invalid)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("zero rows error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadMatch3FallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadMatch3("")
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg.Board.Rows != 8 || cfg.Board.Cols != 8 {
		t.Errorf("board = %+v, want 8x8", cfg.Board)
	}
}

func TestLoadMatch3UserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, AppDir, "configs")
	os.MkdirAll(dir, 0o755)
	os.WriteFile(filepath.Join(dir, "match3.yaml"), []byte("board: { tile_types: 5 }"), 0o644)

	cfg, err := LoadMatch3("")
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg.Board.TileTypes != 5 {
		t.Errorf("tile_types = %d, want 5 from user dir", cfg.Board.TileTypes)
	}
}

func TestValidate(t *testing.T) {
	d := decimal.RequireFromString
	tests := []struct {
		name   string
		mutate func(*Match3Config)
	}{
		{"no types", func(c *Match3Config) { c.Board.TileTypes = 0 }},
		{"one type", func(c *Match3Config) { c.Board.TileTypes = 1 }},
		{"negative per tile", func(c *Match3Config) { c.Scoring.PerTile = -1 }},
		{"empty cascade", func(c *Match3Config) { c.Scoring.Cascade = nil }},
		{"falling cascade", func(c *Match3Config) { c.Scoring.Cascade = []decimal.Decimal{d("2"), d("1")} }},
		{"combo order", func(c *Match3Config) {
			c.Scoring.Combo = []ComboTierConfig{{Min: 3, Multiplier: d("2")}, {Min: 2, Multiplier: d("3")}}
		}},
		{"hype intensity", func(c *Match3Config) { c.Hype.Chain[0].Intensity = 6 }},
		{"hype order", func(c *Match3Config) { c.Hype.Streak[1].Min = 1 }},
		{"milestones", func(c *Match3Config) { c.Milestones = []int{100, 100} }},
		{"negative timing", func(c *Match3Config) { c.Timing.PopMS = -5 }},
		{"negative mode", func(c *Match3Config) { c.Modes[ModeBlitz] = ModeConfig{Moves: -1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestModeUnknownIsUnlimited(t *testing.T) {
	m := DefaultMatch3Config().Mode("zen")
	if m.Moves != 0 || m.TimeLimitSecs != 0 {
		t.Errorf("unknown mode = %+v, want unlimited", m)
	}
}

func TestLoadSettingsPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	os.MkdirAll(filepath.Join(home, AppDir), 0o755)
	os.WriteFile(filepath.Join(home, AppDir, "settings.yaml"), []byte("fps: 30\nseed: 5\nssh:\n  port: 2300\n"), 0o644)
	t.Setenv("BERRYMATCH_SEED", "9")
	t.Setenv("BERRYMATCH_SSH_IDLE_TIMEOUT", "45s")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("fps", 60, "")
	flags.Int64("seed", 0, "")
	flags.String("log-level", "info", "")
	if err := flags.Parse([]string{"--log-level=debug"}); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(NewViper(), flags)
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if s.FPS != 30 {
		t.Errorf("fps = %d, want 30 from file (flag left unset)", s.FPS)
	}
	if s.Seed != 9 {
		t.Errorf("seed = %d, want 9 from env", s.Seed)
	}
	if s.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug from flag", s.LogLevel)
	}
	if s.SSH.Port != 2300 || s.SSH.Host != "0.0.0.0" {
		t.Errorf("ssh = %+v", s.SSH)
	}
	if s.SSH.IdleTimeout != 45*time.Second {
		t.Errorf("idle_timeout = %v, want 45s", s.SSH.IdleTimeout)
	}
	if s.SSH.Address() != "0.0.0.0:2300" {
		t.Errorf("Address() = %q", s.SSH.Address())
	}
}

func TestLoadSettingsRejectsZeroFPS(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("fps", 60, "")
	flags.Parse([]string{"--fps=0"})

	if _, err := LoadSettings(NewViper(), flags); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadSettings() = %v, want ErrInvalidConfig", err)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/etc/key", "/etc/key"},
		{"relative/key", "relative/key"},
		{"~/.berrymatch/ssh_host_key", filepath.Join(home, ".berrymatch", "ssh_host_key")},
	}
	for _, tc := range tests {
		if got := ExpandPath(tc.in); got != tc.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if got := HomePath("scores.db"); got != filepath.Join(home, AppDir, "scores.db") {
		t.Errorf("HomePath() = %q", got)
	}
}
