package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(GetDefaultYAML())
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultPacmanConfig() {
		t.Errorf("embedded YAML and DefaultPacmanConfig disagree:\n%+v\n%+v", cfg, DefaultPacmanConfig())
	}
}

func TestLoadPacmanCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := "gameplay:\n  lives: 7\nscoring:\n  ghost: 400\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadPacman(path)
	if err != nil {
		t.Fatalf("LoadPacman() failed: %v", err)
	}
	if cfg.Gameplay.Lives != 7 {
		t.Errorf("Lives = %d, expected 7", cfg.Gameplay.Lives)
	}
	if cfg.Scoring.Ghost != 400 {
		t.Errorf("Ghost points = %d, expected 400", cfg.Scoring.Ghost)
	}
	// Keys absent from the file keep their defaults
	if cfg.Scoring.Dot != 10 {
		t.Errorf("Dot points = %d, expected default 10", cfg.Scoring.Dot)
	}
}

func TestLoadPacmanCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPacman(filepath.Join(dir, "nope.yaml"))
		if err == nil || !strings.Contains(err.Error(), "failed to read config") {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte("movement: [1, 2"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := LoadPacman(path)
		if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
			t.Errorf("expected parse error, got %v", err)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "values.yaml")
		data := "movement:\n  player_speed: 2\n  frightened_multiplier: 1.5\n"
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := LoadPacman(path)
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "player_speed") || !strings.Contains(err.Error(), "frightened_multiplier") {
			t.Errorf("validation error should name both bad keys, got %v", err)
		}
	})
}

func TestValidateFastestGhost(t *testing.T) {
	tests := []struct {
		name       string
		ghost      float64
		multiplier float64
		returning  float64
		wantErr    bool
	}{
		{"defaults", 0.09375, 0.5, 1.5, false},
		{"each bound fine but product too fast", 0.5, 1, 1.5, true},
		{"exactly one cell per tick", 0.25, 1, 2, true},
		{"negative scaling", 0.09375, -0.5, 1.5, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPacmanConfig()
			cfg.Movement.GhostSpeed = tc.ghost
			cfg.Difficulty.Scaling.SpeedMultiplier = tc.multiplier
			cfg.Movement.ReturningMultiplier = tc.returning
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestApplyPacmanPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantLives   int
		wantEnabled bool
		wantInitial float64
	}{
		{DifficultyEasy, 5, true, 0.0},
		{DifficultyNormal, 3, true, 0.3},
		{DifficultyHard, 2, true, 0.7},
		{DifficultyFixed, 3, false, 0.0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPacmanConfig()
			ApplyPacmanPreset(&cfg, tc.preset)
			if cfg.Gameplay.Lives != tc.wantLives {
				t.Errorf("Lives = %d, expected %d", cfg.Gameplay.Lives, tc.wantLives)
			}
			if cfg.Difficulty.Enabled != tc.wantEnabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.wantEnabled)
			}
			if cfg.Difficulty.InitialLevel != tc.wantInitial {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.wantInitial)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, ok := ParsePreset(name); !ok {
			t.Errorf("ParsePreset(%q) should be valid", name)
		}
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("ParsePreset(nightmare) should be rejected")
	}
}
