package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadPacman loads the maze game configuration.
// Search order: customPath -> ~/.mazechase/configs/pacman.yaml -> ./configs/pacman.yaml -> embedded default
func LoadPacman(customPath string) (PacmanConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PacmanConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return PacmanConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("pacman.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/pacman.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultPacmanYAML)
	if err != nil {
		return DefaultPacmanConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the hardcoded defaults, so a partial file
// only overrides the keys it names, then validates the result.
func parse(data []byte) (PacmanConfig, error) {
	cfg := DefaultPacmanConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PacmanConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return PacmanConfig{}, err
	}
	return cfg, nil
}

// Validate checks that every parameter is usable by the engine.
func (c PacmanConfig) Validate() error {
	var errs []error
	if c.Movement.PlayerSpeed <= 0 || c.Movement.PlayerSpeed >= 1 {
		errs = append(errs, fmt.Errorf("movement.player_speed must be in (0, 1), got %v", c.Movement.PlayerSpeed))
	}
	if c.Movement.GhostSpeed <= 0 || c.Movement.GhostSpeed >= 1 {
		errs = append(errs, fmt.Errorf("movement.ghost_speed must be in (0, 1), got %v", c.Movement.GhostSpeed))
	}
	if c.Movement.FrightenedMultiplier <= 0 || c.Movement.FrightenedMultiplier >= 1 {
		errs = append(errs, fmt.Errorf("movement.frightened_multiplier must be in (0, 1), got %v", c.Movement.FrightenedMultiplier))
	}
	if c.Movement.ReturningMultiplier < 1 {
		errs = append(errs, fmt.Errorf("movement.returning_multiplier must be >= 1, got %v", c.Movement.ReturningMultiplier))
	}
	if c.Difficulty.Scaling.SpeedMultiplier < 0 {
		errs = append(errs, fmt.Errorf("difficulty.scaling.speed_multiplier must not be negative, got %v", c.Difficulty.Scaling.SpeedMultiplier))
	}
	// A ghost moving a whole cell per tick skips the wall check.
	if top := c.MaxGhostSpeed(); top >= 1 {
		errs = append(errs, fmt.Errorf("fastest ghost speed (ghost_speed x (1 + speed_multiplier) x returning_multiplier) must be below 1, got %v", top))
	}
	if c.Gameplay.Lives < 1 {
		errs = append(errs, fmt.Errorf("gameplay.lives must be positive, got %d", c.Gameplay.Lives))
	}
	if c.Gameplay.CollisionLeeway <= 0 || c.Gameplay.CollisionLeeway > 1 {
		errs = append(errs, fmt.Errorf("gameplay.collision_leeway must be in (0, 1], got %v", c.Gameplay.CollisionLeeway))
	}
	if c.Scoring.Dot < 0 || c.Scoring.Pellet < 0 || c.Scoring.Ghost < 0 {
		errs = append(errs, errors.New("scoring values must not be negative"))
	}
	t := c.Timing
	if t.PowerDurationMs <= 0 || t.PowerStepMs <= 0 || t.RespawnDelayMs < 0 ||
		t.ChompIntervalMs < 0 || t.MouthIntervalMs <= 0 || t.PowerWarningMs < 0 {
		errs = append(errs, errors.New("timing durations must be positive"))
	}
	return errors.Join(errs...)
}

// MaxGhostSpeed is the fastest per-tick ghost step the config allows: a
// returning ghost at full difficulty.
func (c PacmanConfig) MaxGhostSpeed() float64 {
	return c.Movement.GhostSpeed * (1 + c.Difficulty.Scaling.SpeedMultiplier) * c.Movement.ReturningMultiplier
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mazechase", "configs", filename)
}

// ApplyPacmanPreset modifies the config based on a difficulty preset.
func ApplyPacmanPreset(cfg *PacmanConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Timing.PowerDurationMs = 10000
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Timing.PowerDurationMs = 6000
	}
}
