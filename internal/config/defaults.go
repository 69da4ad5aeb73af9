package config

import (
	_ "embed"
)

//go:embed defaults/pacman.yaml
var defaultPacmanYAML []byte

// DefaultPacmanConfig returns the default maze game configuration.
func DefaultPacmanConfig() PacmanConfig {
	return PacmanConfig{
		Movement: MovementConfig{
			PlayerSpeed:          0.125,
			GhostSpeed:           0.09375,
			FrightenedMultiplier: 0.5,
			ReturningMultiplier:  1.5,
		},
		Scoring: ScoringConfig{
			Dot:    10,
			Pellet: 50,
			Ghost:  200,
		},
		Gameplay: GameplayConfig{
			Lives:           3,
			CollisionLeeway: 0.7,
			AmbushOffset:    4,
			HybridThreshold: 8,
		},
		Timing: TimingConfig{
			PowerDurationMs: 8000,
			PowerStepMs:     100,
			PowerWarningMs:  2000,
			RespawnDelayMs:  1500,
			ChompIntervalMs: 100,
			MouthIntervalMs: 200,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 8,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultPacmanYAML
}
