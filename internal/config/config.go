// Package config provides YAML-based game configuration loading and
// difficulty management for the maze game.
package config

// PacmanConfig contains all tunable parameters of the maze game.
type PacmanConfig struct {
	Movement   MovementConfig   `yaml:"movement"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MovementConfig defines per-tick displacement in cells.
type MovementConfig struct {
	PlayerSpeed          float64 `yaml:"player_speed"`
	GhostSpeed           float64 `yaml:"ghost_speed"`
	FrightenedMultiplier float64 `yaml:"frightened_multiplier"` // < 1.0
	ReturningMultiplier  float64 `yaml:"returning_multiplier"`  // 1.5 in the classic rules
}

// ScoringConfig defines points awarded per consumption.
type ScoringConfig struct {
	Dot    int `yaml:"dot"`
	Pellet int `yaml:"pellet"`
	Ghost  int `yaml:"ghost"`
}

// GameplayConfig defines rules that are not about timing or speed.
type GameplayConfig struct {
	Lives           int     `yaml:"lives"`
	CollisionLeeway float64 `yaml:"collision_leeway"` // Per-axis distance in cells
	AmbushOffset    int     `yaml:"ambush_offset"`    // Cells ahead of the player
	HybridThreshold float64 `yaml:"hybrid_threshold"` // Distance at which the hybrid ghost gives up chasing
}

// TimingConfig defines wall-clock durations in milliseconds.
type TimingConfig struct {
	PowerDurationMs int `yaml:"power_duration_ms"`
	PowerStepMs     int `yaml:"power_step_ms"`
	PowerWarningMs  int `yaml:"power_warning_ms"`
	RespawnDelayMs  int `yaml:"respawn_delay_ms"`
	ChompIntervalMs int `yaml:"chomp_interval_ms"`
	MouthIntervalMs int `yaml:"mouth_interval_ms"`
}

// DifficultyConfig defines how ghosts speed up as levels are cleared.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to ghost speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset validates a preset name. An empty name means no preset.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
