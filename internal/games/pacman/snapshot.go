package pacman

// Snapshot is a read-only copy of everything a renderer needs for a frame.
// Mutating it does not affect the session.
type Snapshot struct {
	Phase            Phase         `json:"phase" yaml:"phase"`
	Tick             uint64        `json:"tick" yaml:"tick"`
	Score            int           `json:"score" yaml:"score"`
	Lives            int           `json:"lives" yaml:"lives"`
	Level            int           `json:"level" yaml:"level"`
	Rows             int           `json:"rows" yaml:"rows"`
	Cols             int           `json:"cols" yaml:"cols"`
	Cells            []string      `json:"cells" yaml:"cells"` // '#' wall, ' ' open
	Player           Player        `json:"player" yaml:"player"`
	Ghosts           []Ghost       `json:"ghosts" yaml:"ghosts"`
	Dots             []Collectible `json:"dots" yaml:"dots"`
	Pellets          []Collectible `json:"pellets" yaml:"pellets"`
	DotsLeft         int           `json:"dots_left" yaml:"dots_left"`
	PelletsLeft      int           `json:"pellets_left" yaml:"pellets_left"`
	PowerRemainingMs int64         `json:"power_remaining_ms" yaml:"power_remaining_ms"`
	PowerWarning     bool          `json:"power_warning" yaml:"power_warning"`
	Respawning       bool          `json:"respawning" yaml:"respawning"`
	Paused           bool          `json:"paused" yaml:"paused"`
}

// Snapshot returns the current state as a deep copy.
func (s *Session) Snapshot() Snapshot {
	rows, cols := s.maze.Dims()
	return Snapshot{
		Phase:            s.phase,
		Tick:             s.tick,
		Score:            s.score,
		Lives:            s.lives,
		Level:            s.level,
		Rows:             rows,
		Cols:             cols,
		Cells:            append([]string(nil), s.grid...),
		Player:           s.player,
		Ghosts:           append([]Ghost(nil), s.ghosts...),
		Dots:             append([]Collectible(nil), s.dots...),
		Pellets:          append([]Collectible(nil), s.pellets...),
		DotsLeft:         countVisible(s.dots),
		PelletsLeft:      countVisible(s.pellets),
		PowerRemainingMs: s.power.Remaining().Milliseconds(),
		PowerWarning:     s.power.Warning(),
		Respawning:       s.respawning,
		Paused:           s.paused,
	}
}
