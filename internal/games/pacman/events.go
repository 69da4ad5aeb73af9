package pacman

// EventKind names a discrete signal for audio and status collaborators.
type EventKind string

const (
	EventDotEaten     EventKind = "dot_eaten"
	EventChomp        EventKind = "chomp" // rate-limited consumption cue
	EventPelletEaten  EventKind = "pellet_eaten"
	EventPowerStarted EventKind = "power_started"
	EventPowerEnded   EventKind = "power_ended"
	EventGhostEaten   EventKind = "ghost_eaten"
	EventPlayerCaught EventKind = "player_caught"
	EventRespawned    EventKind = "respawned"
	EventVictory      EventKind = "victory"
	EventGameOver     EventKind = "game_over"
)

// Event is one signal raised during a tick.
type Event struct {
	Kind   EventKind `json:"kind" yaml:"kind"`
	Tick   uint64    `json:"tick" yaml:"tick"`
	Points int       `json:"points,omitempty" yaml:"points,omitempty"`
	Ghost  string    `json:"ghost,omitempty" yaml:"ghost,omitempty"`
}
