package core

// Game is the interface hosts drive once per frame.
// Implementations contain pure logic with no Bubble Tea dependency;
// the platform handles input mapping, timing, and display.
type Game interface {
	// ID returns a stable identifier used for leaderboard rows.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when the host wants a fresh game.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one frame.
	Step(in InputFrame) StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *Screen)

	// State returns the current game state.
	State() GameState
}
