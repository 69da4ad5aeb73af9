package pacman

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/mazechase/internal/config"
)

// Phase is the session lifecycle position.
type Phase string

const (
	PhaseMenu     Phase = "menu"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "gameover"
	PhaseVictory  Phase = "victory"
)

// Session owns the complete mutable state of one game and is advanced by
// calling Tick once per frame. It is not safe for concurrent use.
type Session struct {
	cfg        config.PacmanConfig
	layout     Layout
	clock      Clock
	rng        *rand.Rand
	logger     *log.Logger
	sched      *Scheduler
	power      *PowerTimer
	chomp      *rate.Limiter
	difficulty *config.DifficultyManager
	scale      movementScale

	phase Phase
	score int
	lives int
	level int
	tick  uint64

	maze       *Maze
	grid       []string
	dots       []Collectible
	pellets    []Collectible
	player     Player
	ghosts     []Ghost
	ghostSpeed float64

	respawning bool
	paused     bool

	events []Event
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source used by the deferred timers.
func WithClock(c Clock) Option {
	return func(s *Session) { s.clock = c }
}

// WithRand sets the random source for ghost wandering.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithSeed seeds a new random source for ghost wandering.
func WithSeed(seed int64) Option {
	return func(s *Session) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithLogger sets the lifecycle logger. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithLayout replaces the built-in maze.
func WithLayout(l Layout) Option {
	return func(s *Session) { s.layout = l }
}

// NewSession validates the configuration and layout and returns a session
// in the Menu phase.
func NewSession(cfg config.PacmanConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pacman: invalid config: %w", err)
	}

	s := &Session{
		cfg:    cfg,
		layout: ClassicLayout(),
		clock:  SystemClock{},
		phase:  PhaseMenu,
		lives:  cfg.Gameplay.Lives,
		level:  1,
		scale: movementScale{
			frightened: cfg.Movement.FrightenedMultiplier,
			returning:  cfg.Movement.ReturningMultiplier,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	maze, _, _, err := ParseMaze(s.layout.Rows)
	if err != nil {
		return nil, err
	}
	if err := s.layout.validate(maze); err != nil {
		return nil, err
	}

	t := cfg.Timing
	s.sched = NewScheduler()
	s.power = NewPowerTimer(s.sched, millis(t.PowerDurationMs), millis(t.PowerStepMs), millis(t.PowerWarningMs), s.deactivatePowerMode)
	s.chomp = rate.NewLimiter(rate.Every(millis(t.ChompIntervalMs)), 1)
	s.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	s.build()
	return s, nil
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// build recreates the maze, collectibles and entities from the layout.
func (s *Session) build() {
	maze, dots, pellets, err := ParseMaze(s.layout.Rows)
	if err != nil {
		panic(fmt.Sprintf("pacman: layout changed after validation: %v", err))
	}
	s.maze = maze
	s.grid = maze.Grid()
	s.dots = dots
	s.pellets = pellets
	s.player = newPlayer(s.layout.Player)
	s.ghosts = make([]Ghost, len(s.layout.Ghosts))
	for i, gs := range s.layout.Ghosts {
		s.ghosts[i] = newGhost(gs)
	}
	s.ghostSpeed = s.difficulty.Speed(s.cfg.Movement.GhostSpeed, s.level)
}

// Start begins a fresh game from any phase.
func (s *Session) Start() {
	s.score = 0
	s.lives = s.cfg.Gameplay.Lives
	s.level = 1
	s.tick = 0
	s.initialize()
	s.logger.Debug("session started", "lives", s.lives, "dots", len(s.dots), "pellets", len(s.pellets))
}

// initialize rebuilds the board for the current level and enters Playing.
func (s *Session) initialize() {
	s.sched.Reset()
	s.power.Stop()
	s.build()
	s.respawning = false
	s.paused = false
	s.phase = PhasePlaying
	s.sched.After(s.clock.Now(), millis(s.cfg.Timing.MouthIntervalMs), s.toggleMouth)
}

// Reset returns to the menu with a new random seed and a zeroed score.
func (s *Session) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.ReturnToMenu()
	s.score = 0
	s.lives = s.cfg.Gameplay.Lives
	s.level = 1
	s.tick = 0
}

// ReturnToMenu cancels every pending timer and enters the Menu phase.
func (s *Session) ReturnToMenu() {
	s.sched.Reset()
	s.power.Stop()
	s.respawning = false
	s.paused = false
	s.phase = PhaseMenu
	s.build()
}

// NextLevel continues after a victory with the next level's ghost speed,
// keeping score and lives. It reports whether the phase allowed it.
func (s *Session) NextLevel() bool {
	if s.phase != PhaseVictory {
		return false
	}
	s.level++
	s.initialize()
	s.logger.Debug("level started", "level", s.level, "ghost_speed", s.ghostSpeed)
	return true
}

// TogglePause freezes or resumes a game in progress and returns the new
// paused state. Pending timers are shifted by the paused span.
func (s *Session) TogglePause() bool {
	if s.phase != PhasePlaying {
		return false
	}
	now := s.clock.Now()
	if s.paused {
		s.sched.Resume(now)
	} else {
		s.sched.Pause(now)
	}
	s.paused = !s.paused
	return s.paused
}

// SetDirection applies a directional intent to the player. Values other
// than the four directions are ignored.
func (s *Session) SetDirection(d Direction) {
	if s.phase != PhasePlaying || s.respawning || s.paused {
		return
	}
	s.player.steer(s.maze, d)
}

// Tick advances one frame: due timers, the intent, player then ghost
// movement, collisions and the victory check.
func (s *Session) Tick(intent Direction) {
	if s.phase != PhasePlaying || s.paused {
		return
	}
	s.tick++
	now := s.clock.Now()
	s.sched.RunDue(now)
	if s.phase != PhasePlaying || s.respawning {
		return
	}

	s.SetDirection(intent)
	s.player.advance(s.maze, s.cfg.Movement.PlayerSpeed)
	s.moveGhosts()
	s.resolveCollisions(now)
	s.checkVictory()
}

func (s *Session) moveGhosts() {
	p := pursuit{
		player:       s.player,
		ambushOffset: s.cfg.Gameplay.AmbushOffset,
		hybridRange:  s.cfg.Gameplay.HybridThreshold,
	}
	for i := range s.ghosts {
		g := &s.ghosts[i]
		g.Dir = decide(s.maze, *g, p, s.rng)
		if next, ok := TryMove(s.maze, g.Pos, g.Dir, g.speed(s.ghostSpeed, s.scale)); ok {
			g.Pos = next
		}
		if g.Returning && g.atHome() {
			g.Returning = false
			// Still inside power mode: rejoin the frightened pack.
			g.Frightened = s.power.Active()
			s.logger.Debug("ghost home", "ghost", g.Name, "tick", s.tick)
		}
	}
}

// resolveCollisions checks dots, then pellets, then ghosts.
func (s *Session) resolveCollisions(now time.Time) {
	col, row := s.player.Pos.Cell()
	sc := s.cfg.Scoring

	if consumeAt(s.dots, col, row) {
		s.score += sc.Dot
		s.emit(Event{Kind: EventDotEaten, Points: sc.Dot})
		if s.chomp.AllowN(now, 1) {
			s.emit(Event{Kind: EventChomp})
		}
	}

	if consumeAt(s.pellets, col, row) {
		s.score += sc.Pellet
		s.emit(Event{Kind: EventPelletEaten, Points: sc.Pellet})
		s.activatePowerMode(now)
	}

	for i := range s.ghosts {
		g := &s.ghosts[i]
		if !overlaps(s.player.Pos, g.Pos, s.cfg.Gameplay.CollisionLeeway) {
			continue
		}
		switch {
		case g.Frightened:
			g.captured()
			s.score += sc.Ghost
			s.emit(Event{Kind: EventGhostEaten, Points: sc.Ghost, Ghost: g.Name})
			s.logger.Debug("ghost eaten", "ghost", g.Name, "tick", s.tick)
		case !g.Returning:
			s.loseLife(now, g.Name)
			return
		}
	}
}

func (s *Session) checkVictory() {
	if s.phase != PhasePlaying {
		return
	}
	if allEaten(s.dots, s.pellets) {
		s.finish(PhaseVictory, EventVictory)
	}
}

// loseLife takes a life and either ends the game or schedules the
// delayed reset. Entities stay frozen until the reset fires.
func (s *Session) loseLife(now time.Time, by string) {
	s.lives--
	s.emit(Event{Kind: EventPlayerCaught, Ghost: by})
	s.logger.Debug("player caught", "ghost", by, "lives", s.lives, "tick", s.tick)
	if s.lives <= 0 {
		s.lives = 0
		s.finish(PhaseGameOver, EventGameOver)
		return
	}
	s.respawning = true
	s.player.Queued = DirNone
	s.sched.After(now, millis(s.cfg.Timing.RespawnDelayMs), s.respawn)
}

// respawn puts the player and every ghost back on their spawns.
func (s *Session) respawn(time.Time) {
	if s.phase != PhasePlaying || s.lives <= 0 {
		return
	}
	s.deactivatePowerMode()
	mouth := s.player.MouthOpen
	s.player = newPlayer(s.layout.Player)
	s.player.MouthOpen = mouth
	for i := range s.ghosts {
		s.ghosts[i].sendHome()
	}
	s.respawning = false
	s.emit(Event{Kind: EventRespawned})
	s.logger.Debug("respawned", "lives", s.lives, "tick", s.tick)
}

// finish ends the session in a terminal phase.
func (s *Session) finish(phase Phase, kind EventKind) {
	s.deactivatePowerMode()
	s.sched.Reset()
	s.respawning = false
	s.paused = false
	s.phase = phase
	s.emit(Event{Kind: kind, Points: s.score})
	s.logger.Debug("session finished", "phase", phase, "score", s.score, "level", s.level, "tick", s.tick)
}

func (s *Session) activatePowerMode(now time.Time) {
	s.power.Start(now)
	for i := range s.ghosts {
		if !s.ghosts[i].Returning {
			s.ghosts[i].Frightened = true
		}
	}
	s.player.Powered = true
	s.emit(Event{Kind: EventPowerStarted})
	s.logger.Debug("power mode on", "tick", s.tick, "duration", s.power.Remaining())
}

// deactivatePowerMode ends power mode whether it timed out or not.
// Returning ghosts are left alone.
func (s *Session) deactivatePowerMode() {
	wasActive := s.player.Powered || s.power.Active()
	s.power.Stop()
	for i := range s.ghosts {
		s.ghosts[i].Frightened = false
	}
	s.player.Powered = false
	if wasActive {
		s.emit(Event{Kind: EventPowerEnded})
		s.logger.Debug("power mode off", "tick", s.tick)
	}
}

func (s *Session) toggleMouth(at time.Time) {
	s.player.MouthOpen = !s.player.MouthOpen
	s.sched.After(at, millis(s.cfg.Timing.MouthIntervalMs), s.toggleMouth)
}

func (s *Session) emit(e Event) {
	e.Tick = s.tick
	s.events = append(s.events, e)
}

// DrainEvents returns the signals raised since the last call.
func (s *Session) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	s.events = s.events[:0]
	return out
}

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Level returns the 1-indexed level.
func (s *Session) Level() int { return s.level }

// Paused reports whether the game is paused.
func (s *Session) Paused() bool { return s.paused }

// Layout returns a copy of the source layout the session plays.
func (s *Session) Layout() Layout {
	l := s.layout
	l.Rows = append([]string(nil), s.layout.Rows...)
	l.Ghosts = append([]GhostSpawn(nil), s.layout.Ghosts...)
	return l
}
