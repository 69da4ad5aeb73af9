package tui

import (
	"io"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mazechase/internal/core"
	"github.com/vovakirdan/mazechase/internal/storage"
)

const statusDuration = 2 * time.Second

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithPlayer sets the name recorded on the leaderboard.
func WithPlayer(name string) ModelOption {
	return func(m *Model) { m.player = name }
}

// WithLogger routes host messages to logger.
func WithLogger(logger *log.Logger) ModelOption {
	return func(m *Model) { m.logger = logger }
}

// WithPalette renders with a palette other than the process default.
func WithPalette(p *Palette) ModelOption {
	return func(m *Model) { m.palette = p }
}

// WithClipboard enables ctrl+y frame copies to the system clipboard.
// Only local terminals should enable it.
func WithClipboard() ModelOption {
	return func(m *Model) { m.clipboard = true }
}

// Model is the Bubble Tea model hosting one game.
type Model struct {
	game        core.Game
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	keys        *KeyMapper
	palette     *Palette
	logger      *log.Logger
	player      string
	clipboard   bool
	inputFrame  core.InputFrame
	gameState   core.GameState
	board       *LeaderboardModel
	status      string
	statusUntil time.Time
	quitting    bool
	scoreSaved  bool // Whether the current finished round has been recorded
}

// NewModel creates a Bubble Tea model for the given game.
func NewModel(game core.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keys:       NewKeyMapper(),
		palette:    defaultPalette,
		logger:     log.New(io.Discard),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.board != nil {
		board, cmd := m.board.Update(msg)
		if board.IsQuitting() {
			m.quitting = true
			return m, tea.Quit
		}
		if board.Closed() {
			m.board = nil
		} else {
			m.board = &board
		}
		return m, cmd
	}

	switch m.keys.MapHostKey(msg) {
	case HostKeyQuit:
		m.quitting = true
		return m, tea.Quit
	case HostKeyCopy:
		if m.clipboard {
			m.copyFrame()
		}
		return m, nil
	case HostKeyLeaderboard:
		if m.gameState.InMenu {
			board := NewLeaderboardModel(m.store, m.game.ID(), m.game.Title(), m.config.ScreenW, m.config.ScreenH)
			m.board = &board
		}
		return m, nil
	}

	m.keys.MapKeyToFrame(msg, &m.inputFrame)
	return m, nil
}

// handleResize only resizes the buffer; the round keeps going.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.board != nil {
		board, _ := m.board.Update(msg)
		m.board = &board
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.recordScore()

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordScore writes a finished round to the leaderboard once.
func (m *Model) recordScore() {
	if !m.gameState.GameOver {
		m.scoreSaved = false
		return
	}
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}

	outcome := storage.OutcomeGameOver
	if m.gameState.Won {
		outcome = storage.OutcomeVictory
	}
	_, err := m.store.SaveScore(storage.ScoreEntry{
		GameID:  m.game.ID(),
		Player:  m.player,
		Score:   m.gameState.Score,
		Level:   m.gameState.Level,
		Outcome: outcome,
	})
	if err != nil {
		m.logger.Warn("could not record score", "player", m.player, "error", err)
		return
	}
	m.logger.Debug("score recorded", "player", m.player, "score", m.gameState.Score, "outcome", outcome)
}

func (m *Model) copyFrame() {
	m.game.Render(m.screen)
	if err := clipboard.WriteAll(m.screen.String()); err != nil {
		m.logger.Warn("clipboard unavailable", "error", err)
		m.flash("Clipboard unavailable")
		return
	}
	m.flash("Frame copied to clipboard")
}

func (m *Model) flash(text string) {
	m.status = text
	m.statusUntil = time.Now().Add(statusDuration)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	m.game.Render(m.screen)
	if m.status != "" && time.Now().Before(m.statusUntil) {
		m.screen.DrawTextColor(1, m.screen.Height()-1, m.status, core.ColorBrightGreen)
	}
	return m.palette.Render(m.screen)
}

// State returns the game state seen on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts a full-screen Bubble Tea program hosting game.
func Run(game core.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
