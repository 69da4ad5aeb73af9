package web

import (
	"github.com/vovakirdan/mazechase/internal/games/pacman"
)

// Message types a renderer may send.
const (
	MsgDir   = "dir"
	MsgStart = "start"
	MsgPause = "pause"
	MsgMenu  = "menu"
	MsgNext  = "next"
)

// ClientMessage is one intent from the renderer,
// e.g. {"type":"dir","dir":"up"}.
type ClientMessage struct {
	Type string `json:"type"`
	Dir  string `json:"dir,omitempty"`
}

// Frame is pushed to the renderer after every tick.
type Frame struct {
	Snapshot pacman.Snapshot `json:"snapshot"`
	Events   []pacman.Event  `json:"events"`
}

// apply performs a message against the session and reports whether it
// was understood. Unknown types and bad directions are ignored.
func apply(s *pacman.Session, msg ClientMessage) bool {
	switch msg.Type {
	case MsgDir:
		d, ok := pacman.ParseDirection(msg.Dir)
		if !ok {
			return false
		}
		s.SetDirection(d)
	case MsgStart:
		s.Start()
	case MsgPause:
		s.TogglePause()
	case MsgMenu:
		s.ReturnToMenu()
	case MsgNext:
		s.NextLevel()
	default:
		return false
	}
	return true
}

// frameOf pairs the current snapshot with events not yet delivered.
func frameOf(s *pacman.Session, events []pacman.Event) Frame {
	if events == nil {
		events = []pacman.Event{}
	}
	return Frame{Snapshot: s.Snapshot(), Events: events}
}
