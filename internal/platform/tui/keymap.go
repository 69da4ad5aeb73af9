package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mazechase/internal/core"
)

// HostKey is a key the host handles itself instead of passing to the game.
type HostKey int

const (
	HostKeyNone HostKey = iota
	HostKeyQuit
	HostKeyCopy
	HostKeyLeaderboard
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	actions map[string]core.Action
	host    map[string]HostKey
}

// NewKeyMapper creates a key mapper with the default bindings:
// arrows, WASD and hjkl steer.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		actions: map[string]core.Action{
			"up": core.ActionUp, "w": core.ActionUp, "k": core.ActionUp,
			"down": core.ActionDown, "s": core.ActionDown, "j": core.ActionDown,
			"left": core.ActionLeft, "a": core.ActionLeft, "h": core.ActionLeft,
			"right": core.ActionRight, "d": core.ActionRight, "l": core.ActionRight,
			"enter": core.ActionConfirm, " ": core.ActionConfirm,
			"esc": core.ActionBack, "b": core.ActionBack,
			"p": core.ActionPause,
			"r": core.ActionRestart,
			"n": core.ActionNext,
		},
		host: map[string]HostKey{
			"q":      HostKeyQuit,
			"ctrl+c": HostKeyQuit,
			"ctrl+y": HostKeyCopy,
			"tab":    HostKeyLeaderboard,
		},
	}
}

// MapKey translates a key message to a game action.
// Returns ActionNone for keys the game does not use.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Action {
	if a, ok := km.actions[msg.String()]; ok {
		return a
	}
	return core.ActionNone
}

// MapHostKey reports whether a key belongs to the host.
func (km *KeyMapper) MapHostKey(msg tea.KeyMsg) HostKey {
	return km.host[msg.String()]
}

// MapKeyToFrame adds the key's action to an input frame.
// Returns false when the key maps to nothing.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action := km.MapKey(msg)
	if action == core.ActionNone {
		return false
	}
	frame.Set(action)
	return true
}
