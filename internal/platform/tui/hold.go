package tui

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// HoldTracker turns a stream of key presses into held actions.
// Terminals only send presses (plus auto-repeat), so an action counts as
// held until no event for it has arrived within its hold window.
// Pause and restart are one-shot: they appear in exactly one frame.
type HoldTracker struct {
	hold     time.Duration
	jumpHold time.Duration
	lastSeen map[core.Action]time.Time
	pending  []core.Action
}

// NewHoldTracker creates a tracker with the given hold windows.
func NewHoldTracker(hold, jumpHold time.Duration) *HoldTracker {
	return &HoldTracker{
		hold:     hold,
		jumpHold: jumpHold,
		lastSeen: make(map[core.Action]time.Time),
	}
}

// isHeld reports whether a records a held state rather than a one-shot.
func isHeld(a core.Action) bool {
	switch a {
	case core.ActionMoveLeft, core.ActionMoveRight, core.ActionJump:
		return true
	default:
		return false
	}
}

// Press records a key event for a at the given time.
func (h *HoldTracker) Press(a core.Action, at time.Time) {
	if a == core.ActionNone {
		return
	}
	if !isHeld(a) {
		h.pending = append(h.pending, a)
		return
	}

	// Pressing one direction releases the other
	switch a {
	case core.ActionMoveLeft:
		delete(h.lastSeen, core.ActionMoveRight)
	case core.ActionMoveRight:
		delete(h.lastSeen, core.ActionMoveLeft)
	}
	h.lastSeen[a] = at
}

// Frame samples the actions held at the given time and drains one-shots.
func (h *HoldTracker) Frame(at time.Time) core.InputFrame {
	frame := core.NewInputFrame()

	for a, seen := range h.lastSeen {
		window := h.hold
		if a == core.ActionJump {
			window = h.jumpHold
		}
		if at.Sub(seen) <= window {
			frame.Set(a)
		} else {
			delete(h.lastSeen, a)
		}
	}

	for _, a := range h.pending {
		frame.Set(a)
	}
	h.pending = h.pending[:0]

	return frame
}

// ReleaseAll forgets every held action and pending one-shot.
func (h *HoldTracker) ReleaseAll() {
	clear(h.lastSeen)
	h.pending = h.pending[:0]
}
