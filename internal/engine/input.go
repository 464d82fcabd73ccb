package engine

import "github.com/vovakirdan/tui-platformer/internal/core"

// InputState holds the logical actions sampled for the current tick.
// Jump is edge-triggered: jumpLatched records that the current press has
// already been consumed and clears only when the jump action is released.
type InputState struct {
	MoveLeft  bool
	MoveRight bool
	Jump      bool

	jumpLatched bool
}

// Update replaces the held flags with a snapshot of the given frame.
// Several key events between two ticks coalesce into one snapshot.
func (s *InputState) Update(frame core.InputFrame) {
	s.MoveLeft = frame.Has(core.ActionMoveLeft)
	s.MoveRight = frame.Has(core.ActionMoveRight)
	s.SetJump(frame.Has(core.ActionJump))
}

// SetJump sets the held state of the jump action.
func (s *InputState) SetJump(held bool) {
	s.Jump = held
	if !held {
		s.jumpLatched = false
	}
}

// JumpLatched reports whether the current jump press was already consumed.
func (s *InputState) JumpLatched() bool {
	return s.jumpLatched
}

// consumeJump reports a rising edge of the jump action and latches it.
// A press is consumed even when the player has no jumps left.
func (s *InputState) consumeJump() bool {
	if !s.Jump {
		s.jumpLatched = false
		return false
	}
	if s.jumpLatched {
		return false
	}
	s.jumpLatched = true
	return true
}

// Reset releases every action and clears the jump latch.
func (s *InputState) Reset() {
	*s = InputState{}
}
