package engine

// StepEvents reports what happened to the player during one physics step.
type StepEvents struct {
	Jumped    bool // A jump impulse was applied
	Landed    bool // Player went from airborne to grounded
	Respawned bool // Player fell below the world and was moved to spawn
}

// StepPlayer advances the player by one tick: horizontal control, jump,
// gravity, integration, collision against every platform, left-wall clamp and
// fall respawn.
//
// Collisions are resolved per platform in slice order, one axis per platform,
// vertical before horizontal. Overlapping or adjacent platforms can therefore
// produce order-dependent corrections.
func StepPlayer(p *Player, in *InputState, platforms []Platform, phys Physics, spawnX, spawnY float64) StepEvents {
	var ev StepEvents
	wasGrounded := p.Grounded

	// Horizontal control, allowed in the air
	switch {
	case in.MoveLeft:
		p.VX = -p.Speed
		p.FacingLeft = true
	case in.MoveRight:
		p.VX = p.Speed
		p.FacingLeft = false
	default:
		p.VX *= phys.Friction
	}

	// One jump per press, up to MaxJumps between landings
	if in.consumeJump() && p.JumpsRemaining > 0 {
		p.VY = -p.JumpPower
		p.JumpsRemaining--
		p.Grounded = false
		ev.Jumped = true
	}

	p.VY += phys.Gravity
	p.X += p.VX
	p.Y += p.VY

	p.Grounded = false
	for _, pl := range platforms {
		resolveCollision(p, pl)
	}
	ev.Landed = p.Grounded && !wasGrounded

	// Left wall only; the right side is open
	if p.X < 0 {
		p.X = 0
	}

	if p.Y > phys.FallThreshold {
		p.X = spawnX
		p.Y = spawnY
		p.VX = 0
		p.VY = 0
		p.Grounded = false
		p.JumpsRemaining = p.MaxJumps
		ev.Respawned = true
		ev.Landed = false
	}

	return ev
}

// resolveCollision pushes the player out of a single platform along one axis.
func resolveCollision(p *Player, pl Platform) {
	if !p.Box().Overlaps(pl.AABB) {
		return
	}

	switch {
	case p.VY > 0 && p.Y < pl.Y:
		// Landing on top
		p.Y = pl.Y - p.H
		p.VY = 0
		p.Grounded = true
		p.JumpsRemaining = p.MaxJumps
	case p.VY < 0 && p.Y > pl.Y:
		// Head hits the underside
		p.Y = pl.Bottom()
		p.VY = 0
	case p.VX > 0 && p.X < pl.X:
		p.X = pl.X - p.W
	case p.VX < 0 && p.X > pl.X:
		p.X = pl.Right()
	}
}
