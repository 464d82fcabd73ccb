package platformer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// Visual characters for rendering
const (
	PlatformChar = '▀'
	GroundChar   = '█'
)

// WinMessage is shown once the goal is reached.
const WinMessage = "Happy Birthday!!"

// hudRows is the number of rows above the playfield.
const hudRows = 1

// viewport maps world units to screen cells.
type viewport struct {
	camX         float64
	cellW, cellH float64
}

// cellRect converts a world box to the cells it covers. Any box with a
// positive size covers at least one cell.
func (v viewport) cellRect(b core.AABB) core.Rect {
	x0 := int(math.Floor((b.X - v.camX) / v.cellW))
	y0 := int(math.Floor(b.Y/v.cellH)) + hudRows
	x1 := int(math.Ceil((b.Right() - v.camX) / v.cellW))
	y1 := int(math.Ceil(b.Bottom()/v.cellH)) + hudRows
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}
	snap := g.world.Snapshot()
	RenderSnapshot(dst, snap, viewport{
		camX:  snap.Camera.X,
		cellW: g.cfg.Render.CellWidth,
		cellH: g.cfg.Render.CellHeight,
	}, g.sprites)

	dst.DrawTextColored(2, 0, fmt.Sprintf(" Gifts: %d/%d ", snap.Score, snap.Total), core.ColorBrightYellow)
	title := fmt.Sprintf(" %s ", g.level.Name)
	dst.DrawText(dst.Width()-len([]rune(title))-2, 0, title)

	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if snap.GameWon {
		drawCenteredMessage(dst, WinMessage, fmt.Sprintf("%d gifts in %d ticks  |  R to replay, B for menu", snap.Score, snap.Tick))
	}
}

// RenderSnapshot draws platforms, collectibles, the goal and the player.
// The goal is drawn only while visible.
func RenderSnapshot(dst *core.Screen, snap engine.Snapshot, v viewport, sprites *SpriteSet) {
	if v.cellW <= 0 || v.cellH <= 0 {
		return
	}

	for _, p := range snap.Platforms {
		r := v.cellRect(p)
		fill := PlatformChar
		if r.H > 1 {
			fill = GroundChar
		}
		dst.DrawRectColored(r, fill, core.ColorGreen)
	}

	gift := sprites.Get(string(engine.SpriteGift))
	for _, c := range snap.Collectibles {
		drawSprite(dst, v.cellRect(c), gift)
	}

	if snap.GoalVisible {
		drawSprite(dst, v.cellRect(snap.Goal), sprites.Get(string(engine.SpriteGoal)))
	}

	slot := string(snap.Player.Sprite)
	if snap.Player.FacingLeft {
		slot = slotPlayerLeft
	}
	drawSprite(dst, v.cellRect(snap.Player.Box), sprites.Get(slot))
}

// drawSprite fills r with the sprite, clipping lines that do not fit and
// repeating the last line when the sprite is shorter than r.
func drawSprite(dst *core.Screen, r core.Rect, sp Sprite) {
	if len(sp.Lines) == 0 {
		return
	}
	for dy := 0; dy < r.H; dy++ {
		line := []rune(sp.Lines[core.Min(dy, len(sp.Lines)-1)])
		for dx := 0; dx < r.W && dx < len(line); dx++ {
			if line[dx] == ' ' {
				continue
			}
			dst.SetColored(r.X+dx, r.Y+dy, line[dx], sp.Color)
		}
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len([]rune(title)))/2
	dst.DrawTextColored(titleX, boxY+1, title, core.ColorBrightYellow)

	subtitleX := boxX + (boxW-len([]rune(subtitle)))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
