package engine

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// UpdateCamera centers the camera horizontally on the player, clamped so the
// view never leaves [0, levelWidth]. When the level is narrower than the
// viewport the camera stays at 0. The vertical offset is left unchanged.
func UpdateCamera(cam Camera, p Player, viewportWidth, levelWidth float64) Camera {
	maxX := math.Max(0, levelWidth-viewportWidth)
	cam.X = core.ClampF(p.X-viewportWidth/2, 0, maxX)
	return cam
}
