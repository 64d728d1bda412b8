package render

import "mossvale/internal/atlas"

// HUDRows reserves terminal rows at the bottom for the HUD.
const HUDRows = 3

// Viewport is the texel-space camera for one session's frame.
type Viewport struct {
	CamPX, CamPY int // top-left world texel
	PxW, PxH     int // frame size in texels
}

// NewViewport centers the camera on the player's tile, clamped to map
// edges. Width is in terminal columns, height in terminal rows; each row
// holds two texel rows.
func NewViewport(playerX, playerY, termW, termH, mapW, mapH int) Viewport {
	pxW := termW
	pxH := (termH - HUDRows) * 2
	if pxH < 0 {
		pxH = 0
	}

	camX := playerX*atlas.CellSize + atlas.CellSize/2 - pxW/2
	camY := playerY*atlas.CellSize + atlas.CellSize/2 - pxH/2

	return Viewport{
		CamPX: clampCam(camX, mapW*atlas.CellSize-pxW),
		CamPY: clampCam(camY, mapH*atlas.CellSize-pxH),
		PxW:   pxW,
		PxH:   pxH,
	}
}

// clampCam clamps to [0, hi], preferring 0 when the map is smaller than
// the view.
func clampCam(v, hi int) int {
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}

// TileRange returns the inclusive world-tile rectangle visible in the frame.
func (v Viewport) TileRange() (tx0, ty0, tx1, ty1 int) {
	tx0 = v.CamPX / atlas.CellSize
	ty0 = v.CamPY / atlas.CellSize
	tx1 = (v.CamPX + v.PxW - 1) / atlas.CellSize
	ty1 = (v.CamPY + v.PxH - 1) / atlas.CellSize
	return
}

// TilePx converts a world tile coordinate to the frame texel of its
// top-left corner. May be outside the frame; stamping clips.
func (v Viewport) TilePx(wx, wy int) (int, int) {
	return wx*atlas.CellSize - v.CamPX, wy*atlas.CellSize - v.CamPY
}
