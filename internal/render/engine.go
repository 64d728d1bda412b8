package render

import (
	"fmt"
	"strings"

	"mossvale/internal/atlas"
	"mossvale/internal/maps"
)

// shadowDepth is how many texel rows an occluding tile darkens on the tile
// south of it.
const shadowDepth = 5

// PlayerInfo is the minimal player data the renderer needs.
type PlayerInfo struct {
	ID    string
	Name  string
	X, Y  int
	Color int // index into PlayerBGColors
	Dir   int // DirDown..DirRight
}

var sentinel = Cell{Ch: '\x00', FgR: 255, BgB: 255, Bold: true}

// Engine is a per-session double-buffer diff renderer. Each frame is
// composed in a texel buffer, converted to half-block cells, and diffed
// against the previous frame so only changed cells reach the wire.
type Engine struct {
	width, height int
	tiles         *TileRenderer
	frame         *Frame
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int, tiles *TileRenderer) *Engine {
	e := &Engine{tiles: tiles}
	e.Resize(width, height)
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = width
	e.height = height
	viewH := height - HUDRows
	if viewH < 0 {
		viewH = 0
	}
	e.frame = NewFrame(width, viewH*2)
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := 0; y < e.height; y++ {
		buf[y] = make([]Cell, e.width)
		for x := 0; x < e.width; x++ {
			buf[y][x] = fill
		}
	}
	return buf
}

// Render produces the ANSI byte output for the current frame.
func (e *Engine) Render(viewerID string, tileMap *maps.Map, players []PlayerInfo, termW, termH int, totalPlayers int) string {
	if termW != e.width || termH != e.height {
		e.Resize(termW, termH)
	}

	var viewerX, viewerY, viewerColor int
	var viewerName string
	for _, p := range players {
		if p.ID == viewerID {
			viewerX = p.X
			viewerY = p.Y
			viewerName = p.Name
			viewerColor = p.Color
			break
		}
	}

	vp := NewViewport(viewerX, viewerY, termW, termH, tileMap.Width, tileMap.Height)
	sampler := MapSampler(tileMap)
	tx0, ty0, tx1, ty1 := vp.TileRange()

	e.frame.Clear(10, 10, 15)

	// Pass 1: ground. Every visible tile gets a base sprite; terrain tiles
	// autotile against their neighborhood.
	for wy := ty0; wy <= ty1; wy++ {
		for wx := tx0; wx <= tx1; wx++ {
			px, py := vp.TilePx(wx, wy)
			e.frame.Stamp(px, py, e.tiles.BaseSprite(tileMap, sampler, wx, wy))
		}
	}

	// Pass 2: drop shadows. A tile whose northern neighbor carries an
	// occluder gets its top texel rows darkened.
	for wy := ty0; wy <= ty1; wy++ {
		for wx := tx0; wx <= tx1; wx++ {
			if e.tiles.OccluderAt(tileMap, sampler, wx, wy-1) == nil {
				continue
			}
			if e.tiles.OccluderAt(tileMap, sampler, wx, wy) != nil {
				continue // no shadow inside a solid run
			}
			px, py := vp.TilePx(wx, wy)
			e.frame.Shade(px, py, atlas.CellSize, shadowDepth, 2, 3)
		}
	}

	// Pass 3: players.
	for _, p := range players {
		px, py := vp.TilePx(p.X, p.Y)
		if px+atlas.CellSize <= 0 || px >= e.frame.W || py+atlas.CellSize <= 0 || py >= e.frame.H {
			continue
		}
		e.frame.Stamp(px, py, PlayerSprite(p.Dir, p.Color))
	}

	// Pass 4: dual-grid overlays, on top of players. Display cells sit half
	// a tile up-left of their sampling tile, so scan one tile past the
	// right and bottom edges for cells straddling the boundary.
	for _, feature := range e.tiles.OverlayFeatures() {
		for wy := ty0; wy <= ty1+1; wy++ {
			for wx := tx0; wx <= tx1+1; wx++ {
				sprite, ok := e.tiles.OverlaySprite(sampler, wx, wy, feature)
				if !ok {
					continue
				}
				px, py := vp.TilePx(wx, wy)
				e.frame.Stamp(px-atlas.CellSize/2, py-atlas.CellSize/2, sprite)
			}
		}
	}

	// Convert texels to half-block cells.
	viewRows := termH - HUDRows
	for y := 0; y < viewRows; y++ {
		for x := 0; x < e.width; x++ {
			e.next[y][x] = e.frame.CellAt(x, y)
		}
	}

	e.drawHUD(viewerName, viewerColor, totalPlayers, tileMap.Name)

	// Diff current vs next, emit only changed cells.
	var sb strings.Builder
	sb.Grow(16384)

	lastRow, lastCol := -1, -1
	for y := 0; y < e.height; y++ {
		for x := 0; x < e.width; x++ {
			nc := e.next[y][x]
			if e.firstFrame || nc != e.current[y][x] {
				if y != lastRow || x != lastCol {
					sb.WriteString(MoveTo(y+1, x+1))
				}
				WriteCellSGR(&sb, nc)
				lastRow = y
				lastCol = x + 1
			}
		}
	}

	if sb.Len() > 0 {
		sb.WriteString(Reset)
	}

	e.current, e.next = e.next, e.current
	e.firstFrame = false

	return sb.String()
}

// --- HUD ---

func (e *Engine) drawHUD(playerName string, playerColor, playerCount int, mapName string) {
	hudY := e.height - HUDRows
	if hudY < 0 {
		return
	}

	bgR, bgG, bgB := uint8(15), uint8(18), uint8(30)

	// Separator with a thin gradient.
	for x := 0; x < e.width; x++ {
		t := uint8(60 - x*40/max(e.width, 1))
		e.next[hudY][x] = Cell{
			Ch: '━', FgR: 40 + t, FgG: 70 + t, FgB: 90 + t,
			BgR: bgR, BgG: bgG, BgB: bgB,
		}
	}
	for row := 1; row < HUDRows; row++ {
		y := hudY + row
		if y >= e.height {
			break
		}
		for x := 0; x < e.width; x++ {
			e.next[y][x] = Cell{Ch: ' ', BgR: bgR, BgG: bgG, BgB: bgB}
		}
	}

	colorIdx := ((playerColor % len(PlayerBGColors)) + len(PlayerBGColors)) % len(PlayerBGColors)
	pR, pG, pB := PlayerBGColors[colorIdx][0], PlayerBGColors[colorIdx][1], PlayerBGColors[colorIdx][2]
	pR += (255 - pR) / 3
	pG += (255 - pG) / 3
	pB += (255 - pB) / 3

	row1 := hudY + 1
	col := e.writeText(row1, 1, playerName, pR, pG, pB, bgR, bgG, bgB, true)
	col = e.writeText(row1, col, "  │  ", 60, 65, 85, bgR, bgG, bgB, false)
	col = e.writeText(row1, col, mapName, 180, 180, 195, bgR, bgG, bgB, false)
	col = e.writeText(row1, col, "  │  ", 60, 65, 85, bgR, bgG, bgB, false)
	e.writeText(row1, col, fmt.Sprintf("%d Online", playerCount), 180, 180, 195, bgR, bgG, bgB, false)

	row2 := hudY + 2
	e.writeText(row2, 1, "←↑↓→/WASD Move  │  Q Quit", 130, 130, 145, bgR, bgG, bgB, false)
}

// writeText writes colored text starting at col. Returns the next column.
func (e *Engine) writeText(row, col int, text string, fgR, fgG, fgB, bgR, bgG, bgB uint8, bold bool) int {
	for _, r := range text {
		if col >= e.width {
			break
		}
		if row >= 0 && row < e.height && col >= 0 {
			e.next[row][col] = Cell{Ch: r, FgR: fgR, FgG: fgG, FgB: fgB, BgR: bgR, BgG: bgG, BgB: bgB, Bold: bold}
		}
		col++
	}
	return col
}
