package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"mossvale/internal/atlas"
	"mossvale/internal/autotile"
	"mossvale/internal/grid"
	"mossvale/internal/maps"
)

func TestFrameHalfBlockConversion(t *testing.T) {
	f := NewFrame(4, 4)
	f.Set(1, 0, atlas.P(255, 0, 0)) // upper texel of cell (1,0)
	f.Set(1, 1, atlas.P(0, 0, 255)) // lower texel

	c := f.CellAt(1, 0)
	if c.Ch != '▀' {
		t.Fatalf("cell rune = %q, want half block", c.Ch)
	}
	if c.FgR != 255 || c.FgB != 0 {
		t.Errorf("foreground = (%d,%d,%d), want upper texel red", c.FgR, c.FgG, c.FgB)
	}
	if c.BgB != 255 || c.BgR != 0 {
		t.Errorf("background = (%d,%d,%d), want lower texel blue", c.BgR, c.BgG, c.BgB)
	}
}

func TestFrameStampSkipsTransparent(t *testing.T) {
	f := NewFrame(atlas.CellSize, atlas.CellSize)
	f.Clear(9, 9, 9)

	s := atlas.FillSprite(200, 100, 50)
	s[0][0] = atlas.TransparentPixel()
	f.Stamp(0, 0, s)

	if got := f.At(0, 0); got != atlas.P(9, 9, 9) {
		t.Errorf("transparent texel overwrote ground: %+v", got)
	}
	if got := f.At(1, 0); got != atlas.P(200, 100, 50) {
		t.Errorf("opaque texel not stamped: %+v", got)
	}
}

func TestFrameStampClipsAtEdges(t *testing.T) {
	f := NewFrame(8, 8)
	f.Stamp(-12, -12, atlas.FillSprite(1, 2, 3))

	if got := f.At(3, 3); got != atlas.P(1, 2, 3) {
		t.Errorf("in-bounds part of clipped stamp missing: %+v", got)
	}
	if got := f.At(4, 4); got != (atlas.Pixel{}) {
		t.Errorf("stamp wrote past its extent: %+v", got)
	}
}

func TestViewportClamping(t *testing.T) {
	termW, termH := 80, 24
	mapW, mapH := 60, 30

	tests := []struct {
		name   string
		px, py int
		check  func(t *testing.T, vp Viewport)
	}{
		{"player at origin", 0, 0, func(t *testing.T, vp Viewport) {
			if vp.CamPX != 0 || vp.CamPY != 0 {
				t.Errorf("camera = (%d,%d), want origin", vp.CamPX, vp.CamPY)
			}
		}},
		{"player at far corner", 59, 29, func(t *testing.T, vp Viewport) {
			wantX := mapW*atlas.CellSize - termW
			wantY := mapH*atlas.CellSize - (termH-HUDRows)*2
			if vp.CamPX != wantX || vp.CamPY != wantY {
				t.Errorf("camera = (%d,%d), want (%d,%d)", vp.CamPX, vp.CamPY, wantX, wantY)
			}
		}},
		{"centered player", 30, 15, func(t *testing.T, vp Viewport) {
			wantX := 30*atlas.CellSize + atlas.CellSize/2 - termW/2
			if vp.CamPX != wantX {
				t.Errorf("CamPX = %d, want %d", vp.CamPX, wantX)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewViewport(tt.px, tt.py, termW, termH, mapW, mapH))
		})
	}
}

func TestViewportSmallerMapThanView(t *testing.T) {
	vp := NewViewport(2, 2, 200, 60, 5, 5)
	if vp.CamPX != 0 || vp.CamPY != 0 {
		t.Errorf("camera = (%d,%d), want pinned to origin", vp.CamPX, vp.CamPY)
	}
}

// contentDir writes a minimal sprites directory: a water terrain sheet and a
// path dual-grid sheet, with every texel encoding its atlas cell.
func contentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	sheet := func(cellsW, cellsH int) image.Image {
		img := image.NewNRGBA(image.Rect(0, 0, cellsW*atlas.CellSize, cellsH*atlas.CellSize))
		for y := 0; y < cellsH*atlas.CellSize; y++ {
			for x := 0; x < cellsW*atlas.CellSize; x++ {
				img.SetNRGBA(x, y, color.NRGBA{
					R: uint8(x / atlas.CellSize * 16),
					G: uint8(y / atlas.CellSize * 16),
					B: 40,
					A: 255,
				})
			}
		}
		return img
	}
	write := func(rel string, img image.Image) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
	}

	write("terrain/water.png", sheet(autotile.CornerSideSheetW, autotile.CornerSideSheetH))
	write("terrain/rock_solid.png", sheet(autotile.CornerSideSheetW, autotile.CornerSideSheetH))
	write("dualgrid/path.png", sheet(4, 4))
	return dir
}

func testTileRenderer(t *testing.T) *TileRenderer {
	t.Helper()
	lib, err := atlas.LoadLibrary(contentDir(t))
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	tr, err := NewTileRenderer(lib)
	if err != nil {
		t.Fatalf("NewTileRenderer: %v", err)
	}
	return tr
}

// renderTestMap builds a map from rows: 'w' water, 'r' rock, 'p' path
// overlay on grass, '.' grass.
func renderTestMap(rows []string) *maps.Map {
	h := len(rows)
	w := len(rows[0])
	tiles := make([][]int, h)
	for y, row := range rows {
		tiles[y] = make([]int, w)
		for x, ch := range row {
			switch ch {
			case 'w':
				tiles[y][x] = 1
			case 'r':
				tiles[y][x] = 2
			case 'p':
				tiles[y][x] = 3
			}
		}
	}
	return &maps.Map{
		Name: "render-test", Width: w, Height: h, Tiles: tiles,
		Legend: []maps.TileDef{
			{Char: '.', Fg: 32, Walkable: true, Name: "grass"},
			{Char: '~', Fg: 34, Name: "water", Terrain: "water"},
			{Char: '#', Fg: 90, Name: "rock", Terrain: "rock"},
			{Char: ',', Fg: 33, Walkable: true, Name: "trail", Feature: "path", Under: "grass"},
		},
	}
}

func TestBaseSpriteAutotilesTerrain(t *testing.T) {
	tr := testTileRenderer(t)
	m := renderTestMap([]string{
		"www",
		"www",
		"www",
	})
	s := MapSampler(m)

	reg, _ := tr.lib.Terrain("water")

	// Center tile is fully surrounded: the interior cell.
	interior, _ := reg.ByCoord(autotile.CornerSideInterior)
	if got := tr.BaseSprite(m, s, 1, 1); got != interior.Sprite {
		t.Error("fully surrounded tile did not resolve to the interior cell")
	}

	// Top-left corner sees right, bottom, bottom-right only.
	mask := grid.PeeringMask(false, false, false, false, true, false, true, true)
	want, ok := reg.ByMask(mask)
	if !ok {
		t.Fatalf("mask %#02x not in registry", mask)
	}
	if got := tr.BaseSprite(m, s, 0, 0); got != want.Sprite {
		t.Error("corner tile resolved to the wrong variant")
	}
}

func TestBaseSpriteIsolatedTerrain(t *testing.T) {
	tr := testTileRenderer(t)
	m := renderTestMap([]string{
		"...",
		".w.",
		"...",
	})
	s := MapSampler(m)

	reg, _ := tr.lib.Terrain("water")
	want, _ := reg.ByMask(0)
	if got := tr.BaseSprite(m, s, 1, 1); got != want.Sprite {
		t.Error("isolated tile did not resolve to the no-neighbor variant")
	}
}

func TestBaseSpriteFallbacks(t *testing.T) {
	tr := testTileRenderer(t)
	m := renderTestMap([]string{"p."})
	s := MapSampler(m)

	// No simple sprite for "grass": both the overlay's Under ground and the
	// plain grass tile fall back to a flat half-bright swatch.
	r, g, b := AnsiToRGB(32)
	want := atlas.FillSprite(r/2, g/2, b/2)
	if got := tr.BaseSprite(m, s, 1, 0); got != want {
		t.Error("plain tile without art did not fall back to a color swatch")
	}
	rr, gg, bb := AnsiToRGB(33)
	wantTrail := atlas.FillSprite(rr/2, gg/2, bb/2)
	if got := tr.BaseSprite(m, s, 0, 0); got != wantTrail {
		t.Error("overlay tile did not draw its Under ground fallback")
	}
}

func TestOccluderAt(t *testing.T) {
	tr := testTileRenderer(t)
	m := renderTestMap([]string{
		"r.",
		"w.",
	})
	s := MapSampler(m)

	if occ := tr.OccluderAt(m, s, 0, 0); occ == nil {
		t.Error("rock terrain should carry an occluder")
	}
	if occ := tr.OccluderAt(m, s, 0, 1); occ != nil {
		t.Error("water terrain should not occlude")
	}
	if occ := tr.OccluderAt(m, s, 1, 0); occ != nil {
		t.Error("plain grass should not occlude")
	}
	if occ := tr.OccluderAt(m, s, 5, 5); occ != nil {
		t.Error("out-of-bounds tile should not occlude")
	}
}

func TestOverlaySprite(t *testing.T) {
	tr := testTileRenderer(t)
	m := renderTestMap([]string{
		"p.",
		"..",
	})
	s := MapSampler(m)

	// Window ending at (0,0): only BR holds the path.
	sprite, ok := tr.OverlaySprite(s, 0, 0, "path")
	if !ok {
		t.Fatal("corner window with one occupied corner produced no overlay")
	}
	reg, _ := tr.lib.Dual("path")
	if want := reg.ForKey(grid.DualKey{BR: true}); sprite != want {
		t.Error("overlay sprite does not match the BR-only corner key")
	}

	// Window far from the path: nothing to stamp.
	if _, ok := tr.OverlaySprite(s, 5, 5, "path"); ok {
		t.Error("empty window produced an overlay")
	}
}

func TestEngineRenderDiffing(t *testing.T) {
	tr := testTileRenderer(t)
	m := renderTestMap([]string{
		"www",
		"w.w",
		"www",
	})
	players := []PlayerInfo{{ID: "p1", Name: "Moss", X: 1, Y: 1, Color: 2, Dir: DirDown}}

	e := NewEngine(40, 12, tr)
	first := e.Render("p1", m, players, 40, 12, 1)
	if first == "" {
		t.Fatal("first frame emitted nothing")
	}
	if second := e.Render("p1", m, players, 40, 12, 1); second != "" {
		t.Errorf("identical frame emitted %d bytes, want none", len(second))
	}

	players[0].X = 2
	if third := e.Render("p1", m, players, 40, 12, 1); third == "" {
		t.Error("player movement emitted nothing")
	}
}

func TestEngineResizeForcesFullRedraw(t *testing.T) {
	tr := testTileRenderer(t)
	m := renderTestMap([]string{"w"})
	players := []PlayerInfo{{ID: "p1", Name: "Moss", X: 0, Y: 0}}

	e := NewEngine(40, 12, tr)
	e.Render("p1", m, players, 40, 12, 1)
	if out := e.Render("p1", m, players, 60, 20, 1); out == "" {
		t.Error("resized frame emitted nothing")
	}
}

func TestPlayerSpriteDirections(t *testing.T) {
	down := PlayerSprite(DirDown, 0)
	up := PlayerSprite(DirUp, 0)
	if down == up {
		t.Error("down and up sprites identical")
	}
	if PlayerSprite(DirLeft, 0) == PlayerSprite(DirRight, 0) {
		t.Error("left and right sprites identical")
	}

	// Shirt rows pick up the per-player color.
	c := PlayerBGColors[1]
	s := PlayerSprite(DirDown, 1)
	if s[8][0] != atlas.P(c[0], c[1], c[2]) {
		t.Errorf("shirt pixel = %+v, want player color %v", s[8][0], c)
	}
	// Out-of-range color indexes must not panic.
	_ = PlayerSprite(DirDown, -3)
	_ = PlayerSprite(99, 42)
}
