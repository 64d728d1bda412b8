package render

import "mossvale/internal/atlas"

const (
	// CharTileW is the width of one world tile in terminal columns
	// (1 texel = 1 column).
	CharTileW = atlas.CellSize
	// CharTileH is the height of one world tile in terminal rows
	// (2 texels per row via half-blocks).
	CharTileH = atlas.CellSize / 2
)

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch            rune
	FgR, FgG, FgB uint8
	BgR, BgG, BgB uint8
	Bold          bool
}

// Frame is the per-session pixel buffer one viewport frame is composed
// into. Sprites are stamped at texel coordinates; the finished frame is
// converted to terminal cells two texel rows per text row.
type Frame struct {
	W, H int // texels
	pix  []atlas.Pixel
}

// NewFrame allocates a frame of the given texel dimensions.
func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, pix: make([]atlas.Pixel, w*h)}
}

// Clear fills the frame with a single opaque color.
func (f *Frame) Clear(r, g, b uint8) {
	p := atlas.P(r, g, b)
	for i := range f.pix {
		f.pix[i] = p
	}
}

// At returns the pixel at texel (x,y), or a transparent pixel out of bounds.
func (f *Frame) At(x, y int) atlas.Pixel {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return atlas.TransparentPixel()
	}
	return f.pix[y*f.W+x]
}

// Set writes the pixel at texel (x,y). Out-of-bounds writes are dropped.
func (f *Frame) Set(x, y int, p atlas.Pixel) {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return
	}
	f.pix[y*f.W+x] = p
}

// Stamp draws a sprite with its top-left corner at texel (px,py).
// Transparent sprite pixels leave the frame untouched.
func (f *Frame) Stamp(px, py int, s atlas.Sprite) {
	for y := 0; y < atlas.CellSize; y++ {
		fy := py + y
		if fy < 0 || fy >= f.H {
			continue
		}
		for x := 0; x < atlas.CellSize; x++ {
			fx := px + x
			if fx < 0 || fx >= f.W {
				continue
			}
			p := s[y][x]
			if p.Transparent {
				continue
			}
			f.pix[fy*f.W+fx] = p
		}
	}
}

// Shade darkens the w x h texel region at (px,py) toward black.
// num/den is the brightness kept, e.g. 2/3.
func (f *Frame) Shade(px, py, w, h int, num, den int) {
	for y := py; y < py+h; y++ {
		if y < 0 || y >= f.H {
			continue
		}
		for x := px; x < px+w; x++ {
			if x < 0 || x >= f.W {
				continue
			}
			p := f.pix[y*f.W+x]
			if p.Transparent {
				continue
			}
			p.R = uint8(int(p.R) * num / den)
			p.G = uint8(int(p.G) * num / den)
			p.B = uint8(int(p.B) * num / den)
			f.pix[y*f.W+x] = p
		}
	}
}

// CellAt converts the texel pair at text cell (cx,cy) to a terminal cell:
// the upper texel becomes the half-block foreground, the lower the
// background.
func (f *Frame) CellAt(cx, cy int) Cell {
	top := f.At(cx, cy*2)
	bot := f.At(cx, cy*2+1)
	return Cell{
		Ch:  '▀',
		FgR: top.R, FgG: top.G, FgB: top.B,
		BgR: bot.R, BgG: bot.G, BgB: bot.B,
	}
}
