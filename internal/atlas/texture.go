package atlas

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"mossvale/internal/grid"
)

// LoadTexture reads a PNG source texture from disk.
func LoadTexture(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// SliceCell copies the CellSize x CellSize cell at the given atlas
// coordinate out of a source texture. Alpha below half or pure magenta
// (#FF00FF) reads as transparent.
func SliceCell(img image.Image, c grid.Coord) (Sprite, error) {
	var s Sprite
	bounds := img.Bounds()
	x0 := bounds.Min.X + c.X*CellSize
	y0 := bounds.Min.Y + c.Y*CellSize
	if x0 < bounds.Min.X || y0 < bounds.Min.Y || x0+CellSize > bounds.Max.X || y0+CellSize > bounds.Max.Y {
		return s, fmt.Errorf("atlas cell (%d,%d) outside %dx%d texture",
			c.X, c.Y, bounds.Dx(), bounds.Dy())
	}

	for y := 0; y < CellSize; y++ {
		for x := 0; x < CellSize; x++ {
			r, g, b, a := img.At(x0+x, y0+y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
			if a < 0x8000 || (r8 == 0xFF && g8 == 0x00 && b8 == 0xFF) {
				s[y][x] = TransparentPixel()
			} else {
				s[y][x] = P(r8, g8, b8)
			}
		}
	}
	return s, nil
}

// LoadSprite reads a standalone CellSize x CellSize PNG (simple tiles,
// player templates).
func LoadSprite(path string) (Sprite, error) {
	img, err := LoadTexture(path)
	if err != nil {
		return Sprite{}, err
	}
	b := img.Bounds()
	if b.Dx() != CellSize || b.Dy() != CellSize {
		return Sprite{}, fmt.Errorf("%s: expected %dx%d, got %dx%d", path, CellSize, CellSize, b.Dx(), b.Dy())
	}
	return SliceCell(img, grid.C(0, 0))
}
