// Package atlas turns source textures and pattern tables into the immutable
// variant registries the renderer draws from. Authoring runs once per
// terrain during content load; everything it publishes is read-only and safe
// for concurrent reads.
package atlas

const (
	// CellSize is the fixed sampling size of one atlas cell, in source texels.
	CellSize = 16
)

// Pixel is a single texel with RGB color and transparency.
type Pixel struct {
	R, G, B     uint8
	Transparent bool
}

// Sprite is one CellSize x CellSize cell sliced from a source texture.
type Sprite [CellSize][CellSize]Pixel

// P is a shorthand to create an opaque pixel.
func P(r, g, b uint8) Pixel {
	return Pixel{R: r, G: g, B: b}
}

// TransparentPixel returns a transparent pixel.
func TransparentPixel() Pixel {
	return Pixel{Transparent: true}
}

// FillSprite creates a sprite filled with a single color.
func FillSprite(r, g, b uint8) Sprite {
	var s Sprite
	p := P(r, g, b)
	for y := 0; y < CellSize; y++ {
		for x := 0; x < CellSize; x++ {
			s[y][x] = p
		}
	}
	return s
}

// MissingSprite is the magenta placeholder drawn when content is absent.
func MissingSprite() Sprite {
	return FillSprite(255, 0, 255)
}
