package render

import "mossvale/internal/atlas"

// Facing directions, matching the input handler's encoding.
const (
	DirDown = iota
	DirUp
	DirLeft
	DirRight
)

// Player art is authored on an 8x8 grid and doubled to cell size, which
// keeps the shapes legible at half-block resolution.
//
//	. transparent   h hair   s skin   e eye
//	b shirt (per-player color)   p pants   o shoes
var playerArt = [4][8]string{
	DirDown: {
		".hhhhhh.",
		".hhhhhh.",
		".ssssss.",
		".sesses.",
		"bbbbbbbb",
		".bbbbbb.",
		".pppppp.",
		".oo..oo.",
	},
	DirUp: {
		".hhhhhh.",
		".hhhhhh.",
		".hhhhhh.",
		".hhhhhh.",
		"bbbbbbbb",
		".bbbbbb.",
		".pppppp.",
		".oo..oo.",
	},
	DirLeft: {
		".hhhhh..",
		".hhhhh..",
		".sshhh..",
		".eshhh..",
		"bbbbbbb.",
		".bbbbb..",
		".ppppp..",
		".oo.oo..",
	},
	DirRight: {
		"..hhhhh.",
		"..hhhhh.",
		"..hhhss.",
		"..hhhse.",
		".bbbbbbb",
		"..bbbbb.",
		"..ppppp.",
		"..oo.oo.",
	},
}

// Fixed palette shared by every player; only the shirt varies.
var (
	hairPx = atlas.P(100, 60, 25)
	skinPx = atlas.P(237, 195, 155)
	eyePx  = atlas.P(30, 20, 15)
	shoePx = atlas.P(62, 42, 28)
)

// PlayerSprite builds the sprite for a player facing dir, shirt-tinted by
// color index. Pants reuse the shirt color darkened for contrast.
func PlayerSprite(dir, color int) atlas.Sprite {
	c := PlayerBGColors[((color%len(PlayerBGColors))+len(PlayerBGColors))%len(PlayerBGColors)]
	shirt := atlas.P(c[0], c[1], c[2])
	pants := atlas.P(c[0]*2/3, c[1]*2/3, c[2]*2/3)

	if dir < 0 || dir >= len(playerArt) {
		dir = DirDown
	}
	art := playerArt[dir]

	var s atlas.Sprite
	for ay := 0; ay < 8; ay++ {
		for ax := 0; ax < 8; ax++ {
			var p atlas.Pixel
			switch art[ay][ax] {
			case 'h':
				p = hairPx
			case 's':
				p = skinPx
			case 'e':
				p = eyePx
			case 'b':
				p = shirt
			case 'p':
				p = pants
			case 'o':
				p = shoePx
			default:
				p = atlas.TransparentPixel()
			}
			s[ay*2][ax*2] = p
			s[ay*2][ax*2+1] = p
			s[ay*2+1][ax*2] = p
			s[ay*2+1][ax*2+1] = p
		}
	}
	return s
}
