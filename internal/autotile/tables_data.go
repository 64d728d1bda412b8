package autotile

import "mossvale/internal/grid"

// DualGridTable maps each of the 16 corner keys of a dual-grid cell to its
// cell in a 4x4 source sheet. Key order is (topLeft, topRight, bottomLeft,
// bottomRight); the table is total over that domain.
var DualGridTable = &Table{
	name: "dual-grid",
	patterns: []Pattern{
		{X: 0, Y: 3, Key: grid.DualKey{}},                                     // empty
		{X: 1, Y: 3, Key: grid.DualKey{BR: true}},
		{X: 0, Y: 0, Key: grid.DualKey{BL: true}},
		{X: 3, Y: 0, Key: grid.DualKey{BL: true, BR: true}},                   // bottom edge
		{X: 0, Y: 2, Key: grid.DualKey{TR: true}},
		{X: 1, Y: 0, Key: grid.DualKey{TR: true, BR: true}},                   // right edge
		{X: 2, Y: 3, Key: grid.DualKey{TR: true, BL: true}},                   // anti-diagonal
		{X: 1, Y: 1, Key: grid.DualKey{TR: true, BL: true, BR: true}},
		{X: 3, Y: 3, Key: grid.DualKey{TL: true}},
		{X: 0, Y: 1, Key: grid.DualKey{TL: true, BR: true}},                   // diagonal
		{X: 3, Y: 2, Key: grid.DualKey{TL: true, BL: true}},                   // left edge
		{X: 2, Y: 0, Key: grid.DualKey{TL: true, BL: true, BR: true}},
		{X: 1, Y: 2, Key: grid.DualKey{TL: true, TR: true}},                   // top edge
		{X: 2, Y: 2, Key: grid.DualKey{TL: true, TR: true, BR: true}},
		{X: 3, Y: 1, Key: grid.DualKey{TL: true, TR: true, BL: true}},
		{X: 2, Y: 1, Key: grid.DualKey{TL: true, TR: true, BL: true, BR: true}}, // fully connected
	},
}

// DualGridDefault is the documented fallback when a dual-grid lookup misses.
// The table is total, so a miss means the compiled data is defective; the
// resolver substitutes the fully connected cell rather than aborting.
var DualGridDefault = grid.C(2, 1)

// CornerSideTable covers the 47 peering masks reachable from real occupancy,
// laid out 8 cells per row in ascending mask order. Masks with a corner bit
// set but an adjacent edge bit clear are intentionally absent; looking them
// up yields the explicit unmapped result.
var CornerSideTable = &Table{
	name: "corner-side",
	patterns: []Pattern{
		{X: 0, Y: 0, Mask: 0},
		{X: 1, Y: 0, Mask: grid.PeerT},
		{X: 2, Y: 0, Mask: grid.PeerL},
		{X: 3, Y: 0, Mask: grid.PeerT | grid.PeerL},
		{X: 4, Y: 0, Mask: grid.PeerTL | grid.PeerT | grid.PeerL},
		{X: 5, Y: 0, Mask: grid.PeerR},
		{X: 6, Y: 0, Mask: grid.PeerT | grid.PeerR},
		{X: 7, Y: 0, Mask: grid.PeerT | grid.PeerTR | grid.PeerR},
		{X: 0, Y: 1, Mask: grid.PeerL | grid.PeerR},
		{X: 1, Y: 1, Mask: grid.PeerT | grid.PeerL | grid.PeerR},
		{X: 2, Y: 1, Mask: grid.PeerTL | grid.PeerT | grid.PeerL | grid.PeerR},
		{X: 3, Y: 1, Mask: grid.PeerT | grid.PeerTR | grid.PeerL | grid.PeerR},
		{X: 4, Y: 1, Mask: grid.PeerTL | grid.PeerT | grid.PeerTR | grid.PeerL | grid.PeerR},
		{X: 5, Y: 1, Mask: grid.PeerB},
		{X: 6, Y: 1, Mask: grid.PeerT | grid.PeerB},
		{X: 7, Y: 1, Mask: grid.PeerL | grid.PeerB},
		{X: 0, Y: 2, Mask: grid.PeerT | grid.PeerL | grid.PeerB},
		{X: 1, Y: 2, Mask: grid.PeerTL | grid.PeerT | grid.PeerL | grid.PeerB},
		{X: 2, Y: 2, Mask: grid.PeerR | grid.PeerB},
		{X: 3, Y: 2, Mask: grid.PeerT | grid.PeerR | grid.PeerB},
		{X: 4, Y: 2, Mask: grid.PeerT | grid.PeerTR | grid.PeerR | grid.PeerB},
		{X: 5, Y: 2, Mask: grid.PeerL | grid.PeerR | grid.PeerB},
		{X: 6, Y: 2, Mask: grid.PeerT | grid.PeerL | grid.PeerR | grid.PeerB},
		{X: 7, Y: 2, Mask: grid.PeerTL | grid.PeerT | grid.PeerL | grid.PeerR | grid.PeerB},
		{X: 0, Y: 3, Mask: grid.PeerT | grid.PeerTR | grid.PeerL | grid.PeerR | grid.PeerB},
		{X: 1, Y: 3, Mask: grid.PeerTL | grid.PeerT | grid.PeerTR | grid.PeerL | grid.PeerR | grid.PeerB},
		{X: 2, Y: 3, Mask: grid.PeerL | grid.PeerBL | grid.PeerB},
		{X: 3, Y: 3, Mask: grid.PeerT | grid.PeerL | grid.PeerBL | grid.PeerB},
		{X: 4, Y: 3, Mask: grid.PeerTL | grid.PeerT | grid.PeerL | grid.PeerBL | grid.PeerB},
		{X: 5, Y: 3, Mask: grid.PeerL | grid.PeerR | grid.PeerBL | grid.PeerB},
		{X: 6, Y: 3, Mask: grid.PeerT | grid.PeerL | grid.PeerR | grid.PeerBL | grid.PeerB},
		{X: 7, Y: 3, Mask: grid.PeerTL | grid.PeerT | grid.PeerL | grid.PeerR | grid.PeerBL | grid.PeerB},
		{X: 0, Y: 4, Mask: grid.PeerT | grid.PeerTR | grid.PeerL | grid.PeerR | grid.PeerBL | grid.PeerB},
		{X: 1, Y: 4, Mask: grid.PeerTL | grid.PeerT | grid.PeerTR | grid.PeerL | grid.PeerR | grid.PeerBL | grid.PeerB},
		{X: 2, Y: 4, Mask: grid.PeerR | grid.PeerB | grid.PeerBR},
		{X: 3, Y: 4, Mask: grid.PeerT | grid.PeerR | grid.PeerB | grid.PeerBR},
		{X: 4, Y: 4, Mask: grid.PeerT | grid.PeerTR | grid.PeerR | grid.PeerB | grid.PeerBR},
		{X: 5, Y: 4, Mask: grid.PeerL | grid.PeerR | grid.PeerB | grid.PeerBR},
		{X: 6, Y: 4, Mask: grid.PeerT | grid.PeerL | grid.PeerR | grid.PeerB | grid.PeerBR},
		{X: 7, Y: 4, Mask: grid.PeerTL | grid.PeerT | grid.PeerL | grid.PeerR | grid.PeerB | grid.PeerBR},
		{X: 0, Y: 5, Mask: grid.PeerT | grid.PeerTR | grid.PeerL | grid.PeerR | grid.PeerB | grid.PeerBR},
		{X: 1, Y: 5, Mask: grid.PeerTL | grid.PeerT | grid.PeerTR | grid.PeerL | grid.PeerR | grid.PeerB | grid.PeerBR},
		{X: 2, Y: 5, Mask: grid.PeerL | grid.PeerR | grid.PeerBL | grid.PeerB | grid.PeerBR},
		{X: 3, Y: 5, Mask: grid.PeerT | grid.PeerL | grid.PeerR | grid.PeerBL | grid.PeerB | grid.PeerBR},
		{X: 4, Y: 5, Mask: grid.PeerTL | grid.PeerT | grid.PeerL | grid.PeerR | grid.PeerBL | grid.PeerB | grid.PeerBR},
		{X: 5, Y: 5, Mask: grid.PeerT | grid.PeerTR | grid.PeerL | grid.PeerR | grid.PeerBL | grid.PeerB | grid.PeerBR},
		{X: 6, Y: 5, Mask: grid.PeerTL | grid.PeerT | grid.PeerTR | grid.PeerL | grid.PeerR | grid.PeerBL | grid.PeerB | grid.PeerBR},
	},
}

// CornerSideInterior is the atlas coordinate for the fully surrounded tile
// (mask 0xFF). Callers that hit an unmapped mask and want to draw something
// anyway conventionally substitute this cell.
var CornerSideInterior = grid.C(6, 5)

// CornerSideSheetW and CornerSideSheetH are the source sheet dimensions, in
// cells, implied by CornerSideTable's layout.
const (
	CornerSideSheetW = 8
	CornerSideSheetH = 6
)
