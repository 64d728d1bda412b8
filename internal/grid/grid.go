// Package grid defines the coordinate and neighbor-mask conventions shared by
// the autotiling engine, the atlas registry, and any externalized pattern
// data. The bit layout and tuple ordering here are wire-level contracts: a
// JSON or CSV pattern file replacing the embedded tables must match them
// exactly.
package grid

// Coord is an integer tile coordinate. Value equality.
type Coord struct {
	X, Y int
}

// C is a shorthand Coord constructor.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Peering bits for the 8 compass neighbors of a tile. One bit per neighbor,
// set when that neighbor shares the tile's terrain or feature state.
//
// The numbering is fixed: bit0=TopLeft, bit1=Top, bit2=TopRight, bit3=Left,
// bit4=Right, bit5=BottomLeft, bit6=Bottom, bit7=BottomRight.
const (
	PeerTL uint8 = 1 << iota
	PeerT
	PeerTR
	PeerL
	PeerR
	PeerBL
	PeerB
	PeerBR
)

// PeeringMask packs 8 neighbor booleans into the fixed bit layout.
func PeeringMask(tl, t, tr, l, r, bl, b, br bool) uint8 {
	var m uint8
	if tl {
		m |= PeerTL
	}
	if t {
		m |= PeerT
	}
	if tr {
		m |= PeerTR
	}
	if l {
		m |= PeerL
	}
	if r {
		m |= PeerR
	}
	if bl {
		m |= PeerBL
	}
	if b {
		m |= PeerB
	}
	if br {
		m |= PeerBR
	}
	return m
}

// DualKey is the ordered 4-tuple of corner occupancies for one dual-grid
// cell: which of the four primary tiles meeting at the cell's corner are
// present. The field order (topLeft, topRight, bottomLeft, bottomRight) is
// part of the data contract.
type DualKey struct {
	TL, TR, BL, BR bool
}

// Index returns the key's position in [0,16): TL is the high bit, BR the low.
func (k DualKey) Index() int {
	i := 0
	if k.TL {
		i |= 8
	}
	if k.TR {
		i |= 4
	}
	if k.BL {
		i |= 2
	}
	if k.BR {
		i |= 1
	}
	return i
}
