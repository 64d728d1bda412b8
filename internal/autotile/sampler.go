package autotile

import "mossvale/internal/grid"

// Feature identifies a tile type or feature whose presence drives variant
// selection. It matches the tile names used by the world's map legend.
type Feature string

// NeighborSampler is the world-occupancy capability the resolvers consume.
// Implementations must report false for any out-of-bounds coordinate and
// must never fail; missing neighbors are simply absent. The engine reads
// through this interface only and never mutates world state.
type NeighborSampler interface {
	IsFeaturePresent(c grid.Coord, feature Feature) bool
}

// SamplerFunc adapts a function to the NeighborSampler interface.
type SamplerFunc func(c grid.Coord, feature Feature) bool

func (f SamplerFunc) IsFeaturePresent(c grid.Coord, feature Feature) bool {
	return f(c, feature)
}

// PeeringMaskAt samples the 8 compass neighbors of (x,y) and packs them into
// the fixed bit layout. A diagonal bit is set only when both adjacent
// cardinal bits are set: a corner neighbor that touches only at a point
// cannot influence the tile's silhouette, and gating it here keeps every
// produced mask inside the corner/side table's populated domain.
func PeeringMaskAt(s NeighborSampler, x, y int, feature Feature) uint8 {
	t := s.IsFeaturePresent(grid.C(x, y-1), feature)
	b := s.IsFeaturePresent(grid.C(x, y+1), feature)
	l := s.IsFeaturePresent(grid.C(x-1, y), feature)
	r := s.IsFeaturePresent(grid.C(x+1, y), feature)

	tl := t && l && s.IsFeaturePresent(grid.C(x-1, y-1), feature)
	tr := t && r && s.IsFeaturePresent(grid.C(x+1, y-1), feature)
	bl := b && l && s.IsFeaturePresent(grid.C(x-1, y+1), feature)
	br := b && r && s.IsFeaturePresent(grid.C(x+1, y+1), feature)

	return grid.PeeringMask(tl, t, tr, l, r, bl, b, br)
}

// RawPeeringMaskAt samples the 8 compass neighbors without the diagonal
// gate. Masks built this way can fall outside the corner/side table; callers
// using it must handle the unmapped result themselves.
func RawPeeringMaskAt(s NeighborSampler, x, y int, feature Feature) uint8 {
	return grid.PeeringMask(
		s.IsFeaturePresent(grid.C(x-1, y-1), feature),
		s.IsFeaturePresent(grid.C(x, y-1), feature),
		s.IsFeaturePresent(grid.C(x+1, y-1), feature),
		s.IsFeaturePresent(grid.C(x-1, y), feature),
		s.IsFeaturePresent(grid.C(x+1, y), feature),
		s.IsFeaturePresent(grid.C(x-1, y+1), feature),
		s.IsFeaturePresent(grid.C(x, y+1), feature),
		s.IsFeaturePresent(grid.C(x+1, y+1), feature),
	)
}

// DualKeyAt samples the 2x2 window whose bottom-right primary tile is (x,y)
// and returns the corner key for the dual-grid cell at that corner.
func DualKeyAt(s NeighborSampler, x, y int, feature Feature) grid.DualKey {
	return grid.DualKey{
		TL: s.IsFeaturePresent(grid.C(x-1, y-1), feature),
		TR: s.IsFeaturePresent(grid.C(x, y-1), feature),
		BL: s.IsFeaturePresent(grid.C(x-1, y), feature),
		BR: s.IsFeaturePresent(grid.C(x, y), feature),
	}
}
