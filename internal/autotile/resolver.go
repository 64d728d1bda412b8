package autotile

import (
	"log"

	"mossvale/internal/grid"
)

// DualGridResolver maps corner keys to atlas coordinates through the
// 16-entry dual-grid table. Stateless; safe for concurrent use.
type DualGridResolver struct {
	byKey [16]grid.Coord
	seen  [16]bool
}

// NewDualGridResolver indexes the given table. The table must be total over
// the 16-key domain with no duplicates.
func NewDualGridResolver(t *Table) (*DualGridResolver, error) {
	if err := t.ValidateKeys(); err != nil {
		return nil, err
	}
	r := &DualGridResolver{}
	for _, p := range t.Patterns() {
		i := p.Key.Index()
		r.byKey[i] = p.Coord()
		r.seen[i] = true
	}
	return r, nil
}

// Resolve samples the 2x2 window ending at (x,y) through the sampler and
// returns the atlas coordinate for the resulting corner key. Coordinates
// outside the world read as absent, so map edges resolve like any other
// partially occupied window.
//
// The table is total, so a miss can only mean defective compiled data; in
// that case the fully connected cell is returned and a diagnostic logged.
func (r *DualGridResolver) Resolve(s NeighborSampler, x, y int, feature Feature) grid.Coord {
	return r.ResolveKey(DualKeyAt(s, x, y, feature))
}

// ResolveKey returns the atlas coordinate for an already-sampled corner key.
func (r *DualGridResolver) ResolveKey(k grid.DualKey) grid.Coord {
	i := k.Index()
	if !r.seen[i] {
		log.Printf("autotile: dual-grid key %04b unmapped, using fully connected cell", i)
		return DualGridDefault
	}
	return r.byKey[i]
}

// CornerSideResolver maps 8-bit peering masks to atlas coordinates through a
// sparse corner/side table. Stateless; safe for concurrent use.
type CornerSideResolver struct {
	byMask map[uint8]grid.Coord
}

// NewCornerSideResolver indexes the given table, rejecting duplicate masks.
func NewCornerSideResolver(t *Table) (*CornerSideResolver, error) {
	if err := t.ValidateMasks(); err != nil {
		return nil, err
	}
	byMask := make(map[uint8]grid.Coord, t.Len())
	for _, p := range t.Patterns() {
		byMask[p.Mask] = p.Coord()
	}
	return &CornerSideResolver{byMask: byMask}, nil
}

// Resolve performs an exact-match lookup of the mask. The second result is
// false when the mask has no pattern, which is an expected outcome for bit
// combinations real occupancy cannot produce; the caller chooses its own
// substitute. No nearest-match or partial matching is ever attempted.
func (r *CornerSideResolver) Resolve(mask uint8) (grid.Coord, bool) {
	c, ok := r.byMask[mask]
	return c, ok
}

// ResolveAt samples (x,y)'s neighborhood with the diagonal gate applied and
// resolves the resulting mask.
func (r *CornerSideResolver) ResolveAt(s NeighborSampler, x, y int, feature Feature) (grid.Coord, bool) {
	return r.Resolve(PeeringMaskAt(s, x, y, feature))
}
