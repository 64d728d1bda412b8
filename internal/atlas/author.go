package atlas

import (
	"fmt"
	"image"

	"mossvale/internal/autotile"
	"mossvale/internal/grid"
)

// Occluder is a closed polygon, in cell-local texel coordinates, consumed by
// the renderer's shadow pass. Vertices run clockwise; the last vertex
// implicitly connects back to the first.
type Occluder []grid.Coord

// FullCellOccluder returns the square spanning an entire cell.
func FullCellOccluder() Occluder {
	return Occluder{
		grid.C(0, 0),
		grid.C(CellSize, 0),
		grid.C(CellSize, CellSize),
		grid.C(0, CellSize),
	}
}

// Variant is one authored registry entry: an atlas cell, the peering mask it
// draws, and optional occluder geometry for light-blocking terrain.
type Variant struct {
	Coord    grid.Coord
	Mask     uint8
	Sprite   Sprite
	Occluder Occluder // nil unless the terrain blocks light
}

// Registry is the renderer-facing artifact of authoring one terrain: every
// pattern in the corner/side table, keyed by atlas coordinate and indexed by
// mask. Read-only after construction; never published partially built.
type Registry struct {
	terrain     string
	blocksLight bool
	variants    []Variant
	byMask      map[uint8]*Variant
	byCoord     map[grid.Coord]*Variant
}

// AuthorTerrain builds a Registry from a source texture and the corner/side
// pattern table. It refuses a malformed table (duplicate masks or
// coordinates) and an undersized texture before anything is published, so
// consumers never observe a half-built registry. Construction is idempotent:
// identical inputs produce registries with identical (coord, mask) content.
func AuthorTerrain(img image.Image, table *autotile.Table, terrain string, blocksLight bool) (*Registry, error) {
	if err := table.ValidateMasks(); err != nil {
		return nil, fmt.Errorf("author %s: %w", terrain, err)
	}

	patterns := table.Patterns()
	reg := &Registry{
		terrain:     terrain,
		blocksLight: blocksLight,
		variants:    make([]Variant, 0, len(patterns)),
		byMask:      make(map[uint8]*Variant, len(patterns)),
		byCoord:     make(map[grid.Coord]*Variant, len(patterns)),
	}

	for _, p := range patterns {
		sprite, err := SliceCell(img, p.Coord())
		if err != nil {
			return nil, fmt.Errorf("author %s: %w", terrain, err)
		}
		v := Variant{Coord: p.Coord(), Mask: p.Mask, Sprite: sprite}
		if blocksLight {
			v.Occluder = FullCellOccluder()
		}
		reg.variants = append(reg.variants, v)
	}

	for i := range reg.variants {
		v := &reg.variants[i]
		reg.byMask[v.Mask] = v
		reg.byCoord[v.Coord] = v
	}
	return reg, nil
}

// Terrain returns the terrain name the registry was authored for.
func (r *Registry) Terrain() string {
	return r.terrain
}

// BlocksLight reports whether this terrain's variants carry occluders.
func (r *Registry) BlocksLight() bool {
	return r.blocksLight
}

// Len returns the number of authored variants.
func (r *Registry) Len() int {
	return len(r.variants)
}

// Variants returns all authored entries. Callers must not modify the slice.
func (r *Registry) Variants() []Variant {
	return r.variants
}

// ByMask returns the variant registered for a peering mask. The second
// result is false for masks the table does not populate.
func (r *Registry) ByMask(mask uint8) (*Variant, bool) {
	v, ok := r.byMask[mask]
	return v, ok
}

// ByCoord returns the variant at an atlas coordinate.
func (r *Registry) ByCoord(c grid.Coord) (*Variant, bool) {
	v, ok := r.byCoord[c]
	return v, ok
}

// DualRegistry is the authored artifact for a dual-grid feature: one sprite
// per corner key of the 16-entry table.
type DualRegistry struct {
	feature string
	sprites [16]Sprite
}

// AuthorDualGrid builds a DualRegistry from a 4x4 source sheet and the
// dual-grid pattern table. The table must be total; authoring fails outright
// otherwise.
func AuthorDualGrid(img image.Image, table *autotile.Table, feature string) (*DualRegistry, error) {
	if err := table.ValidateKeys(); err != nil {
		return nil, fmt.Errorf("author %s: %w", feature, err)
	}

	reg := &DualRegistry{feature: feature}
	for _, p := range table.Patterns() {
		sprite, err := SliceCell(img, p.Coord())
		if err != nil {
			return nil, fmt.Errorf("author %s: %w", feature, err)
		}
		reg.sprites[p.Key.Index()] = sprite
	}
	return reg, nil
}

// Feature returns the feature name the registry was authored for.
func (r *DualRegistry) Feature() string {
	return r.feature
}

// ForKey returns the sprite for a corner key.
func (r *DualRegistry) ForKey(k grid.DualKey) Sprite {
	return r.sprites[k.Index()]
}
