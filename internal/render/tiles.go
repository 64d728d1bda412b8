package render

import (
	"mossvale/internal/atlas"
	"mossvale/internal/autotile"
	"mossvale/internal/grid"
	"mossvale/internal/maps"
)

// TileRenderer selects sprites for world tiles through the authored atlas
// library. Autotiled terrain resolves its peering mask against the
// corner/side table; everything else falls back to simple tiles and then
// to a flat color. Read-only after construction.
type TileRenderer struct {
	lib    *atlas.Library
	corner *autotile.CornerSideResolver
}

// NewTileRenderer builds a renderer over an authored library.
func NewTileRenderer(lib *atlas.Library) (*TileRenderer, error) {
	corner, err := autotile.NewCornerSideResolver(autotile.CornerSideTable)
	if err != nil {
		return nil, err
	}
	return &TileRenderer{lib: lib, corner: corner}, nil
}

// MapSampler adapts a map's occupancy to the resolvers' sampler interface.
func MapSampler(m *maps.Map) autotile.NeighborSampler {
	return autotile.SamplerFunc(func(c grid.Coord, feature autotile.Feature) bool {
		return m.IsFeaturePresent(c, feature)
	})
}

// BaseSprite returns the ground sprite for the tile at (wx,wy).
//
// Terrain tiles sample their 8 neighbors and resolve the mask to an atlas
// cell; an unmapped mask substitutes the fully surrounded interior cell.
// Overlay-carrying tiles draw the tile named by Under so the offset overlay
// has ground beneath it. Anything without authored art renders as a flat
// half-bright swatch of its legend color.
func (t *TileRenderer) BaseSprite(m *maps.Map, s autotile.NeighborSampler, wx, wy int) atlas.Sprite {
	td := m.TileAt(wx, wy)

	if td.Terrain != "" {
		if reg, ok := t.lib.Terrain(td.Terrain); ok {
			mask := autotile.PeeringMaskAt(s, wx, wy, autotile.Feature(td.Terrain))
			coord, ok := t.corner.Resolve(mask)
			if !ok {
				coord = autotile.CornerSideInterior
			}
			if v, ok := reg.ByCoord(coord); ok {
				return v.Sprite
			}
		}
	}

	name := td.Name
	if td.Feature != "" && td.Under != "" {
		name = td.Under
	}
	if sprite, ok := t.lib.Simple(name); ok {
		return sprite
	}

	r, g, b := AnsiToRGB(td.Fg)
	return atlas.FillSprite(r/2, g/2, b/2)
}

// OccluderAt returns the occluder for the tile at (wx,wy), or nil when its
// terrain does not block light.
func (t *TileRenderer) OccluderAt(m *maps.Map, s autotile.NeighborSampler, wx, wy int) atlas.Occluder {
	td := m.TileAt(wx, wy)
	if td.Terrain == "" {
		return nil
	}
	reg, ok := t.lib.Terrain(td.Terrain)
	if !ok || !reg.BlocksLight() {
		return nil
	}
	mask := autotile.PeeringMaskAt(s, wx, wy, autotile.Feature(td.Terrain))
	coord, ok := t.corner.Resolve(mask)
	if !ok {
		coord = autotile.CornerSideInterior
	}
	if v, ok := reg.ByCoord(coord); ok {
		return v.Occluder
	}
	return nil
}

// OverlayFeatures returns the dual-grid feature names with authored art.
func (t *TileRenderer) OverlayFeatures() []string {
	return t.lib.DualFeatures()
}

// OverlaySprite returns the dual-grid cell sprite whose display cell sits on
// the shared corner of tiles (x-1..x, y-1..y). The second result is false
// when no corner of the window holds the feature, so callers skip stamping
// fully empty cells.
func (t *TileRenderer) OverlaySprite(s autotile.NeighborSampler, x, y int, feature string) (atlas.Sprite, bool) {
	reg, ok := t.lib.Dual(feature)
	if !ok {
		return atlas.Sprite{}, false
	}
	key := autotile.DualKeyAt(s, x, y, autotile.Feature(feature))
	if key.Index() == 0 {
		return atlas.Sprite{}, false
	}
	return reg.ForKey(key), true
}
