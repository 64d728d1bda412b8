package main

import (
	"encoding/json"
	"testing"

	"mossvale/internal/maps"
)

// TestLegendBindings pins the legend contract the engine relies on: a tile
// binds at most one of terrain/feature, and a feature overlay always names
// the tile drawn beneath it.
func TestLegendBindings(t *testing.T) {
	for i, s := range tileSpecs {
		if s.terrain != "" && s.feature != "" {
			t.Errorf("tile %d (%s) sets both terrain and feature", i, s.name)
		}
		if s.feature != "" && s.under == "" {
			t.Errorf("tile %d (%s) has a feature overlay but no under tile", i, s.name)
		}
	}

	legend := buildLegend()
	if len(legend) != len(tileSpecs) {
		t.Fatalf("legend has %d entries, want %d", len(legend), len(tileSpecs))
	}
}

// TestGeneratedMapLoads round-trips a generated map through the engine's
// parser and checks the spawn landed on walkable ground.
func TestGeneratedMapLoads(t *testing.T) {
	const w, h = 40, 30
	g := newGenerator(w, h, 7)
	sx, sy := g.run()

	data, err := json.Marshal(jsonMap{
		Name:    "generated",
		Width:   w,
		Height:  h,
		Spawn:   jsonSpawn{X: sx, Y: sy},
		Tiles:   g.tiles,
		Legend:  buildLegend(),
		Portals: []jsonPortal{},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	m, err := maps.ParseMap(data)
	if err != nil {
		t.Fatalf("ParseMap rejected generated map: %v", err)
	}
	if !m.IsWalkable(sx, sy) {
		t.Errorf("spawn (%d,%d) is not walkable: %+v", sx, sy, m.TileAt(sx, sy))
	}
}

// TestTrailCarvingEmitsFeature checks that the trail pass lays down tiles
// carrying the dual-grid path feature, so the overlay layer has something to
// draw on every generated map.
func TestTrailCarvingEmitsFeature(t *testing.T) {
	g := newGenerator(48, 40, 3)
	g.run()

	paths := 0
	for _, row := range g.tiles {
		for _, tile := range row {
			if tileSpecs[tile].feature == "path" {
				paths++
			}
		}
	}
	if paths == 0 {
		t.Error("no trail tiles carved")
	}
}

// TestGeneratedMasksResolve runs the preflight over a few seeds: every gated
// peering mask and dual-grid corner key a generated map produces must resolve
// through the compiled tables.
func TestGeneratedMasksResolve(t *testing.T) {
	const w, h = 40, 30
	for _, seed := range []int64{1, 11, 42} {
		g := newGenerator(w, h, seed)
		g.run()
		if err := reportAutotile(g.tiles, w, h); err != nil {
			t.Errorf("seed %d: %v", seed, err)
		}
	}
}

// TestNoiseFieldRange samples the fractal field over a coarse grid and checks
// normalization and determinism per seed.
func TestNoiseFieldRange(t *testing.T) {
	f := fractalField{noise: newNoiseField(5), freq: 0.05, octaves: 3, lacunarity: 2.0, persistence: 0.5}
	g := fractalField{noise: newNoiseField(5), freq: 0.05, octaves: 3, lacunarity: 2.0, persistence: 0.5}

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := f.at(float64(x), float64(y))
			if v < 0 || v > 1 {
				t.Fatalf("at(%d,%d) = %v, outside [0,1]", x, y, v)
			}
			if w := g.at(float64(x), float64(y)); w != v {
				t.Fatalf("same seed diverged at (%d,%d): %v vs %v", x, y, v, w)
			}
		}
	}
}
