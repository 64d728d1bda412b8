package atlas

import (
	"image"
	"image/color"
	"testing"

	"mossvale/internal/autotile"
	"mossvale/internal/grid"
)

// testSheet builds a corner/side-sized texture where every texel encodes its
// atlas cell, so sliced sprites are distinguishable per cell.
func testSheet(cellsW, cellsH int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, cellsW*CellSize, cellsH*CellSize))
	for y := 0; y < cellsH*CellSize; y++ {
		for x := 0; x < cellsW*CellSize; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x / CellSize * 16),
				G: uint8(y / CellSize * 16),
				B: 40,
				A: 255,
			})
		}
	}
	return img
}

func TestAuthorTerrainCoversTable(t *testing.T) {
	img := testSheet(autotile.CornerSideSheetW, autotile.CornerSideSheetH)
	reg, err := AuthorTerrain(img, autotile.CornerSideTable, "water", false)
	if err != nil {
		t.Fatalf("AuthorTerrain: %v", err)
	}

	if reg.Len() != autotile.CornerSideTable.Len() {
		t.Fatalf("registry has %d variants, table has %d", reg.Len(), autotile.CornerSideTable.Len())
	}
	for _, p := range autotile.CornerSideTable.Patterns() {
		v, ok := reg.ByMask(p.Mask)
		if !ok {
			t.Fatalf("mask %#02x not registered", p.Mask)
		}
		if v.Coord != p.Coord() {
			t.Errorf("mask %#02x registered at %+v, want %+v", p.Mask, v.Coord, p.Coord())
		}
		if v.Occluder != nil {
			t.Errorf("mask %#02x carries an occluder without blocksLight", p.Mask)
		}
	}
}

// TestAuthorTerrainIdempotent runs the author twice on identical inputs and
// compares the (coord, mask) content of both registries.
func TestAuthorTerrainIdempotent(t *testing.T) {
	img := testSheet(autotile.CornerSideSheetW, autotile.CornerSideSheetH)

	a, err := AuthorTerrain(img, autotile.CornerSideTable, "sand", true)
	if err != nil {
		t.Fatal(err)
	}
	b, err := AuthorTerrain(img, autotile.CornerSideTable, "sand", true)
	if err != nil {
		t.Fatal(err)
	}

	if a.Len() != b.Len() {
		t.Fatalf("lengths differ: %d vs %d", a.Len(), b.Len())
	}
	for _, va := range a.Variants() {
		vb, ok := b.ByCoord(va.Coord)
		if !ok {
			t.Fatalf("coord %+v missing from second registry", va.Coord)
		}
		if vb.Mask != va.Mask {
			t.Errorf("coord %+v: masks differ (%#02x vs %#02x)", va.Coord, va.Mask, vb.Mask)
		}
		if vb.Sprite != va.Sprite {
			t.Errorf("coord %+v: sprites differ", va.Coord)
		}
	}
}

func TestAuthorTerrainOccluders(t *testing.T) {
	img := testSheet(autotile.CornerSideSheetW, autotile.CornerSideSheetH)
	reg, err := AuthorTerrain(img, autotile.CornerSideTable, "rock", true)
	if err != nil {
		t.Fatal(err)
	}

	want := FullCellOccluder()
	for _, v := range reg.Variants() {
		if len(v.Occluder) != 4 {
			t.Fatalf("coord %+v: occluder has %d vertices, want 4", v.Coord, len(v.Occluder))
		}
		for i, pt := range v.Occluder {
			if pt != want[i] {
				t.Errorf("coord %+v: occluder vertex %d = %+v, want %+v", v.Coord, i, pt, want[i])
			}
		}
	}
}

// TestAuthorTerrainRejectsMalformedTable checks the fail-fast path: a table
// with duplicate masks must abort construction before publishing anything.
func TestAuthorTerrainRejectsMalformedTable(t *testing.T) {
	img := testSheet(autotile.CornerSideSheetW, autotile.CornerSideSheetH)
	bad := autotile.NewTable("bad", []autotile.Pattern{
		{X: 0, Y: 0, Mask: grid.PeerT},
		{X: 1, Y: 0, Mask: grid.PeerT},
	})
	if _, err := AuthorTerrain(img, bad, "broken", false); err == nil {
		t.Fatal("malformed table accepted")
	}
}

func TestAuthorTerrainRejectsUndersizedTexture(t *testing.T) {
	img := testSheet(2, 2) // table references cells beyond a 2x2 sheet
	if _, err := AuthorTerrain(img, autotile.CornerSideTable, "tiny", false); err == nil {
		t.Fatal("undersized texture accepted")
	}
}

func TestAuthorDualGrid(t *testing.T) {
	img := testSheet(4, 4)
	reg, err := AuthorDualGrid(img, autotile.DualGridTable, "path")
	if err != nil {
		t.Fatalf("AuthorDualGrid: %v", err)
	}

	// Each corner key must get the sprite sliced from its table cell.
	for _, p := range autotile.DualGridTable.Patterns() {
		want, err := SliceCell(img, p.Coord())
		if err != nil {
			t.Fatal(err)
		}
		if got := reg.ForKey(p.Key); got != want {
			t.Errorf("key %+v: wrong sprite", p.Key)
		}
	}
}

func TestSliceCellTransparencyKeying(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, CellSize, CellSize))
	for y := 0; y < CellSize; y++ {
		for x := 0; x < CellSize; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 255, A: 255}) // magenta key
	img.SetNRGBA(1, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0})    // fully transparent

	s, err := SliceCell(img, grid.C(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !s[0][0].Transparent {
		t.Error("magenta texel not keyed transparent")
	}
	if !s[0][1].Transparent {
		t.Error("zero-alpha texel not transparent")
	}
	if s[1][1].Transparent || s[1][1] != P(10, 20, 30) {
		t.Errorf("opaque texel = %+v", s[1][1])
	}
}
