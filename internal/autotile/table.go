// Package autotile selects visual tile variants from neighbor occupancy.
//
// Two schemes are supported. The dual-grid scheme renders single-width
// connected features (paths, fences) on a grid offset by half a tile, so
// each rendered cell is shaped by the 4 primary tiles meeting at its corner.
// The corner/side scheme renders blob terrain (water, sand, rock) from the
// 8 compass neighbors of each tile.
package autotile

import (
	"fmt"

	"mossvale/internal/grid"
)

// Pattern maps one atlas coordinate to the neighbor configuration it draws.
// Patterns are static configuration and are never mutated.
type Pattern struct {
	X, Y int   // atlas coordinate (column, row) in the source sheet
	Mask uint8 // peering bitmask (corner/side tables)
	Key  grid.DualKey
}

// Coord returns the pattern's atlas coordinate.
func (p Pattern) Coord() grid.Coord {
	return grid.C(p.X, p.Y)
}

// Table is an ordered, immutable collection of patterns for one grid
// topology. The dual-grid table is total over its 16-key domain; the
// corner/side table deliberately covers only the 47 masks reachable from
// real occupancy (a diagonal bit is meaningless unless both adjacent
// cardinal bits are set).
type Table struct {
	name     string
	patterns []Pattern
}

// NewTable builds a table from pattern records, e.g. ones loaded from an
// external data file. The records must follow the package's bit-layout and
// key-order conventions; validation is the consumer's responsibility and
// happens before any derived artifact is built.
func NewTable(name string, patterns []Pattern) *Table {
	return &Table{name: name, patterns: patterns}
}

// Name identifies the table in diagnostics.
func (t *Table) Name() string {
	return t.name
}

// Patterns returns the table's entries. Callers must not modify the slice.
func (t *Table) Patterns() []Pattern {
	return t.patterns
}

// Len returns the number of patterns.
func (t *Table) Len() int {
	return len(t.patterns)
}

// ValidateMasks checks that no two patterns share a bitmask or an atlas
// coordinate. A duplicate would make variant selection ambiguous, so
// consumers building derived artifacts must refuse the table outright.
func (t *Table) ValidateMasks() error {
	seenMask := make(map[uint8]int, len(t.patterns))
	seenCoord := make(map[grid.Coord]int, len(t.patterns))
	for i, p := range t.patterns {
		if j, dup := seenMask[p.Mask]; dup {
			return fmt.Errorf("table %s: entries %d and %d share mask %#02x", t.name, j, i, p.Mask)
		}
		if j, dup := seenCoord[p.Coord()]; dup {
			return fmt.Errorf("table %s: entries %d and %d share atlas coord (%d,%d)", t.name, j, i, p.X, p.Y)
		}
		seenMask[p.Mask] = i
		seenCoord[p.Coord()] = i
	}
	return nil
}

// ValidateKeys checks that the dual-grid table is total and unambiguous:
// every one of the 16 corner keys appears exactly once.
func (t *Table) ValidateKeys() error {
	seen := make(map[int]int, 16)
	for i, p := range t.patterns {
		idx := p.Key.Index()
		if j, dup := seen[idx]; dup {
			return fmt.Errorf("table %s: entries %d and %d share corner key %04b", t.name, j, i, idx)
		}
		seen[idx] = i
	}
	if len(seen) != 16 {
		return fmt.Errorf("table %s: %d of 16 corner keys covered", t.name, len(seen))
	}
	return nil
}
