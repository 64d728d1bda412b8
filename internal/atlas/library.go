package atlas

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"mossvale/internal/autotile"
)

// Library is the full authored content for one sprites directory: blob
// terrain registries, dual-grid feature registries, and simple one-cell
// tiles. It is built once during content load and read-only afterwards;
// there is no process-wide cache behind it.
//
// Directory conventions:
//   - terrain/<name>.png        corner/side sheet (8x6 cells)
//   - terrain/<name>_solid.png  same, terrain blocks light
//   - dualgrid/<name>.png       dual-grid sheet (4x4 cells)
//   - tiles/<name>.png          single 16x16 sprite
type Library struct {
	terrains map[string]*Registry
	dual     map[string]*DualRegistry
	simple   map[string]Sprite
}

// LoadLibrary authors every texture under dir. Unreadable or malformed
// sheets fail the whole load: serving a world with silently missing terrain
// variants would draw incorrect art.
func LoadLibrary(dir string) (*Library, error) {
	lib := &Library{
		terrains: make(map[string]*Registry),
		dual:     make(map[string]*DualRegistry),
		simple:   make(map[string]Sprite),
	}

	if err := lib.loadTerrains(filepath.Join(dir, "terrain")); err != nil {
		return nil, fmt.Errorf("load terrains: %w", err)
	}
	if err := lib.loadDualGrid(filepath.Join(dir, "dualgrid")); err != nil {
		return nil, fmt.Errorf("load dual-grid features: %w", err)
	}
	if err := lib.loadSimple(filepath.Join(dir, "tiles")); err != nil {
		return nil, fmt.Errorf("load tiles: %w", err)
	}

	log.Printf("Content loaded: %d terrains, %d dual-grid features, %d tiles",
		len(lib.terrains), len(lib.dual), len(lib.simple))
	return lib, nil
}

func (lib *Library) loadTerrains(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".png")
		blocksLight := strings.HasSuffix(name, "_solid")
		name = strings.TrimSuffix(name, "_solid")

		img, err := LoadTexture(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		reg, err := AuthorTerrain(img, autotile.CornerSideTable, name, blocksLight)
		if err != nil {
			return err
		}
		if _, dup := lib.terrains[name]; dup {
			return fmt.Errorf("terrain %q authored twice", name)
		}
		lib.terrains[name] = reg
	}
	return nil
}

func (lib *Library) loadDualGrid(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".png")
		img, err := LoadTexture(filepath.Join(dir, entry.Name()))
		if err != nil {
			return err
		}
		reg, err := AuthorDualGrid(img, autotile.DualGridTable, name)
		if err != nil {
			return err
		}
		lib.dual[name] = reg
	}
	return nil
}

func (lib *Library) loadSimple(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".png") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".png")
		sprite, err := LoadSprite(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Warning: skipping tile %s: %v", entry.Name(), err)
			continue
		}
		lib.simple[name] = sprite
	}
	return nil
}

// Terrain returns the registry for a blob terrain name.
func (lib *Library) Terrain(name string) (*Registry, bool) {
	r, ok := lib.terrains[name]
	return r, ok
}

// Dual returns the registry for a dual-grid feature name.
func (lib *Library) Dual(name string) (*DualRegistry, bool) {
	r, ok := lib.dual[name]
	return r, ok
}

// Simple returns the sprite for a simple tile name.
func (lib *Library) Simple(name string) (Sprite, bool) {
	s, ok := lib.simple[name]
	return s, ok
}

// DualFeatures returns the names of all loaded dual-grid features.
func (lib *Library) DualFeatures() []string {
	names := make([]string, 0, len(lib.dual))
	for name := range lib.dual {
		names = append(names, name)
	}
	return names
}
