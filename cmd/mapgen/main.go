// Command mapgen generates wilderness maps in the engine's JSON format from
// layered simplex noise, then preflights the result against the autotile
// tables so a generated map can never ship a mask the renderer cannot draw.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"mossvale/internal/autotile"
	"mossvale/internal/grid"
)

// Tile indices for the wilderness legend; order matches tileSpecs.
const (
	tGrass = iota
	tWater
	tTree
	tWall
	tFlowers
	tPath
	tSand
	tTallGrass
	tRock
	tShallowWater
	tDirt
	tBridge
)

// tileSpec declares one generated tile type together with its autotile
// bindings: terrain names the corner/side atlas the renderer autotiles with,
// feature/under name the dual-grid overlay and the tile drawn beneath it.
// The map legend is built from this table, so the generator and the engine
// agree on a single source of truth.
type tileSpec struct {
	name     string
	char     string
	fg       string
	walkable bool
	terrain  string
	feature  string
	under    string
}

var tileSpecs = [...]tileSpec{
	tGrass:        {name: "grass", char: ".", fg: "green", walkable: true},
	tWater:        {name: "water", char: "~", fg: "blue", terrain: "water"},
	tTree:         {name: "tree", char: "T", fg: "green", terrain: "tree"},
	tWall:         {name: "wall", char: "#", fg: "gray", terrain: "wall"},
	tFlowers:      {name: "flowers", char: "*", fg: "bright_red", walkable: true},
	tPath:         {name: "path", char: ".", fg: "yellow", walkable: true, feature: "path", under: "grass"},
	tSand:         {name: "sand", char: "~", fg: "yellow", walkable: true, terrain: "sand"},
	tTallGrass:    {name: "tall_grass", char: ";", fg: "bright_green", walkable: true},
	tRock:         {name: "rock", char: "▒", fg: "gray", terrain: "rock"},
	tShallowWater: {name: "shallow_water", char: "~", fg: "cyan", walkable: true, terrain: "shallow_water"},
	tDirt:         {name: "dirt", char: ".", fg: "yellow", walkable: true},
	tBridge:       {name: "bridge", char: "=", fg: "yellow", walkable: true, feature: "path", under: "shallow_water"},
}

func walkable(tile int) bool {
	return tileSpecs[tile].walkable
}

// jsonMap mirrors the on-disk format from internal/maps.
type jsonMap struct {
	Name    string              `json:"name"`
	Width   int                 `json:"width"`
	Height  int                 `json:"height"`
	Spawn   jsonSpawn           `json:"spawn"`
	Tiles   [][]int             `json:"tiles"`
	Legend  map[string]jsonTile `json:"legend"`
	Portals []jsonPortal        `json:"portals"`
}

type jsonSpawn struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type jsonPortal struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	TargetMap string `json:"target_map"`
	TargetX   int    `json:"target_x"`
	TargetY   int    `json:"target_y"`
}

type jsonTile struct {
	Char     string `json:"char"`
	Fg       string `json:"fg"`
	Walkable bool   `json:"walkable"`
	Name     string `json:"name"`
	Terrain  string `json:"terrain,omitempty"`
	Feature  string `json:"feature,omitempty"`
	Under    string `json:"under,omitempty"`
}

func buildLegend() map[string]jsonTile {
	legend := make(map[string]jsonTile, len(tileSpecs))
	for i, s := range tileSpecs {
		legend[strconv.Itoa(i)] = jsonTile{
			Char:     s.char,
			Fg:       s.fg,
			Walkable: s.walkable,
			Name:     s.name,
			Terrain:  s.terrain,
			Feature:  s.feature,
			Under:    s.under,
		}
	}
	return legend
}

func main() {
	genType := flag.String("type", "", "generator type (wilderness)")
	seed := flag.Int64("seed", 0, "random seed (0 = random)")
	size := flag.String("size", "100x80", "map size as WxH")
	name := flag.String("name", "Wilderness", "map name")
	out := flag.String("out", "", "output file (default: stdout)")
	flag.Parse()

	if *genType == "" {
		fmt.Fprintln(os.Stderr, "Error: -type is required")
		fmt.Fprintln(os.Stderr, "Usage: mapgen -type wilderness [-seed N] [-size WxH] [-name Name] [-out file.json]")
		os.Exit(1)
	}
	if *genType != "wilderness" {
		fmt.Fprintf(os.Stderr, "Error: unknown generator type %q (available: wilderness)\n", *genType)
		os.Exit(1)
	}

	w, h, err := parseSize(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	fmt.Fprintf(os.Stderr, "Generating %dx%d wilderness map %q (seed %d)...\n", w, h, *name, *seed)

	g := newGenerator(w, h, *seed)
	spawnX, spawnY := g.run()
	fmt.Fprintf(os.Stderr, "Spawn: (%d, %d)\n", spawnX, spawnY)

	if err := reportAutotile(g.tiles, w, h); err != nil {
		fmt.Fprintf(os.Stderr, "Error: autotile preflight: %v\n", err)
		os.Exit(1)
	}

	m := jsonMap{
		Name:    *name,
		Width:   w,
		Height:  h,
		Spawn:   jsonSpawn{X: spawnX, Y: spawnY},
		Tiles:   g.tiles,
		Legend:  buildLegend(),
		Portals: []jsonPortal{},
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(data)
		os.Stdout.WriteString("\n")
	} else {
		if err := os.WriteFile(*out, append(data, '\n'), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", *out, len(data))
	}

	printDistribution(g.tiles, w, h)
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 10 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 10)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 10 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 10)", parts[1])
	}
	return w, h, nil
}

func printDistribution(tiles [][]int, w, h int) {
	counts := make([]int, len(tileSpecs))
	for _, row := range tiles {
		for _, t := range row {
			counts[t]++
		}
	}
	total := w * h
	fmt.Fprintf(os.Stderr, "\nTile distribution:\n")
	for i, c := range counts {
		if c == 0 {
			continue
		}
		fmt.Fprintf(os.Stderr, "  %-15s %5d (%5.1f%%)\n", tileSpecs[i].name, c, float64(c)/float64(total)*100)
	}
}

// generator carries the state of one wilderness build.
type generator struct {
	w, h  int
	rng   *rand.Rand
	tiles [][]int

	elev, moist, detail fractalField
}

func newGenerator(w, h int, seed int64) *generator {
	tiles := make([][]int, h)
	for y := range tiles {
		tiles[y] = make([]int, w)
	}
	return &generator{
		w: w, h: h,
		rng:    rand.New(rand.NewSource(seed + 100)),
		tiles:  tiles,
		elev:   fractalField{noise: newNoiseField(seed), freq: 0.02, octaves: 4, lacunarity: 2.0, persistence: 0.5},
		moist:  fractalField{noise: newNoiseField(seed + 1), freq: 0.03, octaves: 3, lacunarity: 2.0, persistence: 0.5},
		detail: fractalField{noise: newNoiseField(seed + 2), freq: 0.1, octaves: 2, lacunarity: 2.0, persistence: 0.5},
	}
}

// run executes the build stages in order and returns the spawn point.
func (g *generator) run() (int, int) {
	g.paintBiomes()
	g.shapeBorder()
	sx, sy := g.nearestWalkable(g.w/2, g.h/2)
	g.carveTrailNetwork(sx, sy)
	g.connectRegions(sx, sy)
	return g.findSpawn()
}

func (g *generator) paintBiomes() {
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			fx, fy := float64(x), float64(y)
			g.tiles[y][x] = classify(g.elev.at(fx, fy), g.moist.at(fx, fy), g.detail.at(fx, fy))
		}
	}
}

// elevationBands order the biomes from sea floor to peaks; within a band,
// moisture and the fine detail field break ties.
var elevationBands = []struct {
	ceiling float64
	pick    func(moist, det float64) int
}{
	{0.20, func(float64, float64) int { return tWater }},
	{0.28, func(float64, float64) int { return tShallowWater }},
	{0.32, func(float64, float64) int { return tSand }},
	{0.42, pickLowland},
	{0.70, pickUpland},
	{0.78, func(float64, float64) int { return tRock }},
	{math.MaxFloat64, func(float64, float64) int { return tWall }},
}

func classify(elev, moist, det float64) int {
	for _, b := range elevationBands {
		if elev < b.ceiling {
			return b.pick(moist, det)
		}
	}
	return tWall
}

func pickLowland(moist, _ float64) int {
	switch {
	case moist > 0.6:
		return tFlowers
	case moist > 0.45:
		return tTallGrass
	default:
		return tGrass
	}
}

func pickUpland(moist, det float64) int {
	switch {
	case moist > 0.55:
		return tTree
	case moist > 0.35 && det > 0.65:
		return tTree
	case moist > 0.35 && det > 0.45:
		return tTallGrass
	default:
		return tGrass
	}
}

// shapeBorder rings the map with impassable growth and roughens the band
// just inside it, so the edge reads as terrain rather than a cut.
func (g *generator) shapeBorder() {
	const depth = 3
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			edge := minOf(x, y, g.w-1-x, g.h-1-y)
			if edge >= depth {
				continue
			}
			elev := g.elev.at(float64(x), float64(y))
			if edge == 0 {
				if elev >= 0.70 {
					g.tiles[y][x] = tWall
				} else {
					g.tiles[y][x] = tTree
				}
				continue
			}
			if !walkable(g.tiles[y][x]) {
				continue
			}
			// Deeper in the band the growth thins out.
			threshold := float64(depth-edge) * 0.3
			if g.detail.at(float64(x), float64(y)) < threshold {
				if elev >= 0.65 {
					g.tiles[y][x] = tRock
				} else {
					g.tiles[y][x] = tTree
				}
			}
		}
	}
}

var cardinal = [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

// nearestWalkable spirals out from (cx, cy) to the first walkable interior
// tile, falling back to (cx, cy) on a fully sealed map.
func (g *generator) nearestWalkable(cx, cy int) (int, int) {
	for r := 0; r < max(g.w, g.h); r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				x, y := cx+dx, cy+dy
				if x > 0 && x < g.w-1 && y > 0 && y < g.h-1 && walkable(g.tiles[y][x]) {
					return x, y
				}
			}
		}
	}
	return cx, cy
}

// carveTrailNetwork lays the dual-grid path feature from the map center out
// to a few edge exits. Land gets path tiles, water crossings get bridges, and
// grass flanking the trail is scuffed to dirt. Path and bridge share one
// feature name, so the overlay renders as one continuous trail.
func (g *generator) carveTrailNetwork(sx, sy int) {
	exits := 2 + g.rng.Intn(2)
	for i := 0; i < exits; i++ {
		tx, ty := g.edgeTarget()
		g.carveTrail(sx, sy, tx, ty)
	}
}

// edgeTarget picks a point just inside a random map edge, pinned away from
// the corners.
func (g *generator) edgeTarget() (int, int) {
	pin := func(v, limit int) int {
		if v < 4 {
			return 4
		}
		if v >= limit-4 {
			return limit - 5
		}
		return v
	}
	switch g.rng.Intn(4) {
	case 0:
		return pin(g.rng.Intn(g.w), g.w), 1
	case 1:
		return pin(g.rng.Intn(g.w), g.w), g.h - 2
	case 2:
		return g.w - 2, pin(g.rng.Intn(g.h), g.h)
	default:
		return 1, pin(g.rng.Intn(g.h), g.h)
	}
}

func (g *generator) carveTrail(x, y, tx, ty int) {
	for steps := 0; steps < g.w*g.h && (x != tx || y != ty); steps++ {
		dx, dy := stepToward(x, y, tx, ty, g.rng)
		nx, ny := x+dx, y+dy
		if nx < 1 || nx >= g.w-1 || ny < 1 || ny >= g.h-1 {
			continue
		}
		g.layTrail(nx, ny)
		x, y = nx, ny
	}
}

// stepToward moves one tile toward the target, biased to the longer
// remaining axis with occasional lateral drift.
func stepToward(x, y, tx, ty int, rng *rand.Rand) (int, int) {
	dx, dy := sign(tx-x), sign(ty-y)
	alongX := abs(tx-x) > abs(ty-y)
	if rng.Float64() < 0.3 {
		alongX = !alongX
	}
	if alongX {
		if dx == 0 {
			dx = rng.Intn(2)*2 - 1
		}
		return dx, 0
	}
	if dy == 0 {
		dy = rng.Intn(2)*2 - 1
	}
	return 0, dy
}

// layTrail materializes one trail tile: the path feature over land, a bridge
// where the trail crosses water, dirt scuffing alongside.
func (g *generator) layTrail(x, y int) {
	switch g.tiles[y][x] {
	case tPath, tBridge:
		return
	case tWater, tShallowWater:
		g.tiles[y][x] = tBridge
		return
	}
	g.tiles[y][x] = tPath
	for _, d := range cardinal {
		ax, ay := x+d[0], y+d[1]
		if ax < 1 || ax >= g.w-1 || ay < 1 || ay >= g.h-1 {
			continue
		}
		if t := g.tiles[ay][ax]; (t == tGrass || t == tTallGrass) && g.rng.Float64() < 0.4 {
			g.tiles[ay][ax] = tDirt
		}
	}
}

// findSpawn picks a grass or path tile near the center with a mostly
// walkable 3x3 neighborhood.
func (g *generator) findSpawn() (int, int) {
	cx, cy := g.w/2, g.h/2
	for r := 0; r <= max(g.w, g.h)/2; r++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if abs(dx) != r && abs(dy) != r {
					continue // ring perimeter only
				}
				x, y := cx+dx, cy+dy
				if x < 2 || x >= g.w-2 || y < 2 || y >= g.h-2 {
					continue
				}
				if t := g.tiles[y][x]; t != tGrass && t != tPath {
					continue
				}
				open := 0
				for ny := y - 1; ny <= y+1; ny++ {
					for nx := x - 1; nx <= x+1; nx++ {
						if walkable(g.tiles[ny][nx]) {
							open++
						}
					}
				}
				if open >= 7 {
					return x, y
				}
			}
		}
	}
	return g.nearestWalkable(cx, cy)
}

// connectRegions joins every walkable region to the spawn-reachable one.
// Pockets too small to be worth a corridor are overgrown instead.
func (g *generator) connectRegions(sx, sy int) {
	const pocketSize = 15

	seen := make([][]bool, g.h)
	for y := range seen {
		seen[y] = make([]bool, g.w)
	}
	reached := g.flood(sx, sy, seen)

	connected, filled := 0, 0
	for y := 1; y < g.h-1; y++ {
		for x := 1; x < g.w-1; x++ {
			if seen[y][x] || !walkable(g.tiles[y][x]) {
				continue
			}
			island := g.flood(x, y, seen)
			if len(island) < pocketSize {
				for _, c := range island {
					g.tiles[c.Y][c.X] = tTree
				}
				filled += len(island)
				continue
			}
			carved := g.carveCorridor(island, reached)
			reached = append(reached, island...)
			reached = append(reached, carved...)
			connected++
		}
	}

	if connected == 0 && filled == 0 {
		fmt.Fprintf(os.Stderr, "Connectivity: fully connected (%d walkable tiles)\n", len(reached))
		return
	}
	fmt.Fprintf(os.Stderr, "Connectivity: connected %d islands, overgrew %d pocket tiles (%d reachable)\n",
		connected, filled, len(reached))
}

// flood collects the walkable region containing (sx, sy), marking it in seen.
func (g *generator) flood(sx, sy int, seen [][]bool) []grid.Coord {
	if seen[sy][sx] || !walkable(g.tiles[sy][sx]) {
		return nil
	}
	seen[sy][sx] = true
	queue := []grid.Coord{grid.C(sx, sy)}
	var out []grid.Coord
	for len(queue) > 0 {
		c := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		out = append(out, c)
		for _, d := range cardinal {
			nx, ny := c.X+d[0], c.Y+d[1]
			if nx < 0 || nx >= g.w || ny < 0 || ny >= g.h || seen[ny][nx] || !walkable(g.tiles[ny][nx]) {
				continue
			}
			seen[ny][nx] = true
			queue = append(queue, grid.C(nx, ny))
		}
	}
	return out
}

// carveCorridor opens the shortest sampled gap between an island and the
// main region, laying trail tiles so the corridor joins the path overlay.
// Returns the tiles it carved.
func (g *generator) carveCorridor(island, main []grid.Coord) []grid.Coord {
	from := g.sampleBorder(island, 200)
	to := g.sampleBorder(main, 500)

	best := math.MaxInt
	var a, b grid.Coord
	for _, ip := range from {
		for _, mp := range to {
			if d := abs(ip.X-mp.X) + abs(ip.Y-mp.Y); d < best {
				best, a, b = d, ip, mp
			}
		}
	}
	if best == math.MaxInt {
		return nil
	}

	var carved []grid.Coord
	x, y := a.X, a.Y
	for x != b.X || y != b.Y {
		if abs(b.X-x) >= abs(b.Y-y) {
			x += sign(b.X - x)
		} else {
			y += sign(b.Y - y)
		}
		if x < 1 || x >= g.w-1 || y < 1 || y >= g.h-1 || walkable(g.tiles[y][x]) {
			continue
		}
		if t := g.tiles[y][x]; t == tWater || t == tShallowWater {
			g.tiles[y][x] = tBridge
		} else {
			g.tiles[y][x] = tPath
		}
		carved = append(carved, grid.C(x, y))
	}
	return carved
}

// sampleBorder returns up to n region tiles adjacent to unwalkable ground.
func (g *generator) sampleBorder(region []grid.Coord, n int) []grid.Coord {
	var border []grid.Coord
	for _, c := range region {
		for _, d := range cardinal {
			nx, ny := c.X+d[0], c.Y+d[1]
			if nx >= 0 && nx < g.w && ny >= 0 && ny < g.h && !walkable(g.tiles[ny][nx]) {
				border = append(border, c)
				break
			}
		}
	}
	if len(border) > n {
		g.rng.Shuffle(len(border), func(i, j int) { border[i], border[j] = border[j], border[i] })
		border = border[:n]
	}
	return border
}

func minOf(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

// occupancy adapts the generated tile grid to the resolvers' sampler, with
// the same name/terrain/feature matching the engine's map layer applies.
type occupancy [][]int

func (o occupancy) IsFeaturePresent(c grid.Coord, feature autotile.Feature) bool {
	if c.Y < 0 || c.Y >= len(o) || c.X < 0 || c.X >= len(o[c.Y]) {
		return false
	}
	s := tileSpecs[o[c.Y][c.X]]
	f := string(feature)
	return s.name == f || (s.terrain != "" && s.terrain == f) || (s.feature != "" && s.feature == f)
}

// reportAutotile resolves every terrain mask and dual-grid corner key the
// generated map will produce, using the same tables the renderer consumes.
// A gated mask that misses the corner/side table means the generator emitted
// occupancy the atlas cannot draw, which fails the build.
func reportAutotile(tiles [][]int, w, h int) error {
	corner, err := autotile.NewCornerSideResolver(autotile.CornerSideTable)
	if err != nil {
		return err
	}
	dual, err := autotile.NewDualGridResolver(autotile.DualGridTable)
	if err != nil {
		return err
	}

	o := occupancy(tiles)
	terrainMasks := make(map[string]map[uint8]bool)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := tileSpecs[tiles[y][x]]
			if s.terrain == "" {
				continue
			}
			mask := autotile.PeeringMaskAt(o, x, y, autotile.Feature(s.terrain))
			if _, ok := corner.Resolve(mask); !ok {
				return fmt.Errorf("terrain %s at (%d,%d): mask %#02x has no pattern", s.terrain, x, y, mask)
			}
			if terrainMasks[s.terrain] == nil {
				terrainMasks[s.terrain] = make(map[uint8]bool)
			}
			terrainMasks[s.terrain][mask] = true
		}
	}

	keys := make(map[int]bool)
	for y := 0; y <= h; y++ {
		for x := 0; x <= w; x++ {
			if k := autotile.DualKeyAt(o, x, y, "path"); k.Index() != 0 {
				dual.ResolveKey(k)
				keys[k.Index()] = true
			}
		}
	}

	for terrain, masks := range terrainMasks {
		fmt.Fprintf(os.Stderr, "Autotile: terrain %-14s %2d/%d variants\n", terrain, len(masks), autotile.CornerSideTable.Len())
	}
	fmt.Fprintf(os.Stderr, "Autotile: path feature uses %d/15 dual-grid cells\n", len(keys))
	return nil
}
