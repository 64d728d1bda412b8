package game

import (
	"testing"

	"mossvale/internal/maps"
)

// testWorld builds two 3x3 maps joined by a portal at A(2,2) -> B(0,0).
// Tile 1 is an unwalkable wall at A(1,0).
func testWorld() *World {
	legend := []maps.TileDef{
		{Char: '.', Fg: 32, Walkable: true, Name: "grass"},
		{Char: '#', Fg: 90, Walkable: false, Name: "rock", Terrain: "rock"},
	}
	a := &maps.Map{
		Name: "A", Width: 3, Height: 3,
		SpawnX: 0, SpawnY: 0,
		Tiles:   [][]int{{0, 1, 0}, {0, 0, 0}, {0, 0, 0}},
		Legend:  legend,
		Portals: []maps.Portal{{X: 2, Y: 2, TargetMap: "B", TargetX: 0, TargetY: 0}},
	}
	b := &maps.Map{
		Name: "B", Width: 3, Height: 3,
		SpawnX: 1, SpawnY: 1,
		Tiles:  [][]int{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		Legend: legend,
	}
	return NewWorld(map[string]*maps.Map{"A": a, "B": b}, "A")
}

func drainCooldown(p *Player) {
	p.moveCooldown = 0
}

func TestAddPlayerSpawnsOnDefaultMap(t *testing.T) {
	gl := NewGameLoop(testWorld())
	id, ch := gl.AddPlayer("ivy")
	defer gl.RemovePlayer(id)

	if ch == nil {
		t.Fatal("no render channel")
	}
	p := gl.players[id]
	if p.MapName != "A" || p.X != 0 || p.Y != 0 {
		t.Errorf("spawned at %s(%d,%d), want A(0,0)", p.MapName, p.X, p.Y)
	}
}

func TestAddPlayerDuplicateUsername(t *testing.T) {
	gl := NewGameLoop(testWorld())
	id1, _ := gl.AddPlayer("ivy")
	id2, _ := gl.AddPlayer("ivy")
	if id1 == id2 {
		t.Errorf("duplicate username got same id %q", id1)
	}
}

func TestRemovePlayerRestoresOnReconnect(t *testing.T) {
	gl := NewGameLoop(testWorld())
	id, _ := gl.AddPlayer("ivy")
	p := gl.players[id]
	p.X, p.Y, p.MapName = 2, 1, "B"
	color := p.Color
	gl.RemovePlayer(id)

	id2, _ := gl.AddPlayer("ivy")
	p2 := gl.players[id2]
	if p2.MapName != "B" || p2.X != 2 || p2.Y != 1 || p2.Color != color {
		t.Errorf("restored as %s(%d,%d) color %d", p2.MapName, p2.X, p2.Y, p2.Color)
	}
}

func TestMovementRespectsWalkability(t *testing.T) {
	gl := NewGameLoop(testWorld())
	id, _ := gl.AddPlayer("ivy")
	p := gl.players[id]

	// Right from (0,0) is the rock wall.
	gl.processInput(InputEvent{PlayerID: id, Action: ActionRight})
	if p.X != 0 || p.Y != 0 {
		t.Errorf("moved into a wall: (%d,%d)", p.X, p.Y)
	}
	if p.Dir != DirRight {
		t.Error("blocked move should still turn the player")
	}

	// Up from (0,0) is off the map: out of bounds is never walkable.
	gl.processInput(InputEvent{PlayerID: id, Action: ActionUp})
	if p.Y != 0 {
		t.Errorf("walked off the map to y=%d", p.Y)
	}

	gl.processInput(InputEvent{PlayerID: id, Action: ActionDown})
	if p.X != 0 || p.Y != 1 {
		t.Errorf("open move failed: (%d,%d)", p.X, p.Y)
	}
}

func TestMovementCooldown(t *testing.T) {
	gl := NewGameLoop(testWorld())
	id, _ := gl.AddPlayer("ivy")
	p := gl.players[id]

	gl.processInput(InputEvent{PlayerID: id, Action: ActionDown})
	gl.processInput(InputEvent{PlayerID: id, Action: ActionDown})
	if p.Y != 1 {
		t.Errorf("second move ignored cooldown: y=%d", p.Y)
	}

	drainCooldown(p)
	gl.processInput(InputEvent{PlayerID: id, Action: ActionDown})
	if p.Y != 2 {
		t.Errorf("move after cooldown failed: y=%d", p.Y)
	}
}

func TestPortalTraversal(t *testing.T) {
	gl := NewGameLoop(testWorld())
	id, _ := gl.AddPlayer("ivy")
	p := gl.players[id]
	p.X, p.Y = 2, 1

	gl.processInput(InputEvent{PlayerID: id, Action: ActionDown})
	if p.MapName != "B" || p.X != 0 || p.Y != 0 {
		t.Errorf("portal left player at %s(%d,%d), want B(0,0)", p.MapName, p.X, p.Y)
	}
}

func TestTickBroadcastsSnapshots(t *testing.T) {
	gl := NewGameLoop(testWorld())
	id, ch := gl.AddPlayer("ivy")
	gl.AddPlayer("fern")

	gl.tick()

	select {
	case state := <-ch:
		if len(state.Players) != 2 {
			t.Errorf("snapshot has %d players, want 2", len(state.Players))
		}
		if state.Tick != 1 {
			t.Errorf("tick = %d, want 1", state.Tick)
		}
	default:
		t.Fatal("no snapshot delivered")
	}

	// A full channel must never block the loop.
	gl.tick()
	gl.tick()
	gl.tick()
	gl.RemovePlayer(id)
}
