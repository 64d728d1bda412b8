package game

import (
	"fmt"
	"sync"
	"time"
)

const InputChanSize = 256

// GameState is a snapshot sent to each session for rendering. It carries
// every online player; sessions filter by map themselves.
type GameState struct {
	Players []PlayerSnapshot
	Tick    uint64
}

// RenderChan is the per-session channel that receives game state snapshots.
type RenderChan chan GameState

// savedState holds persisted player data for reconnecting players.
type savedState struct {
	MapName string
	X, Y    int
	Color   int
}

// GameLoop is the central game loop singleton.
type GameLoop struct {
	world     *World
	inputCh   chan InputEvent
	tickCount uint64

	mu          sync.RWMutex
	players     map[string]*Player
	renderChans map[string]RenderChan
	saved       map[string]savedState // keyed by username

	stopCh chan struct{}
}

// NewGameLoop creates and returns a new game loop.
func NewGameLoop(world *World) *GameLoop {
	return &GameLoop{
		world:       world,
		inputCh:     make(chan InputEvent, InputChanSize),
		players:     make(map[string]*Player),
		renderChans: make(map[string]RenderChan),
		saved:       make(map[string]savedState),
		stopCh:      make(chan struct{}),
	}
}

// World returns the world the loop simulates.
func (gl *GameLoop) World() *World {
	return gl.world
}

// InputChan returns the shared input channel for sessions to send events.
func (gl *GameLoop) InputChan() chan<- InputEvent {
	return gl.inputCh
}

// AddPlayer registers a player using their username as identity.
// If the username was seen before, position and color are restored.
// Returns the effective player ID and the render channel.
func (gl *GameLoop) AddPlayer(name string) (string, RenderChan) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	// If this username is already online, add a suffix
	id := name
	if _, online := gl.players[id]; online {
		id = fmt.Sprintf("%s_%04d", name, time.Now().UnixNano()%10000)
	}

	var player *Player
	if ss, ok := gl.saved[name]; ok && gl.world.GetMap(ss.MapName) != nil {
		player = &Player{
			ID:      id,
			Name:    name,
			MapName: ss.MapName,
			X:       ss.X,
			Y:       ss.Y,
			Color:   ss.Color,
		}
	} else {
		mapName, spawnX, spawnY := gl.world.SpawnPoint()
		player = &Player{
			ID:      id,
			Name:    name,
			MapName: mapName,
			X:       spawnX,
			Y:       spawnY,
			Color:   NextPlayerColor(),
		}
	}

	gl.players[id] = player
	ch := make(RenderChan, 2)
	gl.renderChans[id] = ch
	return id, ch
}

// RemovePlayer saves the player's state and unregisters them.
func (gl *GameLoop) RemovePlayer(id string) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	if p, ok := gl.players[id]; ok {
		gl.saved[p.Name] = savedState{MapName: p.MapName, X: p.X, Y: p.Y, Color: p.Color}
		delete(gl.players, id)
	}
	if ch, ok := gl.renderChans[id]; ok {
		close(ch)
		delete(gl.renderChans, id)
	}
}

// Run starts the game loop. Blocks until Stop is called.
func (gl *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-gl.stopCh:
			return
		case <-ticker.C:
			gl.tick()
		}
	}
}

// Stop shuts down the game loop.
func (gl *GameLoop) Stop() {
	close(gl.stopCh)
}

func (gl *GameLoop) tick() {
	// Drain all pending input events
	for {
		select {
		case ev := <-gl.inputCh:
			gl.processInput(ev)
		default:
			goto drained
		}
	}
drained:

	gl.tickCount++

	gl.mu.RLock()
	for _, p := range gl.players {
		if p.moveCooldown > 0 {
			p.moveCooldown--
		}
	}

	// Build snapshot and broadcast
	state := GameState{
		Players: make([]PlayerSnapshot, 0, len(gl.players)),
		Tick:    gl.tickCount,
	}
	for _, p := range gl.players {
		state.Players = append(state.Players, p.Snapshot())
	}

	// Non-blocking send to each render channel
	for _, ch := range gl.renderChans {
		select {
		case ch <- state:
		default:
			// Drop frame for slow client
		}
	}
	gl.mu.RUnlock()
}

func (gl *GameLoop) processInput(ev InputEvent) {
	gl.mu.RLock()
	player, ok := gl.players[ev.PlayerID]
	gl.mu.RUnlock()
	if !ok {
		return
	}

	newX, newY := player.X, player.Y
	switch ev.Action {
	case ActionUp:
		player.Dir = DirUp
		newY--
	case ActionDown:
		player.Dir = DirDown
		newY++
	case ActionLeft:
		player.Dir = DirLeft
		newX--
	case ActionRight:
		player.Dir = DirRight
		newX++
	default:
		return
	}

	if player.moveCooldown > 0 {
		return
	}
	if !gl.world.CanMoveTo(player.MapName, newX, newY) {
		return
	}
	player.X = newX
	player.Y = newY
	player.moveCooldown = MoveRepeatDelay

	// Portal traversal happens on arrival, not on the tile being stepped off.
	if portal := gl.world.PortalAt(player.MapName, newX, newY); portal != nil {
		if gl.world.GetMap(portal.TargetMap) != nil {
			player.MapName = portal.TargetMap
			player.X = portal.TargetX
			player.Y = portal.TargetY
		}
	}
}
