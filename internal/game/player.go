package game

// Action represents a player input action.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionQuit
)

// Direction the player is facing. Matches the renderer's encoding.
type Direction int

const (
	DirDown Direction = iota // default — face the camera
	DirUp
	DirLeft
	DirRight
)

// InputEvent carries a player action into the game loop.
type InputEvent struct {
	PlayerID string
	Action   Action
}

// Player holds the game state for a connected player.
type Player struct {
	ID      string
	Name    string
	MapName string
	X, Y    int
	Color   int // index into the render color palette
	Dir     Direction

	moveCooldown int // ticks until the next move is allowed
}

// PlayerSnapshot is a read-only copy of player state for rendering.
type PlayerSnapshot struct {
	ID      string
	Name    string
	MapName string
	X, Y    int
	Color   int
	Dir     Direction
}

// Snapshot returns a read-only copy of the player.
func (p *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		ID:      p.ID,
		Name:    p.Name,
		MapName: p.MapName,
		X:       p.X,
		Y:       p.Y,
		Color:   p.Color,
		Dir:     p.Dir,
	}
}

const numPlayerColors = 6

var colorIndex int

// NextPlayerColor returns the next color index from the rotating palette.
// Callers hold the game loop lock.
func NextPlayerColor() int {
	c := colorIndex % numPlayerColors
	colorIndex++
	return c
}
