package game

const TickRate = 20 // ticks per second

// SecsToTicks converts a duration in seconds to game ticks.
func SecsToTicks(s float64) int {
	t := int(s * TickRate)
	if t < 1 {
		t = 1
	}
	return t
}

// MoveRepeatDelay is the minimum ticks between moves when holding a key.
var MoveRepeatDelay = SecsToTicks(0.15)
