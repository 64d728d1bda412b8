package server

import (
	"testing"

	"mossvale/internal/game"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []game.Action
	}{
		{"wasd", []byte("wasd"), []game.Action{game.ActionUp, game.ActionLeft, game.ActionDown, game.ActionRight}},
		{"uppercase", []byte("W"), []game.Action{game.ActionUp}},
		{"arrow up", []byte{0x1b, '[', 'A'}, []game.Action{game.ActionUp}},
		{"arrow right", []byte{0x1b, '[', 'C'}, []game.Action{game.ActionRight}},
		{"quit", []byte("q"), []game.Action{game.ActionQuit}},
		{"ctrl-c", []byte{3}, []game.Action{game.ActionQuit}},
		{"mixed with noise", []byte("x w"), []game.Action{game.ActionUp}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseInput(tt.data)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("action %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
