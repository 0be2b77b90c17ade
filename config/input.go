package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical game action.
type ActionID int

const (
	ActionMoveLeft ActionID = iota
	ActionMoveRight
	ActionLookUp
	ActionLookDown
	ActionJump
	ActionCount // Must be last - used for array sizing
)

// InputConfig maps logical actions to keyboard keys.
type InputConfig struct {
	Bindings map[ActionID][]ebiten.Key
}

// Input is the global input configuration.
var Input InputConfig

func init() {
	Input = InputConfig{
		Bindings: map[ActionID][]ebiten.Key{
			ActionMoveLeft:  {ebiten.KeyLeft, ebiten.KeyA},
			ActionMoveRight: {ebiten.KeyRight, ebiten.KeyD},
			ActionLookUp:    {ebiten.KeyUp, ebiten.KeyW},
			ActionLookDown:  {ebiten.KeyDown, ebiten.KeyS},
			ActionJump:      {ebiten.KeyZ, ebiten.KeySpace},
		},
	}
}
