package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"wirestrike/sim"
)

var _ sim.Input = (*KeyboardInput)(nil)

// Keymap binds each logical key to one or more physical keys
type Keymap map[sim.Key][]ebiten.Key

// DefaultKeymap returns the classic QWE/ASD/UIO/JKL layout. Arrow keys
// double as pitch and yaw.
func DefaultKeymap() Keymap {
	return Keymap{
		sim.KeyMoveUp:      {ebiten.KeyQ},
		sim.KeyMoveDown:    {ebiten.KeyE},
		sim.KeyMoveForward: {ebiten.KeyW},
		sim.KeyMoveBack:    {ebiten.KeyS},
		sim.KeyMoveLeft:    {ebiten.KeyA},
		sim.KeyMoveRight:   {ebiten.KeyD},
		sim.KeyPitchUp:     {ebiten.KeyI, ebiten.KeyArrowUp},
		sim.KeyPitchDown:   {ebiten.KeyK, ebiten.KeyArrowDown},
		sim.KeyYawLeft:     {ebiten.KeyJ, ebiten.KeyArrowLeft},
		sim.KeyYawRight:    {ebiten.KeyL, ebiten.KeyArrowRight},
		sim.KeyRollLeft:    {ebiten.KeyU},
		sim.KeyRollRight:   {ebiten.KeyO},
		sim.KeyFire:        {ebiten.KeySpace},
	}
}

// KeyboardInput reads held keys from ebiten
type KeyboardInput struct {
	keymap Keymap
}

// NewKeyboardInput creates a keyboard input with keymap, or the default
// layout when nil
func NewKeyboardInput(keymap Keymap) *KeyboardInput {
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	return &KeyboardInput{keymap: keymap}
}

// Held reports whether any physical key bound to k is pressed
func (in *KeyboardInput) Held(k sim.Key) bool {
	for _, key := range in.keymap[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}
