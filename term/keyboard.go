package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"wirestrike/sim"
)

var _ sim.Input = (*Keyboard)(nil)

// DefaultHoldTicks covers the usual gap between a key press and the
// terminal's first auto-repeat
const DefaultHoldTicks = 30

// DefaultKeymap is the classic layout
func DefaultKeymap() map[rune]sim.Key {
	return map[rune]sim.Key{
		'q': sim.KeyMoveUp,
		'e': sim.KeyMoveDown,
		'w': sim.KeyMoveForward,
		's': sim.KeyMoveBack,
		'a': sim.KeyMoveLeft,
		'd': sim.KeyMoveRight,
		'i': sim.KeyPitchUp,
		'k': sim.KeyPitchDown,
		'j': sim.KeyYawLeft,
		'l': sim.KeyYawRight,
		'u': sim.KeyRollLeft,
		'o': sim.KeyRollRight,
		' ': sim.KeyFire,
	}
}

// Keyboard turns terminal key events into held keys. Terminals report
// presses and auto-repeats but never releases, so a key counts as held for
// HoldTicks ticks after its last event.
type Keyboard struct {
	HoldTicks int

	keymap map[rune]sim.Key
	hold   map[sim.Key]int
}

// NewKeyboard creates a keyboard with keymap, or DefaultKeymap when nil
func NewKeyboard(keymap map[rune]sim.Key) *Keyboard {
	if keymap == nil {
		keymap = DefaultKeymap()
	}
	return &Keyboard{
		HoldTicks: DefaultHoldTicks,
		keymap:    keymap,
		hold:      make(map[sim.Key]int),
	}
}

// HandleKey records a key event and reports the logical key it mapped to
func (k *Keyboard) HandleKey(ev *tcell.EventKey) (sim.Key, bool) {
	if ev.Key() != tcell.KeyRune {
		return 0, false
	}
	key, ok := k.keymap[unicode.ToLower(ev.Rune())]
	if !ok {
		return 0, false
	}
	k.hold[key] = k.HoldTicks
	return key, true
}

// Held implements sim.Input
func (k *Keyboard) Held(key sim.Key) bool {
	return k.hold[key] > 0
}

// Advance ages every held key by one tick
func (k *Keyboard) Advance() {
	for key, n := range k.hold {
		if n <= 1 {
			delete(k.hold, key)
			continue
		}
		k.hold[key] = n - 1
	}
}

// Release forgets every held key
func (k *Keyboard) Release() {
	clear(k.hold)
}
