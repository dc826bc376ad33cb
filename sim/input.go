package sim

// Key is a logical control, independent of any physical keyboard layout.
type Key int

const (
	KeyMoveUp Key = iota
	KeyMoveDown
	KeyMoveForward
	KeyMoveBack
	KeyMoveLeft
	KeyMoveRight
	KeyPitchUp
	KeyPitchDown
	KeyYawLeft
	KeyYawRight
	KeyRollLeft
	KeyRollRight
	KeyFire
	keyCount
)

var keyNames = [...]string{
	KeyMoveUp:      "move-up",
	KeyMoveDown:    "move-down",
	KeyMoveForward: "move-forward",
	KeyMoveBack:    "move-back",
	KeyMoveLeft:    "move-left",
	KeyMoveRight:   "move-right",
	KeyPitchUp:     "pitch-up",
	KeyPitchDown:   "pitch-down",
	KeyYawLeft:     "yaw-left",
	KeyYawRight:    "yaw-right",
	KeyRollLeft:    "roll-left",
	KeyRollRight:   "roll-right",
	KeyFire:        "fire",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// AllKeys returns every logical key
func AllKeys() []Key {
	keys := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		keys = append(keys, k)
	}
	return keys
}

// Input reports which keys are held during the current frame
type Input interface {
	Held(k Key) bool
}

// KeySet is a map-backed Input
type KeySet map[Key]bool

// NewKeySet returns a set with the given keys held
func NewKeySet(keys ...Key) KeySet {
	ks := make(KeySet, len(keys))
	for _, k := range keys {
		ks[k] = true
	}
	return ks
}

func (ks KeySet) Held(k Key) bool {
	return ks[k]
}

// NoInput holds nothing
var NoInput Input = KeySet(nil)
