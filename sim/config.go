package sim

import (
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the simulation. Distances are world units,
// rates are per tick and angles are radians.
type Config struct {
	// RenderDistance is the far bound of the visible depth range
	RenderDistance float64 `yaml:"render_distance"`

	// ProjectionScale is the pinhole projection distance in surface units.
	// Hosts normally overwrite it with the smaller surface dimension.
	ProjectionScale float64 `yaml:"projection_scale"`

	// MoveAccel is the translational quantum added per held key per tick
	MoveAccel float64 `yaml:"move_accel"`

	// TurnAccel is the rotational quantum added per held key per tick
	TurnAccel float64 `yaml:"turn_accel"`

	// MaxMove caps each translational axis of the player buffer
	MaxMove float64 `yaml:"max_move"`

	// MaxTurn caps each rotational axis of the player buffer
	MaxTurn float64 `yaml:"max_turn"`

	// DampRatio is the fraction of an axis quantum removed every tick
	DampRatio float64 `yaml:"damp_ratio"`

	// Deadzone is the magnitude below which a buffer axis snaps to zero
	Deadzone float64 `yaml:"deadzone"`

	// EnemySpeed scales a ship's heading into its per-tick translation
	EnemySpeed float64 `yaml:"enemy_speed"`

	// TurnStep is the fixed corrective turn applied by steering behaviors
	TurnStep float64 `yaml:"turn_step"`

	// Deadband is the tolerance inside which steering applies no correction
	Deadband float64 `yaml:"deadband"`

	// Jitter is the width of the uniform noise added to pursuit turns
	Jitter float64 `yaml:"jitter"`

	// Roll is the constant roll rate of pursuing ships
	Roll float64 `yaml:"roll"`

	// ExplosionRadius is both the hit radius and the effect radius
	ExplosionRadius float64 `yaml:"explosion_radius"`

	// EffectCountdown is the lifetime in ticks of an explosion effect
	EffectCountdown int `yaml:"effect_countdown"`

	// LaserSpeed is the number of laser lengths a projectile advances per tick
	LaserSpeed float64 `yaml:"laser_speed"`

	// LaserLength is the length of the projectile's centre segment
	LaserLength float64 `yaml:"laser_length"`

	// LaserSplay is the offset of the four decorative beam tails
	LaserSplay float64 `yaml:"laser_splay"`

	// LaserLifetime is the lifetime in ticks of a projectile
	LaserLifetime int `yaml:"laser_lifetime"`

	// FireCooldown is the number of ticks between shots
	FireCooldown int `yaml:"fire_cooldown"`

	// RamDistance is how close a ship's nose may come before the player loses
	RamDistance float64 `yaml:"ram_distance"`

	// StarCount is the number of background stars
	StarCount int `yaml:"star_count"`

	// WorldSpan is the edge length of the cube stars and ships spawn in
	WorldSpan float64 `yaml:"world_span"`

	// ShipSize is the nose-to-tail length of a ship
	ShipSize float64 `yaml:"ship_size"`

	// SpawnClearance keeps freshly spawned ships at least this far from the player
	SpawnClearance float64 `yaml:"spawn_clearance"`

	// EnemyCount is the number of ships hosts spawn when no count is given
	EnemyCount int `yaml:"enemy_count"`

	// BehaviorMix weights the behavior assigned to each spawned ship
	BehaviorMix map[string]int `yaml:"behavior_mix"`
}

// DefaultConfig returns the classic tuning
func DefaultConfig() Config {
	const (
		moveAccel = 1e-2
		turnAccel = 1e-4 * math.Pi
		maxMove   = moveAccel * 20
		maxTurn   = turnAccel * 50
	)
	return Config{
		RenderDistance:  100,
		ProjectionScale: 768,
		MoveAccel:       moveAccel,
		TurnAccel:       turnAccel,
		MaxMove:         maxMove,
		MaxTurn:         maxTurn,
		DampRatio:       0.5,
		Deadzone:        1e-4,
		EnemySpeed:      maxMove * 1.5,
		TurnStep:        maxTurn,
		Deadband:        maxTurn,
		Jitter:          0.1,
		Roll:            0.01,
		ExplosionRadius: 2,
		EffectCountdown: 5,
		LaserSpeed:      5,
		LaserLength:     1,
		LaserSplay:      0.04,
		LaserLifetime:   60 * 5,
		FireCooldown:    100,
		RamDistance:     1,
		StarCount:       10000,
		WorldSpan:       100,
		ShipSize:        1,
		SpawnClearance:  5,
		EnemyCount:      100,
		BehaviorMix:     map[string]int{BehaviorPursueOrigin.String(): 1},
	}
}

// Validate rejects configurations the simulation cannot run with
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"render_distance", c.RenderDistance},
		{"projection_scale", c.ProjectionScale},
		{"move_accel", c.MoveAccel},
		{"turn_accel", c.TurnAccel},
		{"max_move", c.MaxMove},
		{"max_turn", c.MaxTurn},
		{"enemy_speed", c.EnemySpeed},
		{"turn_step", c.TurnStep},
		{"deadband", c.Deadband},
		{"explosion_radius", c.ExplosionRadius},
		{"laser_speed", c.LaserSpeed},
		{"laser_length", c.LaserLength},
		{"ram_distance", c.RamDistance},
		{"world_span", c.WorldSpan},
		{"ship_size", c.ShipSize},
		{"damp_ratio", c.DampRatio},
		{"enemy_count", float64(c.EnemyCount)},
		{"effect_countdown", float64(c.EffectCountdown)},
		{"laser_lifetime", float64(c.LaserLifetime)},
	}
	for _, p := range positive {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"deadzone", c.Deadzone},
		{"jitter", c.Jitter},
		{"laser_splay", c.LaserSplay},
		{"spawn_clearance", c.SpawnClearance},
		{"fire_cooldown", float64(c.FireCooldown)},
		{"star_count", float64(c.StarCount)},
	}
	for _, p := range nonNegative {
		if !(p.value >= 0) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}

	if c.TurnStep > c.Deadband {
		return fmt.Errorf("%w: turn_step %v exceeds deadband %v", ErrInvalidConfig, c.TurnStep, c.Deadband)
	}
	if math.Sqrt(3)*c.WorldSpan/2 <= c.SpawnClearance {
		return fmt.Errorf("%w: spawn_clearance %v leaves no room inside world_span %v",
			ErrInvalidConfig, c.SpawnClearance, c.WorldSpan)
	}

	total := 0
	for name, weight := range c.BehaviorMix {
		if _, err := ParseBehaviorKind(name); err != nil {
			return fmt.Errorf("%w: behavior_mix: %w", ErrInvalidConfig, err)
		}
		if weight < 0 {
			return fmt.Errorf("%w: behavior_mix weight for %s is negative", ErrInvalidConfig, name)
		}
		total += weight
	}
	if total == 0 {
		return fmt.Errorf("%w: behavior_mix has no positive weight", ErrInvalidConfig)
	}
	return nil
}

// LoadConfig overlays YAML from r on top of DefaultConfig and validates the
// result. Unknown keys are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	mix := cfg.BehaviorMix
	// a mix in the file replaces the default one instead of merging into it
	cfg.BehaviorMix = nil

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.BehaviorMix == nil {
		cfg.BehaviorMix = mix
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config from path
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}
