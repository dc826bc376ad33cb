package sim

// Resolver handles projectile hits: detonating on nearby ships or moving the
// bolt forward when nothing is in range.
type Resolver struct {
	radius          float64
	speed           float64
	effectCountdown int
}

// NewResolver creates a resolver from cfg
func NewResolver(cfg Config) *Resolver {
	return &Resolver{
		radius:          cfg.ExplosionRadius,
		speed:           cfg.LaserSpeed,
		effectCountdown: cfg.EffectCountdown,
	}
}

// Resolve runs one projectile against the world and returns the number of
// ships it destroyed. Removals and the explosion spawn are deferred to the
// world's next Commit.
func (r *Resolver) Resolve(w *World, p *Projectile) int {
	tip := p.Tip()

	var hits []*Ship
	w.Each(func(e Entity) {
		if s, ok := e.(*Ship); ok && s.Nose().DistanceTo(tip) < r.radius {
			hits = append(hits, s)
		}
	})

	if len(hits) == 0 {
		step := p.Direction().Mul(r.speed)
		p.Translate(step[0], step[1], step[2])
		return 0
	}

	w.Remove(p)
	for _, s := range hits {
		w.Remove(s)
	}
	w.Add(NewEffect(tip, r.radius, r.effectCountdown))
	return len(hits)
}
