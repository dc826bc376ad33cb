package sim

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// World holds every live entity. Spawns and removals requested while a pass
// is iterating are deferred: Add queues, Remove marks, and Commit applies
// both once the pass is over, so a pass visits each entity exactly once.
type World struct {
	entities []Entity
	pending  []Entity
	dirty    bool
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{}
}

// Add queues e for insertion at the next Commit
func (w *World) Add(e Entity) {
	w.pending = append(w.pending, e)
}

// Remove marks e for deletion at the next Commit. Marked entities are skipped
// by every iteration helper.
func (w *World) Remove(e Entity) {
	e.state().removed = true
	w.dirty = true
}

// Commit sweeps marked entities and appends queued spawns
func (w *World) Commit() {
	if w.dirty {
		live := w.entities[:0]
		for _, e := range w.entities {
			if !e.state().removed {
				live = append(live, e)
			}
		}
		for i := len(live); i < len(w.entities); i++ {
			w.entities[i] = nil
		}
		w.entities = live
		w.dirty = false
	}
	for _, e := range w.pending {
		if !e.state().removed {
			w.entities = append(w.entities, e)
		}
	}
	w.pending = w.pending[:0]
}

// Each calls fn for every committed entity not marked for removal
func (w *World) Each(fn func(Entity)) {
	for _, e := range w.entities {
		if !e.state().removed {
			fn(e)
		}
	}
}

// Ships returns the live ships
func (w *World) Ships() []*Ship {
	var ships []*Ship
	w.Each(func(e Entity) {
		if s, ok := e.(*Ship); ok {
			ships = append(ships, s)
		}
	})
	return ships
}

// Projectiles returns the live projectiles
func (w *World) Projectiles() []*Projectile {
	var out []*Projectile
	w.Each(func(e Entity) {
		if p, ok := e.(*Projectile); ok {
			out = append(out, p)
		}
	})
	return out
}

// Count returns the number of live entities of the given kind
func (w *World) Count(kind Kind) int {
	n := 0
	w.Each(func(e Entity) {
		if e.Kind() == kind {
			n++
		}
	})
	return n
}

// Len returns the number of live entities
func (w *World) Len() int {
	n := 0
	w.Each(func(Entity) { n++ })
	return n
}

// Translate moves every live entity
func (w *World) Translate(dx, dy, dz float64) {
	if dx == 0 && dy == 0 && dz == 0 {
		return
	}
	w.Each(func(e Entity) { e.Translate(dx, dy, dz) })
}

// Rotate rotates every live entity about the origin
func (w *World) Rotate(rx, ry, rz float64) {
	if rx == 0 && ry == 0 && rz == 0 {
		return
	}
	m := RotationMatrix(rx, ry, rz)
	w.Each(func(e Entity) { rotateEntity(e, m) })
}

// Draw draws every live entity
func (w *World) Draw(proj Projector, surface Surface) {
	w.Each(func(e Entity) { e.Draw(proj, surface) })
}

// Checksum digests the kind and coordinates of every live entity in order.
// Two worlds with the same checksum are, for practical purposes, identical.
func (w *World) Checksum() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)
	w.Each(func(e Entity) {
		buf = append(buf[:0], byte(e.Kind()))
		pointsOf(e, func(p Point) {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.X))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Y))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(p.Z))
		})
		if c := countdownOf(e); c != nil {
			buf = binary.LittleEndian.AppendUint64(buf, uint64(*c))
		}
		_, _ = d.Write(buf)
	})
	return d.Sum64()
}
