package level

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SkaillZ/complementary/render/core"
)

type particle struct {
	position mgl32.Vec2
	velocity mgl32.Vec2
	lifetime int32
}

// Emitter spawns short-lived particles around a point. All timing is in
// fixed ticks; velocities are in world units per tick.
type Emitter struct {
	Position mgl32.Vec2

	data emitterData

	playing            bool
	age                int32
	ticksUntilEmission int32
	particles          []particle
	rng                *rand.Rand
}

func newEmitter(position mgl32.Vec2, data emitterData) *Emitter {
	return &Emitter{
		Position:  position,
		data:      data,
		playing:   data.PlayOnSpawn,
		particles: make([]particle, 0, 128),
		rng:       rand.New(rand.NewSource(int64(len(data.ParticleType)) + int64(position.X()*31) + int64(position.Y()*17))),
	}
}

// Play restarts the emitter from the beginning of its duration.
func (e *Emitter) Play() {
	e.playing = true
	e.age = 0
	e.ticksUntilEmission = 0
}

func (e *Emitter) randRange(min, max int32) int32 {
	if max <= min {
		return min
	}
	return min + e.rng.Int31n(max-min+1)
}

func (e *Emitter) randRangeF(min, max float32) float32 {
	if max <= min {
		return min
	}
	return min + e.rng.Float32()*(max-min)
}

func (e *Emitter) Tick() {
	if e.playing {
		e.age++
		if e.data.Duration > 0 && e.age > e.data.Duration {
			e.playing = false
			if e.data.DestroyOnEnd {
				e.particles = e.particles[:0]
			}
		}
	}

	if e.playing {
		e.ticksUntilEmission--
		if e.ticksUntilEmission <= 0 {
			e.emit()
			e.ticksUntilEmission = e.randRange(e.data.MinEmissionInterval, e.data.MaxEmissionInterval)
		}
	}

	alive := e.particles[:0]
	for _, p := range e.particles {
		p.lifetime++
		if p.lifetime >= e.data.MaxLifeTime {
			continue
		}
		p.velocity = p.velocity.Add(mgl32.Vec2{0, e.data.Gravity})
		p.position = p.position.Add(p.velocity)
		alive = append(alive, p)
	}
	e.particles = alive
}

func (e *Emitter) emit() {
	count := e.randRange(e.data.MinEmissionRate, e.data.MaxEmissionRate)
	for i := int32(0); i < count; i++ {
		e.particles = append(e.particles, particle{
			position: e.Position,
			velocity: mgl32.Vec2{
				e.randRangeF(e.data.MinStartVelocity.X, e.data.MaxStartVelocity.X),
				e.randRangeF(e.data.MinStartVelocity.Y, e.data.MaxStartVelocity.Y),
			},
		})
	}
}

// ParticleCount reports how many particles are currently alive.
func (e *Emitter) ParticleCount() int { return len(e.particles) }

// AppendInstances appends draw data for every live particle. The particle
// color interpolates from the start to the end color over its lifetime and
// optionally inverts in the dark world.
func (e *Emitter) AppendInstances(dst []core.ParticleInstance, world core.WorldType) []core.ParticleInstance {
	for _, p := range e.particles {
		t := float32(0)
		if e.data.MaxLifeTime > 0 {
			t = float32(p.lifetime) / float32(e.data.MaxLifeTime)
		}
		color := lerpColor(e.data.StartColor, e.data.EndColor, t)
		if e.data.AutoInvertColor && world == core.WorldDark {
			color = color.Inverted().WithAlpha(color.A)
		}
		dst = append(dst, core.ParticleInstance{
			Color:    color,
			Position: [2]float32{p.position.X(), p.position.Y()},
		})
	}
	return dst
}

func lerpColor(a, b colorJSON, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
