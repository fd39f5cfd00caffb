package level

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkaillZ/complementary/render/core"
)

func testEmitterData() emitterData {
	return emitterData{
		Duration:            0,
		ParticleType:        "Diamond",
		MinEmissionInterval: 10,
		MaxEmissionInterval: 10,
		MinEmissionRate:     3,
		MaxEmissionRate:     3,
		MinStartVelocity:    vec2JSON{X: 0.1, Y: -0.2},
		MaxStartVelocity:    vec2JSON{X: 0.1, Y: -0.2},
		Gravity:             0.01,
		MaxLifeTime:         20,
		StartColor:          colorJSON{R: 1, G: 0, B: 0, A: 1},
		EndColor:            colorJSON{R: 0, G: 0, B: 1, A: 0},
		PlayOnSpawn:         true,
	}
}

func TestEmitter_EmitsOnSchedule(t *testing.T) {
	e := newEmitter(mgl32.Vec2{5, 5}, testEmitterData())

	// First tick emits immediately, then the interval gates emission.
	e.Tick()
	assert.Equal(t, 3, e.ParticleCount())

	for i := 0; i < 9; i++ {
		e.Tick()
	}
	assert.Equal(t, 3, e.ParticleCount())

	e.Tick()
	assert.Equal(t, 6, e.ParticleCount())
}

func TestEmitter_ParticlesExpire(t *testing.T) {
	data := testEmitterData()
	data.MinEmissionInterval = 1000
	data.MaxEmissionInterval = 1000
	e := newEmitter(mgl32.Vec2{}, data)

	e.Tick()
	require.Equal(t, 3, e.ParticleCount())

	for i := 0; i < int(data.MaxLifeTime); i++ {
		e.Tick()
	}
	assert.Zero(t, e.ParticleCount())
}

func TestEmitter_NotPlayingWithoutPlayOnSpawn(t *testing.T) {
	data := testEmitterData()
	data.PlayOnSpawn = false
	e := newEmitter(mgl32.Vec2{}, data)

	for i := 0; i < 50; i++ {
		e.Tick()
	}
	assert.Zero(t, e.ParticleCount())

	e.Play()
	e.Tick()
	assert.Equal(t, 3, e.ParticleCount())
}

func TestEmitter_InstanceColorLerp(t *testing.T) {
	data := testEmitterData()
	data.MinEmissionInterval = 1000
	data.MaxEmissionInterval = 1000
	e := newEmitter(mgl32.Vec2{}, data)

	e.Tick()
	fresh := e.AppendInstances(nil, core.WorldLight)
	require.Len(t, fresh, 3)
	// One tick old out of 20: still nearly the start color.
	assert.InDelta(t, 0.95, fresh[0].Color.R, 1e-6)
	assert.InDelta(t, 0.05, fresh[0].Color.B, 1e-6)

	for i := 0; i < 9; i++ {
		e.Tick()
	}
	aged := e.AppendInstances(nil, core.WorldLight)
	require.Len(t, aged, 3)
	assert.InDelta(t, 0.5, aged[0].Color.R, 1e-6)
	assert.InDelta(t, 0.5, aged[0].Color.B, 1e-6)
	assert.InDelta(t, 0.5, aged[0].Color.A, 1e-6)
}

func TestEmitter_AutoInvertOnlyInDarkWorld(t *testing.T) {
	data := testEmitterData()
	data.AutoInvertColor = true
	data.MinEmissionInterval = 1000
	data.MaxEmissionInterval = 1000
	e := newEmitter(mgl32.Vec2{}, data)
	e.Tick()

	light := e.AppendInstances(nil, core.WorldLight)
	dark := e.AppendInstances(nil, core.WorldDark)
	require.Len(t, light, 3)
	require.Len(t, dark, 3)

	assert.InDelta(t, 1.0-light[0].Color.R, dark[0].Color.R, 1e-6)
	assert.InDelta(t, 1.0-light[0].Color.B, dark[0].Color.B, 1e-6)
	// Alpha is preserved by the inversion.
	assert.Equal(t, light[0].Color.A, dark[0].Color.A)
}
