package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkaillZ/complementary/render/core"
)

func planKinds(plan []DrawStep) []PassKind {
	kinds := make([]PassKind, len(plan))
	for i, step := range plan {
		kinds[i] = step.Kind
	}
	return kinds
}

func TestBuildDrawPlan_FixedLayerOrder(t *testing.T) {
	want := []PassKind{PassTilemap, PassPlatforms, PassParticles, PassDoors, PassPlayer, PassText}

	snapshots := []*core.FrameSnapshot{
		{},
		{
			Platforms: make([]core.DoorInstance, 2),
			Doors:     make([]core.DoorInstance, 3),
			Particles: make([]core.ParticleInstance, 7),
			Texts:     []core.TextItem{{Text: "x"}},
		},
		{Doors: make([]core.DoorInstance, 1)},
		{Particles: make([]core.ParticleInstance, 1000)},
	}

	for _, snap := range snapshots {
		assert.Equal(t, want, planKinds(BuildDrawPlan(snap)))
	}
}

func TestBuildDrawPlan_SkipsEmptyInstancedLayers(t *testing.T) {
	plan := BuildDrawPlan(&core.FrameSnapshot{})
	require.Len(t, plan, 6)

	// Background and player always draw.
	assert.False(t, plan[0].Skip)
	assert.False(t, plan[4].Skip)

	// Instanced layers skip at zero count but keep their slot.
	assert.True(t, plan[1].Skip)
	assert.True(t, plan[2].Skip)
	assert.True(t, plan[3].Skip)
	assert.True(t, plan[5].Skip)
}

func TestBuildDrawPlan_InstanceCounts(t *testing.T) {
	snap := &core.FrameSnapshot{
		Platforms: make([]core.DoorInstance, 2),
		Doors:     make([]core.DoorInstance, 4),
		Particles: make([]core.ParticleInstance, 9),
	}
	plan := BuildDrawPlan(snap)

	assert.Equal(t, 2, plan[1].Instances)
	assert.Equal(t, 9, plan[2].Instances)
	assert.Equal(t, 4, plan[3].Instances)
	assert.Equal(t, 1, plan[0].Instances)
	assert.Equal(t, 1, plan[4].Instances)
	assert.False(t, plan[1].Skip)
	assert.False(t, plan[2].Skip)
	assert.False(t, plan[3].Skip)
}

func TestBuildDrawPlan_DebugPlayerKeepsLayerOrder(t *testing.T) {
	normal := BuildDrawPlan(&core.FrameSnapshot{})
	debug := BuildDrawPlan(&core.FrameSnapshot{
		Player: core.PlayerState{Debug: true},
	})

	// The hitbox-visualization variant swaps the pipeline, never the plan.
	assert.Equal(t, planKinds(normal), planKinds(debug))
	assert.Equal(t, normal[4].Skip, debug[4].Skip)
}
