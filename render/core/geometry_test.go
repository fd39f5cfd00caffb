package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bounds(vertices []Vertex) (minX, minY, maxX, maxY float32) {
	minX, minY = vertices[0].Pos[0], vertices[0].Pos[1]
	maxX, maxY = minX, minY
	for _, v := range vertices[1:] {
		minX = min(minX, v.Pos[0])
		minY = min(minY, v.Pos[1])
		maxX = max(maxX, v.Pos[0])
		maxY = max(maxY, v.Pos[1])
	}
	return
}

func TestQuadVerticesSpanUnitSquare(t *testing.T) {
	require.Len(t, QuadVertices, 6)

	minX, minY, maxX, maxY := bounds(QuadVertices)
	assert.Equal(t, float32(0), minX)
	assert.Equal(t, float32(0), minY)
	assert.Equal(t, float32(1), maxX)
	assert.Equal(t, float32(1), maxY)
}

// Doors expand the unit quad by v*size+position per instance, so a door's
// world bounds follow directly from the quad span.
func TestDoorExpansionCoversInstanceBounds(t *testing.T) {
	position := [2]float32{5, 7}
	size := [2]float32{2, 3}

	expanded := make([]Vertex, len(QuadVertices))
	for i, v := range QuadVertices {
		expanded[i] = Vertex{Pos: [2]float32{
			v.Pos[0]*size[0] + position[0],
			v.Pos[1]*size[1] + position[1],
		}}
	}

	minX, minY, maxX, maxY := bounds(expanded)
	assert.Equal(t, float32(5), minX)
	assert.Equal(t, float32(7), minY)
	assert.Equal(t, float32(7), maxX)
	assert.Equal(t, float32(10), maxY)
}

// Particles translate the fixed diamond by the instance position without
// scaling, so the geometry stays inside a unit tile at any position.
func TestParticleTranslationKeepsFixedSize(t *testing.T) {
	position := [2]float32{-3, 12}

	translated := make([]Vertex, len(DiamondVertices))
	for i, v := range DiamondVertices {
		translated[i] = Vertex{Pos: [2]float32{
			v.Pos[0] + position[0],
			v.Pos[1] + position[1],
		}}
	}

	origMinX, origMinY, origMaxX, origMaxY := bounds(DiamondVertices)
	minX, minY, maxX, maxY := bounds(translated)
	assert.InDelta(t, origMaxX-origMinX, maxX-minX, 1e-6)
	assert.InDelta(t, origMaxY-origMinY, maxY-minY, 1e-6)
	assert.InDelta(t, position[0]+origMinX, minX, 1e-6)
	assert.InDelta(t, position[1]+origMinY, minY, 1e-6)
}

func TestPlayerVerticesCenteredOnOrigin(t *testing.T) {
	minX, minY, maxX, maxY := bounds(PlayerVertices)

	assert.Equal(t, -PlayerSize[0]/2, minX)
	assert.Equal(t, PlayerSize[0]/2, maxX)
	assert.Equal(t, float32(0), minY)
	assert.Equal(t, PlayerSize[1], maxY)
}
