package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkaillZ/complementary/render/core"
)

func bakeSingle(tile Tile) []core.ColoredVertex {
	m := New(1, 1)
	m.Set(0, 0, tile)
	return BakeVertices(m)
}

func TestBakeVertices_SolidTilesAreOneQuad(t *testing.T) {
	for _, tile := range []Tile{TileAir, TileSolid, TileSpawnPoint, TileGoalDown} {
		vertices := bakeSingle(tile)
		require.Len(t, vertices, 6, "tile %d", tile)
		for _, v := range vertices {
			assert.Equal(t, tile.Color(), v.Color)
		}
	}
}

func TestBakeVertices_QuadCoversTile(t *testing.T) {
	m := New(3, 2)
	m.Set(2, 1, TileSolid)
	vertices := BakeVertices(m)

	// 6 tiles, all plain quads.
	require.Len(t, vertices, 6*6)

	// The last quad belongs to tile (2,1) and stays inside it.
	for _, v := range vertices[30:] {
		assert.GreaterOrEqual(t, v.Pos[0], float32(2))
		assert.LessOrEqual(t, v.Pos[0], float32(3))
		assert.GreaterOrEqual(t, v.Pos[1], float32(1))
		assert.LessOrEqual(t, v.Pos[1], float32(2))
		assert.Equal(t, core.ColorBlack, v.Color)
	}
}

func TestBakeVertices_DirectionalSpikeGeometry(t *testing.T) {
	// One spiked side: two quadrants get a triangle plus a back rect, the
	// two others stay solid quarters, all on a white base quad.
	for _, tile := range []Tile{TileSpikesLeft, TileSpikesRight, TileSpikesUp, TileSpikesDown} {
		vertices := bakeSingle(tile)
		assert.Len(t, vertices, 6+9+9+6+6, "tile %d", tile)

		for _, v := range vertices[:6] {
			assert.Equal(t, core.ColorWhite, v.Color)
		}
		for _, v := range vertices[6:] {
			assert.Equal(t, tile.Color(), v.Color)
		}
	}
}

func TestBakeVertices_AllSidesSpikeGeometry(t *testing.T) {
	// Every quadrant merges into a single diagonal triangle.
	vertices := bakeSingle(TileSpikeAllSides)
	require.Len(t, vertices, 6+4*3)

	for _, v := range vertices[6:] {
		assert.Equal(t, core.ColorRed, v.Color)
	}
}

func TestBakeVertices_SpikesStayInsideTile(t *testing.T) {
	m := New(3, 3)
	m.Set(1, 1, TileSpikeAllSides)
	vertices := BakeVertices(m)

	for _, v := range vertices {
		if v.Color == core.ColorRed {
			assert.GreaterOrEqual(t, v.Pos[0], float32(1))
			assert.LessOrEqual(t, v.Pos[0], float32(2))
			assert.GreaterOrEqual(t, v.Pos[1], float32(1))
			assert.LessOrEqual(t, v.Pos[1], float32(2))
		}
	}
}
