package tilemap

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTilemap(t *testing.T, width, height int32, tiles []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("CMTM")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, width))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, height))
	buf.Write(tiles)
	return buf.Bytes()
}

func TestRead(t *testing.T) {
	raw := encodeTilemap(t, 3, 2, []byte{
		byte(TileAir), byte(TileSolid), byte(TileSpikesUp),
		byte(TileSpawnPoint), byte(TileGoalLeft), byte(TileSpikeAllSides),
	})

	m, err := Read(bytes.NewReader(raw))
	require.NoError(t, err)

	assert.Equal(t, int32(3), m.Width())
	assert.Equal(t, int32(2), m.Height())
	assert.Equal(t, TileAir, m.Get(0, 0))
	assert.Equal(t, TileSolid, m.Get(1, 0))
	assert.Equal(t, TileSpikesUp, m.Get(2, 0))
	assert.Equal(t, TileSpawnPoint, m.Get(0, 1))
	assert.Equal(t, TileGoalLeft, m.Get(1, 1))
	assert.Equal(t, TileSpikeAllSides, m.Get(2, 1))
}

func TestRead_UnknownTilesDecodeAsAir(t *testing.T) {
	raw := encodeTilemap(t, 2, 1, []byte{200, byte(TileSolid)})

	m, err := Read(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, TileAir, m.Get(0, 0))
	assert.Equal(t, TileSolid, m.Get(1, 0))
}

func TestRead_RejectsBadMagic(t *testing.T) {
	raw := encodeTilemap(t, 1, 1, []byte{0})
	raw[0] = 'X'

	_, err := Read(bytes.NewReader(raw))
	assert.True(t, errors.Is(err, ErrInvalidMagic))
}

func TestRead_RejectsInvalidDimensions(t *testing.T) {
	raw := encodeTilemap(t, -4, 2, nil)
	_, err := Read(bytes.NewReader(raw))
	assert.Error(t, err)

	raw = encodeTilemap(t, 2, 0, nil)
	_, err = Read(bytes.NewReader(raw))
	assert.Error(t, err)
}

func TestRead_TruncatedTiles(t *testing.T) {
	raw := encodeTilemap(t, 4, 4, []byte{0, 0, 0})
	_, err := Read(bytes.NewReader(raw))
	assert.Error(t, err)
}

func TestSpawnPoint(t *testing.T) {
	m := New(3, 3)
	_, ok := m.SpawnPoint()
	assert.False(t, ok)

	m.Set(2, 1, TileSpawnPoint)
	pos, ok := m.SpawnPoint()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec2{2, 1}, pos)
}

func TestTile_Solidity(t *testing.T) {
	assert.False(t, TileAir.Solid())
	assert.False(t, TileSpawnPoint.Solid())
	assert.False(t, TileGoalUp.Solid())

	assert.True(t, TileSolid.Solid())
	assert.True(t, TileSpikesLeft.Solid())
	assert.True(t, TileSpikeAllSides.Solid())

	// Spikes are solid but don't count as wall.
	assert.True(t, TileSolid.Wall())
	assert.False(t, TileSpikesLeft.Wall())
}
