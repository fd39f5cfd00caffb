package complementary

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkaillZ/complementary/render/core"
	"github.com/SkaillZ/complementary/tilemap"
)

// writeMapFile writes a minimal room: a floor row at the bottom and a spawn
// point above it.
func writeMapFile(t *testing.T, path string) {
	t.Helper()
	const width, height = 6, 5
	tiles := make([]byte, width*height)
	for x := 0; x < width; x++ {
		tiles[(height-1)*width+x] = byte(tilemap.TileSolid)
	}
	tiles[2*width+2] = byte(tilemap.TileSpawnPoint)

	var buf bytes.Buffer
	buf.WriteString("CMTM")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(width)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, int32(height)))
	buf.Write(tiles)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func testGame(t *testing.T) *Game {
	t.Helper()
	dir := t.TempDir()
	writeMapFile(t, filepath.Join(dir, "map01.cmtm"))
	writeMapFile(t, filepath.Join(dir, "testarena.cmtm"))

	g, err := NewGame(NewNopLogger(), dir, false)
	require.NoError(t, err)
	return g
}

func TestNewGame_LoadsFirstMainLevel(t *testing.T) {
	// Only "map"-prefixed levels count as main levels.
	g := testGame(t)
	assert.Equal(t, "map01", g.Level().Name)
}

func TestNewGame_NoLevels(t *testing.T) {
	_, err := NewGame(NewNopLogger(), t.TempDir(), false)
	assert.Error(t, err)
}

func TestGame_SwitchTogglesWorldOnRisingEdge(t *testing.T) {
	g := testGame(t)

	changed, err := g.Tick(&Input{Switch: true})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, g.Snapshot(0).InvertColors)

	// Holding the button must not toggle again.
	_, err = g.Tick(&Input{Switch: true})
	require.NoError(t, err)
	assert.True(t, g.Snapshot(0).InvertColors)

	_, err = g.Tick(&Input{})
	require.NoError(t, err)
	_, err = g.Tick(&Input{Switch: true})
	require.NoError(t, err)
	assert.False(t, g.Snapshot(0).InvertColors)
}

func TestGame_SnapshotCarriesWorldState(t *testing.T) {
	g := testGame(t)
	snap := g.Snapshot(60)

	assert.Equal(t, core.WorldLight, snap.World)
	assert.False(t, snap.InvertColors)
	assert.Equal(t, core.WorldLight.ForegroundColor(), snap.Player.Tint)
	// Debug is off, so no HUD text.
	assert.Empty(t, snap.Texts)
}
