// Package tilemap holds the static tile grid of a level and bakes it into
// the flattened colored-vertex geometry the tile layer renders from.
package tilemap

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/SkaillZ/complementary/render/core"
)

type Tile uint8

const (
	TileAir Tile = iota
	TileSolid

	TileSpikesLeft
	TileSpikesRight
	TileSpikesUp
	TileSpikesDown

	TileSpawnPoint

	TileGoalLeft
	TileGoalRight
	TileGoalUp
	TileGoalDown

	TileSpikeAllSides

	tileCount
)

// Solid reports whether the tile blocks movement.
func (t Tile) Solid() bool {
	switch t {
	case TileSolid, TileSpikesLeft, TileSpikesRight, TileSpikesUp, TileSpikesDown, TileSpikeAllSides:
		return true
	}
	return false
}

// Wall reports whether the tile is plain solid wall (relevant for wall-jump
// checks, spikes don't count).
func (t Tile) Wall() bool {
	return t == TileSolid
}

// Color is the tile's baked vertex color in the light world.
func (t Tile) Color() core.Color {
	switch t {
	case TileAir:
		return core.ColorWhite
	case TileSpawnPoint:
		return core.ColorGreen
	case TileGoalLeft, TileGoalRight, TileGoalUp, TileGoalDown:
		return core.ColorOrange
	case TileSpikeAllSides:
		return core.ColorRed
	default:
		return core.ColorBlack
	}
}

// Tilemap is the immutable-size tile grid of one level.
type Tilemap struct {
	width  int32
	height int32
	tiles  []Tile
}

func New(width, height int32) *Tilemap {
	if width <= 0 || height <= 0 {
		panic("tilemap dimensions must be positive")
	}
	return &Tilemap{
		width:  width,
		height: height,
		tiles:  make([]Tile, width*height),
	}
}

func (m *Tilemap) Width() int32  { return m.width }
func (m *Tilemap) Height() int32 { return m.height }

func (m *Tilemap) Get(x, y int32) Tile {
	return m.tiles[m.width*y+x]
}

func (m *Tilemap) Set(x, y int32, tile Tile) {
	m.tiles[m.width*y+x] = tile
}

// SpawnPoint returns the position of the first spawn-point tile in scan
// order, if any.
func (m *Tilemap) SpawnPoint() (mgl32.Vec2, bool) {
	for y := int32(0); y < m.height; y++ {
		for x := int32(0); x < m.width; x++ {
			if m.Get(x, y) == TileSpawnPoint {
				return mgl32.Vec2{float32(x), float32(y)}, true
			}
		}
	}
	return mgl32.Vec2{}, false
}

// tilemapMagic identifies the binary tilemap format ("CMTM", little-endian
// i32 width and height, then width*height tile bytes).
var tilemapMagic = [4]byte{'C', 'M', 'T', 'M'}

// ErrInvalidMagic is returned when the input is not a tilemap file.
var ErrInvalidMagic = errors.New("invalid tilemap file magic")

// Read parses the binary tilemap format. Unknown tile bytes decode as air,
// so maps from newer editors still load.
func Read(r io.Reader) (*Tilemap, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("failed to read tilemap header: %w", err)
	}
	if magic != tilemapMagic {
		return nil, ErrInvalidMagic
	}

	var width, height int32
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, fmt.Errorf("failed to read tilemap width: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &height); err != nil {
		return nil, fmt.Errorf("failed to read tilemap height: %w", err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid tilemap dimensions %dx%d", width, height)
	}

	bytes := make([]byte, int(width)*int(height))
	if _, err := io.ReadFull(r, bytes); err != nil {
		return nil, fmt.Errorf("failed to read %d tiles: %w", len(bytes), err)
	}

	m := New(width, height)
	for i, b := range bytes {
		tile := Tile(b)
		if tile >= tileCount {
			tile = TileAir
		}
		m.tiles[i] = tile
	}
	return m, nil
}

// Load reads a tilemap from disk.
func Load(path string) (*Tilemap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
