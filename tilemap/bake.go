package tilemap

import (
	"github.com/SkaillZ/complementary/render/core"
)

// Baking turns the tile grid into one flat colored-vertex buffer, uploaded
// once per level. Solid tiles become quads; spike tiles white quads with
// triangular spikes layered on top. Spike shapes depend on which sides
// carry spikes, merging diagonally where two directions meet.

const (
	spikeInset = 0.1
	spikeSpan  = 0.7
)

type vertexList struct {
	vertices []core.ColoredVertex
}

func (l *vertexList) push(x, y float32, color core.Color) {
	l.vertices = append(l.vertices, core.ColoredVertex{Pos: [2]float32{x, y}, Color: color})
}

func (l *vertexList) rect(minX, minY, maxX, maxY float32, color core.Color) {
	l.push(minX, maxY, color)
	l.push(minX, minY, color)
	l.push(maxX, maxY, color)
	l.push(maxX, maxY, color)
	l.push(minX, minY, color)
	l.push(maxX, minY, color)
}

func (l *vertexList) triangle(x0, y0, x1, y1, x2, y2 float32, color core.Color) {
	l.push(x0, y0, color)
	l.push(x1, y1, color)
	l.push(x2, y2, color)
}

// BakeVertices flattens the whole grid. The result feeds a static vertex
// buffer; it is not retained by this package.
func BakeVertices(m *Tilemap) []core.ColoredVertex {
	list := &vertexList{vertices: make([]core.ColoredVertex, 0, 5000)}

	for y := int32(0); y < m.Height(); y++ {
		for x := int32(0); x < m.Width(); x++ {
			tile := m.Get(x, y)
			fx, fy := float32(x), float32(y)

			switch tile {
			case TileSpikesLeft:
				appendSpikeTile(list, fx, fy, tile.Color(), true, false, false, false)
			case TileSpikesRight:
				appendSpikeTile(list, fx, fy, tile.Color(), false, true, false, false)
			case TileSpikesUp:
				appendSpikeTile(list, fx, fy, tile.Color(), false, false, true, false)
			case TileSpikesDown:
				appendSpikeTile(list, fx, fy, tile.Color(), false, false, false, true)
			case TileSpikeAllSides:
				appendSpikeTile(list, fx, fy, tile.Color(), true, true, true, true)
			default:
				list.rect(fx, fy, fx+1, fy+1, tile.Color())
			}
		}
	}

	return list.vertices
}

func appendSpikeTile(list *vertexList, x, y float32, color core.Color, left, right, up, down bool) {
	list.rect(x, y, x+1, y+1, core.ColorWhite)

	tri := func(x0, y0, x1, y1, x2, y2 float32) {
		list.triangle(x+x0, y+y0, x+x1, y+y1, x+x2, y+y2, color)
	}
	rect := func(rx, ry, w, h float32) {
		list.rect(x+rx, y+ry, x+rx+w, y+ry+h, color)
	}

	const s = spikeInset
	const ss = spikeSpan

	// Top-left quadrant.
	switch {
	case left && !up:
		tri(0.5-s, 0.0, 0.0, 0.25, 0.5-s, 0.5)
		rect(0.5-s, 0.0, s, 0.5)
	case !left && up:
		tri(0.0, 0.5-s, 0.25, 0.0, 0.5, 0.5-s)
		rect(0.0, 0.5-s, 0.5, s)
	case left && up:
		tri(0.0, 0.0, ss, 0.5-s, 0.5-s, ss)
	default:
		rect(0.0, 0.0, 0.5, 0.5)
	}

	// Top-right quadrant.
	switch {
	case right && !up:
		tri(0.5+s, 0.0, 1.0, 0.25, 0.5+s, 0.5)
		rect(0.5, 0.0, s, 0.5)
	case !right && up:
		tri(0.5, 0.5-s, 0.75, 0.0, 1.0, 0.5-s)
		rect(0.5, 0.5-s, 0.5, s)
	case right && up:
		tri(1.0, 0.0, 1.0-ss, 0.5-s, 0.5+s, ss)
	default:
		rect(0.5, 0.0, 0.5, 0.5)
	}

	// Bottom-left quadrant.
	switch {
	case left && !down:
		tri(0.5-s, 0.5, 0.0, 0.75, 0.5-s, 1.0)
		rect(0.5-s, 0.5, s, 0.5)
	case !left && down:
		tri(0.0, 0.5+s, 0.25, 1.0, 0.5, 0.5+s)
		rect(0.0, 0.5, 0.5, s)
	case left && down:
		tri(0.0, 1.0, 0.5-s, 1.0-ss, ss, 0.5+s)
	default:
		rect(0.0, 0.5, 0.5, 0.5)
	}

	// Bottom-right quadrant.
	switch {
	case right && !down:
		tri(0.5+s, 0.5, 1.0, 0.75, 0.5+s, 1.0)
		rect(0.5, 0.5, s, 0.5)
	case !right && down:
		tri(0.5, 0.5+s, 0.75, 1.0, 1.0, 0.5+s)
		rect(0.5, 0.5, 0.5, s)
	case right && down:
		tri(1.0, 1.0, 0.5-s, ss, 0.5+s, 1.0-ss)
	default:
		rect(0.5, 0.5, 0.5, 0.5)
	}
}
