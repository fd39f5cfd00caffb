package core

// Vertex is a bare 2D position, the vertex format shared by the quad based
// pipelines. Layout matches @location(0) vec2<f32> in the shaders.
type Vertex struct {
	Pos [2]float32
}

// ColoredVertex carries a per-vertex color in addition to the position, used
// by the pre-baked tile layer geometry.
type ColoredVertex struct {
	Pos   [2]float32
	Color Color
}

// QuadVertices is the unit quad spanning (0,0)..(1,1) as two CW triangles.
// Doors and the tile baking expand this quad per instance or per tile.
var QuadVertices = []Vertex{
	{Pos: [2]float32{0, 1}},
	{Pos: [2]float32{0, 0}},
	{Pos: [2]float32{1, 1}},
	{Pos: [2]float32{1, 1}},
	{Pos: [2]float32{0, 0}},
	{Pos: [2]float32{1, 0}},
}

// DiamondVertices is a small diamond inside the unit square, used as the
// particle geometry.
var DiamondVertices = []Vertex{
	{Pos: [2]float32{0.1, 0.5}},
	{Pos: [2]float32{0.5, 0.1}},
	{Pos: [2]float32{0.9, 0.5}},
	{Pos: [2]float32{0.5, 0.9}},
	{Pos: [2]float32{0.1, 0.5}},
	{Pos: [2]float32{0.9, 0.5}},
}

// PlayerSize is the player quad extent in world units.
var PlayerSize = [2]float32{0.8, 0.8}

// PlayerVertices is the player quad, centered horizontally on the model
// origin with its base at y=0.
var PlayerVertices = []Vertex{
	{Pos: [2]float32{-PlayerSize[0] * 0.5, PlayerSize[1]}},
	{Pos: [2]float32{-PlayerSize[0] * 0.5, 0}},
	{Pos: [2]float32{PlayerSize[0] * 0.5, PlayerSize[1]}},
	{Pos: [2]float32{PlayerSize[0] * 0.5, PlayerSize[1]}},
	{Pos: [2]float32{-PlayerSize[0] * 0.5, 0}},
	{Pos: [2]float32{PlayerSize[0] * 0.5, 0}},
}
