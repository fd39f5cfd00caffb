package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DoorInstance is one visible door segment. Layout matches the instance
// attributes of the door pipeline (color, position, size).
type DoorInstance struct {
	Color    Color
	Position [2]float32
	Size     [2]float32
}

// ParticleInstance is one live particle. Particles render at fixed size, so
// the record carries no scale. Layout matches the particle pipeline's
// instance attributes.
type ParticleInstance struct {
	Color    Color
	Position [2]float32
}

// PlayerState describes the single player quad for one frame.
type PlayerState struct {
	Model mgl32.Mat4
	Tint  Color
	// Debug selects the flat hitbox-visualization variant, which ignores
	// both camera and model transforms.
	Debug bool
}

// FrameSnapshot is the per-frame scene input consumed by the frame renderer.
// Gameplay code produces a fresh snapshot every tick; the renderer only
// reads it.
type FrameSnapshot struct {
	World        WorldType
	InvertColors bool

	// Platforms carries moving platforms and ability blocks; both share the
	// door instance layout.
	Platforms []DoorInstance
	Doors     []DoorInstance
	Particles []ParticleInstance
	Player    PlayerState

	// HUD text drawn over the scene; empty when the overlay is disabled.
	Texts []TextItem
}
