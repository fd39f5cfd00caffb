package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera derives the world-to-clip transform from the current viewport and
// the world (tilemap) dimensions. The whole tilemap is fitted into the
// window, preserving aspect ratio; leftover space becomes letterbox bars.
//
// The matrix is replaced wholesale on every viewport update and never
// mutated in place, so a value read through Matrix stays valid for the
// frame it was read in.
type Camera struct {
	worldWidth  float32
	worldHeight float32
	view        mgl32.Mat4
}

func NewCamera(worldWidth, worldHeight float32) *Camera {
	return &Camera{
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
		view:        mgl32.Ident4(),
	}
}

// SetWorldSize updates the world dimensions the camera fits on screen.
// Called when a new level is installed. The view matrix is refreshed on the
// next UpdateViewport call.
func (c *Camera) SetWorldSize(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	c.worldWidth = width
	c.worldHeight = height
}

// UpdateViewport recomputes the view matrix for a window of the given pixel
// dimensions. Degenerate dimensions (zero or negative) are rejected and the
// previous matrix is retained, so a minimized window never propagates NaN
// into the transform.
func (c *Camera) UpdateViewport(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}

	widthRatio := width / c.worldWidth
	heightRatio := height / c.worldHeight
	ratio := min(widthRatio, heightRatio)

	windowAspect := width / height
	worldAspect := c.worldWidth / c.worldHeight

	xTranslation := float32(1.0)
	yTranslation := float32(1.0)
	if windowAspect < worldAspect {
		yTranslation = windowAspect / 2.0
	}

	// World Y grows downward, clip-space Y grows upward, hence the negative
	// Y scale.
	c.view = mgl32.Translate3D(-xTranslation, yTranslation, 0).
		Mul4(mgl32.Scale3D((ratio/width)*2.0, (ratio/height)*-2.0, 1.0))
}

// Matrix returns the active world-to-clip transform. Pure accessor.
func (c *Camera) Matrix() mgl32.Mat4 {
	return c.view
}

// WorldSize returns the world dimensions currently fitted to the viewport.
func (c *Camera) WorldSize() (float32, float32) {
	return c.worldWidth, c.worldHeight
}
