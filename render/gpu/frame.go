package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/SkaillZ/complementary/render/core"
)

// PassKind identifies one of the renderer's draw layers. The set is closed;
// dispatch over it is exhaustive.
type PassKind int

const (
	PassTilemap PassKind = iota
	PassPlatforms
	PassParticles
	PassDoors
	PassPlayer
	PassText
)

func (k PassKind) String() string {
	switch k {
	case PassTilemap:
		return "tilemap"
	case PassPlatforms:
		return "platforms"
	case PassParticles:
		return "particles"
	case PassDoors:
		return "doors"
	case PassPlayer:
		return "player"
	case PassText:
		return "text"
	}
	return "unknown"
}

// DrawStep is one planned draw layer for a frame.
type DrawStep struct {
	Kind PassKind
	// Instances is the number of instances the layer draws; fixed-count
	// layers report 1.
	Instances int
	// Skip marks layers that issue no draw call this frame. Skipped layers
	// still occupy their slot in the plan so the ordering is invariant.
	Skip bool
}

// BuildDrawPlan computes the frame's draw sequence from a scene snapshot.
// The layer order is fixed regardless of instance counts: tilemap
// background, then platforms, particles, doors, player, and finally the
// HUD text.
func BuildDrawPlan(snap *core.FrameSnapshot) []DrawStep {
	return []DrawStep{
		{Kind: PassTilemap, Instances: 1},
		{Kind: PassPlatforms, Instances: len(snap.Platforms), Skip: len(snap.Platforms) == 0},
		{Kind: PassParticles, Instances: len(snap.Particles), Skip: len(snap.Particles) == 0},
		{Kind: PassDoors, Instances: len(snap.Doors), Skip: len(snap.Doors) == 0},
		{Kind: PassPlayer, Instances: 1},
		{Kind: PassText, Instances: len(snap.Texts), Skip: len(snap.Texts) == 0},
	}
}

// FrameRenderer owns every GPU resource of the render path and turns one
// scene snapshot per tick into an ordered command submission. All pipelines
// and static geometry are built once here; only uniform and instance
// contents change per frame.
type FrameRenderer struct {
	ctx      *RenderContext
	camera   *core.Camera
	geometry *GeometryCache

	tilemap   *TilemapPass
	platforms *PlatformPass
	particles *ParticlePass
	doors     *DoorPass
	player    *PlayerPass
	text      *TextPass // nil when no font atlas is available

	levelMesh MeshHandle
	hasLevel  bool
}

// NewFrameRenderer builds all pipelines and shared geometry. Any failure
// here is an initialization failure: the renderer is unusable and the error
// aborts startup.
func NewFrameRenderer(ctx *RenderContext, camera *core.Camera, atlas *core.TextAtlas) (*FrameRenderer, error) {
	geometry := NewGeometryCache(ctx)

	quadHandle, err := geometry.Create("unit_quad", wgpu.ToBytes(core.QuadVertices), uint32(len(core.QuadVertices)))
	if err != nil {
		return nil, err
	}
	diamondHandle, err := geometry.Create("particle_diamond", wgpu.ToBytes(core.DiamondVertices), uint32(len(core.DiamondVertices)))
	if err != nil {
		geometry.Release()
		return nil, err
	}
	playerHandle, err := geometry.Create("player_quad", wgpu.ToBytes(core.PlayerVertices), uint32(len(core.PlayerVertices)))
	if err != nil {
		geometry.Release()
		return nil, err
	}

	tilemap, err := NewTilemapPass(ctx)
	if err != nil {
		geometry.Release()
		return nil, err
	}
	platforms, err := NewPlatformPass(ctx, geometry.Mesh(quadHandle))
	if err != nil {
		tilemap.Release()
		geometry.Release()
		return nil, err
	}
	particles, err := NewParticlePass(ctx, geometry.Mesh(diamondHandle))
	if err != nil {
		platforms.Release()
		tilemap.Release()
		geometry.Release()
		return nil, err
	}
	doors, err := NewDoorPass(ctx, geometry.Mesh(quadHandle))
	if err != nil {
		particles.Release()
		platforms.Release()
		tilemap.Release()
		geometry.Release()
		return nil, err
	}
	player, err := NewPlayerPass(ctx, geometry.Mesh(playerHandle))
	if err != nil {
		doors.Release()
		particles.Release()
		platforms.Release()
		tilemap.Release()
		geometry.Release()
		return nil, err
	}

	var text *TextPass
	if atlas != nil {
		text, err = NewTextPass(ctx, atlas)
		if err != nil {
			// The HUD is optional; the game renders fine without it.
			ctx.Log.Warnf("text overlay disabled: %v", err)
			text = nil
		}
	}

	return &FrameRenderer{
		ctx:       ctx,
		camera:    camera,
		geometry:  geometry,
		tilemap:   tilemap,
		platforms: platforms,
		particles: particles,
		doors:     doors,
		player:    player,
		text:      text,
	}, nil
}

// SetLevelGeometry installs a freshly baked tile layer and resizes the
// camera's world to match. Called on level load, never mid-frame.
func (r *FrameRenderer) SetLevelGeometry(vertices []core.ColoredVertex, worldWidth, worldHeight float32) error {
	handle, err := r.geometry.Create("tilemap_vertices",
		wgpu.ToBytes(vertices), uint32(len(vertices)))
	if err != nil {
		return err
	}
	// The previous level's geometry is released only once the replacement
	// exists. Level loads happen between frames, so nothing references it.
	if r.hasLevel {
		r.geometry.Destroy(r.levelMesh)
	}
	r.levelMesh = handle
	r.hasLevel = true
	r.tilemap.SetMesh(r.geometry.Mesh(handle))
	r.camera.SetWorldSize(worldWidth, worldHeight)
	return nil
}

// RenderFrame updates every pass's uniform and instance data from the
// snapshot, then encodes the draw layers in the fixed order. The camera is
// refreshed from the frame's viewport first, so a resize is always applied
// before any draw references the transform.
func (r *FrameRenderer) RenderFrame(frame *FrameContext, snap *core.FrameSnapshot) error {
	if !r.hasLevel {
		return fmt.Errorf("no level geometry installed")
	}

	r.camera.UpdateViewport(float32(frame.Width), float32(frame.Height))
	view := r.camera.Matrix()

	r.tilemap.PrepareFrame(r.ctx, view, snap.InvertColors)
	if err := r.platforms.PrepareFrame(r.ctx, view, snap.Platforms); err != nil {
		return err
	}
	if err := r.particles.PrepareFrame(r.ctx, view, snap.Particles); err != nil {
		return err
	}
	if err := r.doors.PrepareFrame(r.ctx, view, snap.Doors); err != nil {
		return err
	}
	r.player.PrepareFrame(r.ctx, view, snap.Player)
	if r.text != nil {
		if err := r.text.PrepareFrame(snap.Texts, frame.Width, frame.Height); err != nil {
			return err
		}
	}

	for _, step := range BuildDrawPlan(snap) {
		if step.Skip {
			continue
		}
		var err error
		switch step.Kind {
		case PassTilemap:
			err = r.tilemap.Encode(frame, snap.World.ClearColor())
		case PassPlatforms:
			err = r.platforms.Encode(frame)
		case PassParticles:
			err = r.particles.Encode(frame)
		case PassDoors:
			err = r.doors.Encode(frame)
		case PassPlayer:
			err = r.player.Encode(frame, snap.Player.Debug)
		case PassText:
			if r.text != nil {
				err = r.text.Encode(frame)
			}
		}
		if err != nil {
			return fmt.Errorf("%s pass failed: %w", step.Kind, err)
		}
	}
	return nil
}

func (r *FrameRenderer) Release() {
	if r.text != nil {
		r.text.Release()
	}
	r.player.Release()
	r.doors.Release()
	r.particles.Release()
	r.platforms.Release()
	r.tilemap.Release()
	r.geometry.Release()
}
