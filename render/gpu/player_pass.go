package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/SkaillZ/complementary/render/core"
	"github.com/SkaillZ/complementary/render/shaders"
)

type playerUniforms struct {
	ViewMatrix  mgl32.Mat4
	ModelMatrix mgl32.Mat4
	Color       core.Color
}

// PlayerPass draws the single player quad. Two pipeline variants share the
// same geometry: the standard one applies view and model transforms and
// tints with the uniform color, the debug one ignores every uniform and
// outputs a flat red quad in clip space for hitbox inspection.
type PlayerPass struct {
	pipeline      *wgpu.RenderPipeline
	debugPipeline *wgpu.RenderPipeline
	uniforms      *UniformSet[playerUniforms]
	mesh          *StaticMesh
}

func NewPlayerPass(ctx *RenderContext, mesh *StaticMesh) (*PlayerPass, error) {
	uniforms, err := NewUniformSet[playerUniforms](ctx, "player")
	if err != nil {
		return nil, err
	}

	pipeline, err := createPipeline(ctx, "player", shaders.PlayerWGSL,
		[]*wgpu.BindGroupLayout{uniforms.Layout()},
		[]wgpu.VertexBufferLayout{vertexLayout()})
	if err != nil {
		uniforms.Release()
		return nil, err
	}

	// The debug variant binds nothing.
	debugPipeline, err := createPipeline(ctx, "player_debug", shaders.PlayerDebugWGSL,
		[]*wgpu.BindGroupLayout{},
		[]wgpu.VertexBufferLayout{vertexLayout()})
	if err != nil {
		pipeline.Release()
		uniforms.Release()
		return nil, err
	}

	return &PlayerPass{
		pipeline:      pipeline,
		debugPipeline: debugPipeline,
		uniforms:      uniforms,
		mesh:          mesh,
	}, nil
}

// PrepareFrame rewrites the uniform block. The debug variant reads none of
// these values, but writing them unconditionally keeps the buffer coherent
// when debug mode is toggled mid-session.
func (p *PlayerPass) PrepareFrame(ctx *RenderContext, view mgl32.Mat4, player core.PlayerState) {
	p.uniforms.Write(ctx, playerUniforms{
		ViewMatrix:  view,
		ModelMatrix: player.Model,
		Color:       player.Tint,
	})
}

func (p *PlayerPass) Encode(frame *FrameContext, debug bool) error {
	pass := frame.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "player_pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    frame.Target,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	})
	if debug {
		pass.SetPipeline(p.debugPipeline)
	} else {
		pass.SetPipeline(p.pipeline)
		pass.SetBindGroup(0, p.uniforms.BindGroup(), nil)
	}
	p.mesh.Bind(pass, 0)
	pass.Draw(p.mesh.VertexCount(), 1, 0, 0)
	return pass.End()
}

func (p *PlayerPass) Release() {
	p.pipeline.Release()
	p.debugPipeline.Release()
	p.uniforms.Release()
}
