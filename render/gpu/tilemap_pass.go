package gpu

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/SkaillZ/complementary/render/core"
	"github.com/SkaillZ/complementary/render/shaders"
)

type tilemapUniforms struct {
	ViewMatrix   mgl32.Mat4
	InvertColors uint32
	_            [12]byte
}

// TilemapPass draws the pre-baked tile layer. It is the background layer,
// so its render pass clears the target; every later pass loads.
type TilemapPass struct {
	pipeline *wgpu.RenderPipeline
	uniforms *UniformSet[tilemapUniforms]
	mesh     *StaticMesh
}

func NewTilemapPass(ctx *RenderContext) (*TilemapPass, error) {
	uniforms, err := NewUniformSet[tilemapUniforms](ctx, "tilemap")
	if err != nil {
		return nil, err
	}

	pipeline, err := createPipeline(ctx, "tilemap", shaders.TilemapWGSL,
		[]*wgpu.BindGroupLayout{uniforms.Layout()},
		[]wgpu.VertexBufferLayout{coloredVertexLayout()})
	if err != nil {
		uniforms.Release()
		return nil, err
	}

	return &TilemapPass{
		pipeline: pipeline,
		uniforms: uniforms,
	}, nil
}

// SetMesh installs the baked level geometry. Called on level load; the mesh
// itself is immutable.
func (p *TilemapPass) SetMesh(mesh *StaticMesh) {
	p.mesh = mesh
}

// PrepareFrame rewrites the uniform block with the current camera transform
// and the frame's inversion flag.
func (p *TilemapPass) PrepareFrame(ctx *RenderContext, view mgl32.Mat4, invertColors bool) {
	invert := uint32(0)
	if invertColors {
		invert = 1
	}
	p.uniforms.Write(ctx, tilemapUniforms{
		ViewMatrix:   view,
		InvertColors: invert,
	})
}

// Encode clears the target to the world's background color and draws the
// tile layer.
func (p *TilemapPass) Encode(frame *FrameContext, clearColor core.Color) error {
	if p.mesh == nil {
		return errors.New("tilemap pass has no level mesh installed")
	}

	pass := frame.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "tilemap_pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    frame.Target,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: float64(clearColor.R),
					G: float64(clearColor.G),
					B: float64(clearColor.B),
					A: float64(clearColor.A),
				},
			},
		},
	})
	pass.SetPipeline(p.pipeline)
	p.mesh.Bind(pass, 0)
	pass.SetBindGroup(0, p.uniforms.BindGroup(), nil)
	pass.Draw(p.mesh.VertexCount(), 1, 0, 0)
	return pass.End()
}

func (p *TilemapPass) Release() {
	p.pipeline.Release()
	p.uniforms.Release()
}
