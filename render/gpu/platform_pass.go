package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/SkaillZ/complementary/render/core"
	"github.com/SkaillZ/complementary/render/shaders"
)

type platformUniforms struct {
	ViewMatrix mgl32.Mat4
}

// PlatformPass draws moving platforms and ability blocks as instanced unit
// quads, the same scale-and-offset regime the door pass uses.
type PlatformPass struct {
	pipeline  *wgpu.RenderPipeline
	uniforms  *UniformSet[platformUniforms]
	instances *InstanceBuffer
	quad      *StaticMesh
}

func NewPlatformPass(ctx *RenderContext, quad *StaticMesh) (*PlatformPass, error) {
	uniforms, err := NewUniformSet[platformUniforms](ctx, "platform")
	if err != nil {
		return nil, err
	}

	pipeline, err := createPipeline(ctx, "platform", shaders.PlatformWGSL,
		[]*wgpu.BindGroupLayout{uniforms.Layout()},
		[]wgpu.VertexBufferLayout{vertexLayout(), doorInstanceLayout()})
	if err != nil {
		uniforms.Release()
		return nil, err
	}

	return &PlatformPass{
		pipeline:  pipeline,
		uniforms:  uniforms,
		instances: NewInstanceBuffer(ctx, "platform_instances", uint32(unsafe.Sizeof(core.DoorInstance{}))),
		quad:      quad,
	}, nil
}

func (p *PlatformPass) PrepareFrame(ctx *RenderContext, view mgl32.Mat4, platforms []core.DoorInstance) error {
	p.uniforms.Write(ctx, platformUniforms{ViewMatrix: view})
	return p.instances.Write(wgpu.ToBytes(platforms))
}

// Encode draws the platforms written by the preceding PrepareFrame. With no
// platforms this frame, no draw call is issued.
func (p *PlatformPass) Encode(frame *FrameContext) error {
	if p.instances.Len() == 0 {
		return nil
	}

	pass := frame.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "platform_pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    frame.Target,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	})
	pass.SetPipeline(p.pipeline)
	p.quad.Bind(pass, 0)
	p.instances.Bind(pass, 1)
	pass.SetBindGroup(0, p.uniforms.BindGroup(), nil)
	pass.Draw(p.quad.VertexCount(), p.instances.Len(), 0, 0)
	return pass.End()
}

func (p *PlatformPass) Release() {
	p.pipeline.Release()
	p.uniforms.Release()
	p.instances.Release()
}
