package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/SkaillZ/complementary/render/core"
	"github.com/SkaillZ/complementary/render/shaders"
)

type doorUniforms struct {
	ViewMatrix mgl32.Mat4
}

// DoorPass draws door segments as instanced unit quads. Each instance
// scales and offsets the quad (vertex*size + position) before the camera
// transform is applied.
type DoorPass struct {
	pipeline  *wgpu.RenderPipeline
	uniforms  *UniformSet[doorUniforms]
	instances *InstanceBuffer
	quad      *StaticMesh
}

func NewDoorPass(ctx *RenderContext, quad *StaticMesh) (*DoorPass, error) {
	uniforms, err := NewUniformSet[doorUniforms](ctx, "door")
	if err != nil {
		return nil, err
	}

	pipeline, err := createPipeline(ctx, "door", shaders.DoorWGSL,
		[]*wgpu.BindGroupLayout{uniforms.Layout()},
		[]wgpu.VertexBufferLayout{vertexLayout(), doorInstanceLayout()})
	if err != nil {
		uniforms.Release()
		return nil, err
	}

	return &DoorPass{
		pipeline:  pipeline,
		uniforms:  uniforms,
		instances: NewInstanceBuffer(ctx, "door_instances", uint32(unsafe.Sizeof(core.DoorInstance{}))),
		quad:      quad,
	}, nil
}

// PrepareFrame rewrites the camera uniform and replaces the instance buffer
// contents with this frame's door records.
func (p *DoorPass) PrepareFrame(ctx *RenderContext, view mgl32.Mat4, doors []core.DoorInstance) error {
	p.uniforms.Write(ctx, doorUniforms{ViewMatrix: view})
	return p.instances.Write(wgpu.ToBytes(doors))
}

// Encode draws the doors written by the preceding PrepareFrame. With no
// doors this frame, no draw call is issued.
func (p *DoorPass) Encode(frame *FrameContext) error {
	if p.instances.Len() == 0 {
		return nil
	}

	pass := frame.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "door_pass",
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

func (p *DoorPass) Release() {
	p.pipeline.Release()
	p.uniforms.Release()
	p.instances.Release()
}
