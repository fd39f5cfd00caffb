package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/SkaillZ/complementary/render/core"
	"github.com/SkaillZ/complementary/render/shaders"
)

type particleUniforms struct {
	ViewMatrix mgl32.Mat4
}

// ParticlePass draws live particles as instanced fixed-size geometry. The
// instance only offsets the shape (vertex + position); there is no
// per-instance scale.
type ParticlePass struct {
	pipeline  *wgpu.RenderPipeline
	uniforms  *UniformSet[particleUniforms]
	instances *InstanceBuffer
	mesh      *StaticMesh
}

func NewParticlePass(ctx *RenderContext, mesh *StaticMesh) (*ParticlePass, error) {
	uniforms, err := NewUniformSet[particleUniforms](ctx, "particle")
	if err != nil {
		return nil, err
	}

	pipeline, err := createPipeline(ctx, "particle", shaders.ParticleWGSL,
		[]*wgpu.BindGroupLayout{uniforms.Layout()},
		[]wgpu.VertexBufferLayout{vertexLayout(), particleInstanceLayout()})
	if err != nil {
		uniforms.Release()
		return nil, err
	}

	return &ParticlePass{
		pipeline:  pipeline,
		uniforms:  uniforms,
		instances: NewInstanceBuffer(ctx, "particle_instances", uint32(unsafe.Sizeof(core.ParticleInstance{}))),
		mesh:      mesh,
	}, nil
}

// PrepareFrame rewrites the camera uniform and replaces the instance buffer
// with this frame's particles. Counts routinely reach the hundreds and vary
// every frame; the buffer grows as needed and never shrinks.
func (p *ParticlePass) PrepareFrame(ctx *RenderContext, view mgl32.Mat4, particles []core.ParticleInstance) error {
	p.uniforms.Write(ctx, particleUniforms{ViewMatrix: view})
	return p.instances.Write(wgpu.ToBytes(particles))
}

func (p *ParticlePass) Encode(frame *FrameContext) error {
	if p.instances.Len() == 0 {
		return nil
	}

	pass := frame.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "particle_pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    frame.Target,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	})
	pass.SetPipeline(p.pipeline)
	p.mesh.Bind(pass, 0)
	p.instances.Bind(pass, 1)
	pass.SetBindGroup(0, p.uniforms.BindGroup(), nil)
	pass.Draw(p.mesh.VertexCount(), p.instances.Len(), 0, 0)
	return pass.End()
}

func (p *ParticlePass) Release() {
	p.pipeline.Release()
	p.uniforms.Release()
	p.instances.Release()
}
