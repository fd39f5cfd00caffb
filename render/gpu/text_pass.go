package gpu

import (
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/SkaillZ/complementary/render/core"
	"github.com/SkaillZ/complementary/render/shaders"
)

// TextPass draws the debug HUD from a font atlas texture. The vertex buffer
// is rebuilt every frame from the snapshot's text items; like the instance
// buffers, it grows but never shrinks.
type TextPass struct {
	pipeline     *wgpu.RenderPipeline
	bindGroup    *wgpu.BindGroup
	sampler      *wgpu.Sampler
	atlasView    *wgpu.TextureView
	atlas        *core.TextAtlas
	vertexBuffer *wgpu.Buffer
	vertexCount  uint32
	ctx          *RenderContext
}

func NewTextPass(ctx *RenderContext, atlas *core.TextAtlas) (*TextPass, error) {
	bounds := atlas.Image.Bounds()
	w, h := uint32(bounds.Dx()), uint32(bounds.Dy())

	texture, err := ctx.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "text_atlas",
		Size:          wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	defer texture.Release()

	err = ctx.Queue.WriteTexture(texture.AsImageCopy(), atlas.Image.Pix, &wgpu.TextureDataLayout{
		Offset:       0,
		BytesPerRow:  w,
		RowsPerImage: h,
	}, &wgpu.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1})
	if err != nil {
		return nil, err
	}

	atlasView, err := texture.CreateView(nil)
	if err != nil {
		return nil, err
	}

	sampler, err := ctx.Device.CreateSampler(&wgpu.SamplerDescriptor{
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		atlasView.Release()
		return nil, err
	}

	layout, err := ctx.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "text_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		sampler.Release()
		atlasView.Release()
		return nil, err
	}
	defer layout.Release()

	pipeline, err := createPipeline(ctx, "text", shaders.TextWGSL,
		[]*wgpu.BindGroupLayout{layout},
		[]wgpu.VertexBufferLayout{textVertexLayout()})
	if err != nil {
		sampler.Release()
		atlasView.Release()
		return nil, err
	}

	bindGroup, err := ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "text_bind_group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: atlasView},
			{Binding: 1, Sampler: sampler},
		},
	})
	if err != nil {
		pipeline.Release()
		sampler.Release()
		atlasView.Release()
		return nil, err
	}

	return &TextPass{
		pipeline:  pipeline,
		bindGroup: bindGroup,
		sampler:   sampler,
		atlasView: atlasView,
		atlas:     atlas,
		ctx:       ctx,
	}, nil
}

// PrepareFrame rebuilds the HUD vertex buffer from this frame's text items.
func (p *TextPass) PrepareFrame(items []core.TextItem, screenW, screenH uint32) error {
	vertices := p.atlas.BuildVertices(items, int(screenW), int(screenH))
	p.vertexCount = uint32(len(vertices))
	if len(vertices) == 0 {
		return nil
	}

	size := uint64(len(vertices)) * uint64(unsafe.Sizeof(core.TextVertex{}))
	if p.vertexBuffer == nil || p.vertexBuffer.GetSize() < size {
		if p.vertexBuffer != nil {
			p.vertexBuffer.Release()
		}
		var err error
		p.vertexBuffer, err = p.ctx.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "text_vertex_buffer",
			Size:  size,
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
	}
	p.ctx.Queue.WriteBuffer(p.vertexBuffer, 0, wgpu.ToBytes(vertices))
	return nil
}

func (p *TextPass) Encode(frame *FrameContext) error {
	if p.vertexCount == 0 || p.vertexBuffer == nil {
		return nil
	}

	pass := frame.Encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "text_pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    frame.Target,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	})
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.bindGroup, nil)
	pass.SetVertexBuffer(0, p.vertexBuffer, 0, p.vertexBuffer.GetSize())
	pass.Draw(p.vertexCount, 1, 0, 0)
	return pass.End()
}

func (p *TextPass) Release() {
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
	}
	p.bindGroup.Release()
	p.pipeline.Release()
	p.sampler.Release()
	p.atlasView.Release()
}
