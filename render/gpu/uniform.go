package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// UniformSet owns one small uniform buffer and its bind group for a
// pipeline. The contents are rewritten once per frame before the pipeline's
// draw call; the bind group and layout are immutable.
//
// T must be a flat struct of float32/uint32 fields (and arrays of those) so
// its in-memory layout matches the WGSL uniform block, including any
// explicit padding fields.
type UniformSet[T any] struct {
	buffer    *wgpu.Buffer
	layout    *wgpu.BindGroupLayout
	bindGroup *wgpu.BindGroup
	size      uint64
}

func NewUniformSet[T any](ctx *RenderContext, label string) (*UniformSet[T], error) {
	var zero T
	size := uint64(unsafe.Sizeof(zero))
	if size%16 != 0 {
		// WebGPU requires 16-byte aligned uniform blocks; a mismatch here
		// means the Go struct is missing padding relative to the shader.
		return nil, fmt.Errorf("uniform struct for %q has size %d, not a multiple of 16", label, size)
	}

	buffer, err := ctx.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + "_uniform_buffer",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create uniform buffer %q: %w", label, err)
	}

	layout, err := ctx.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label + "_bind_group_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					HasDynamicOffset: false,
					MinBindingSize:   size,
				},
			},
		},
	})
	if err != nil {
		buffer.Release()
		return nil, fmt.Errorf("failed to create bind group layout %q: %w", label, err)
	}

	bindGroup, err := ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + "_bind_group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buffer,
				Size:    size,
			},
		},
	})
	if err != nil {
		layout.Release()
		buffer.Release()
		return nil, fmt.Errorf("failed to create bind group %q: %w", label, err)
	}

	return &UniformSet[T]{
		buffer:    buffer,
		layout:    layout,
		bindGroup: bindGroup,
		size:      size,
	}, nil
}

// Write rewrites the uniform contents for the current frame.
func (u *UniformSet[T]) Write(ctx *RenderContext, value T) {
	ctx.Queue.WriteBuffer(u.buffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&value)), u.size))
}

func (u *UniformSet[T]) BindGroup() *wgpu.BindGroup {
	return u.bindGroup
}

func (u *UniformSet[T]) Layout() *wgpu.BindGroupLayout {
	return u.layout
}

func (u *UniformSet[T]) Release() {
	u.bindGroup.Release()
	u.layout.Release()
	u.buffer.Release()
}
