package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// StaticMesh is an immutable GPU vertex buffer. Uploaded once at creation
// and never written again; shared freely between draw calls.
type StaticMesh struct {
	buffer      *wgpu.Buffer
	vertexCount uint32
}

// MeshHandle refers to a mesh owned by a GeometryCache.
type MeshHandle int

// GeometryCache owns the static vertex buffers shared by the pipelines.
// Meshes are created during initialization or level load and live until
// Release; there is no mutation path.
type GeometryCache struct {
	ctx    *RenderContext
	meshes []*StaticMesh
}

func NewGeometryCache(ctx *RenderContext) *GeometryCache {
	return &GeometryCache{ctx: ctx}
}

// Create uploads raw vertex data once and returns a handle to the resulting
// mesh. Allocation failure is fatal for the renderer; the error is returned
// so initialization can abort.
func (g *GeometryCache) Create(label string, contents []byte, vertexCount uint32) (MeshHandle, error) {
	buffer, err := g.ctx.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: contents,
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create vertex buffer %q: %w", label, err)
	}
	g.meshes = append(g.meshes, &StaticMesh{
		buffer:      buffer,
		vertexCount: vertexCount,
	})
	return MeshHandle(len(g.meshes) - 1), nil
}

// Mesh resolves a handle. Panics on an invalid handle; handles are only
// produced by Create and never invalidated, so this is a programming error.
func (g *GeometryCache) Mesh(h MeshHandle) *StaticMesh {
	return g.meshes[h]
}

// Destroy releases a single mesh, for geometry that is replaced wholesale
// (the tile layer on level load). The handle must not be used afterwards.
func (g *GeometryCache) Destroy(h MeshHandle) {
	if g.meshes[h] != nil {
		g.meshes[h].buffer.Release()
		g.meshes[h] = nil
	}
}

func (g *GeometryCache) Release() {
	for _, m := range g.meshes {
		if m != nil {
			m.buffer.Release()
		}
	}
	g.meshes = nil
}

// Bind selects the mesh as the vertex source for the given buffer slot.
func (m *StaticMesh) Bind(pass *wgpu.RenderPassEncoder, slot uint32) {
	pass.SetVertexBuffer(slot, m.buffer, 0, m.buffer.GetSize())
}

func (m *StaticMesh) VertexCount() uint32 {
	return m.vertexCount
}

// instanceGrowthMargin is the headroom added when an instance buffer has to
// be reallocated, so small frame-to-frame count fluctuations don't cause a
// reallocation every frame.
const instanceGrowthMargin = 128

// grownCapacity returns the instance capacity after a write of required
// instances into a buffer currently holding capacity for current instances.
func grownCapacity(current, required uint32) uint32 {
	if required <= current {
		return current
	}
	return required + instanceGrowthMargin
}

// InstanceBuffer is a growable GPU buffer of per-instance records for a
// variable-count draw kind. Contents are fully rewritten every frame, so
// growth allocates a fresh buffer and releases the old one without copying
// anything forward. Capacity never shrinks within a session.
type InstanceBuffer struct {
	ctx      *RenderContext
	label    string
	stride   uint32
	buffer   *wgpu.Buffer
	capacity uint32 // instances
	length   uint32 // instances written this frame
}

// NewInstanceBuffer creates an empty instance buffer for records of the
// given stride in bytes. The GPU allocation is deferred until the first
// non-empty write.
func NewInstanceBuffer(ctx *RenderContext, label string, stride uint32) *InstanceBuffer {
	if stride == 0 {
		panic("instance stride must not be zero")
	}
	return &InstanceBuffer{ctx: ctx, label: label, stride: stride}
}

// Write replaces the buffer's logical contents for the current frame.
// data must be a whole number of records. An empty write records zero
// length, which makes the owning pass skip its draw call.
func (b *InstanceBuffer) Write(data []byte) error {
	if len(data)%int(b.stride) != 0 {
		return fmt.Errorf("instance data for %q is not a multiple of the record stride", b.label)
	}
	count := uint32(len(data)) / b.stride
	b.length = count
	if count == 0 {
		return nil
	}

	if b.buffer == nil || b.capacity < count {
		newCapacity := grownCapacity(b.capacity, count)
		buffer, err := b.ctx.Device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: b.label,
			Size:  uint64(newCapacity) * uint64(b.stride),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("failed to grow instance buffer %q to %d instances: %w", b.label, newCapacity, err)
		}
		// Release the exhausted buffer only once the replacement exists.
		if b.buffer != nil {
			b.buffer.Release()
		}
		b.buffer = buffer
		b.capacity = newCapacity
	}

	b.ctx.Queue.WriteBuffer(b.buffer, 0, data)
	return nil
}

// Len is the number of instances written for the current frame.
func (b *InstanceBuffer) Len() uint32 {
	return b.length
}

// Capacity is the number of instances the backing allocation can hold.
func (b *InstanceBuffer) Capacity() uint32 {
	return b.capacity
}

// Bind selects the buffer as the per-instance vertex source for slot.
// Must not be called with zero length; the pass skips the draw instead.
func (b *InstanceBuffer) Bind(pass *wgpu.RenderPassEncoder, slot uint32) {
	pass.SetVertexBuffer(slot, b.buffer, 0, b.buffer.GetSize())
}

func (b *InstanceBuffer) Release() {
	if b.buffer != nil {
		b.buffer.Release()
		b.buffer = nil
	}
	b.capacity = 0
	b.length = 0
}
