package gpu

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/SkaillZ/complementary/render/core"
)

// The instance structs are copied into GPU buffers byte for byte, so their
// Go layout must line up with the vertex attribute offsets the pipelines
// declare.

func TestDoorInstanceLayoutMatchesStruct(t *testing.T) {
	layout := doorInstanceLayout()
	var inst core.DoorInstance

	assert.Equal(t, uint64(unsafe.Sizeof(inst)), layout.ArrayStride)
	assert.Equal(t, uint64(32), layout.ArrayStride)
	assert.Equal(t, uint64(unsafe.Offsetof(inst.Color)), layout.Attributes[0].Offset)
	assert.Equal(t, uint64(unsafe.Offsetof(inst.Position)), layout.Attributes[1].Offset)
	assert.Equal(t, uint64(unsafe.Offsetof(inst.Size)), layout.Attributes[2].Offset)
}

func TestParticleInstanceLayoutMatchesStruct(t *testing.T) {
	layout := particleInstanceLayout()
	var inst core.ParticleInstance

	assert.Equal(t, uint64(unsafe.Sizeof(inst)), layout.ArrayStride)
	assert.Equal(t, uint64(24), layout.ArrayStride)
	assert.Equal(t, uint64(unsafe.Offsetof(inst.Color)), layout.Attributes[0].Offset)
	assert.Equal(t, uint64(unsafe.Offsetof(inst.Position)), layout.Attributes[1].Offset)
}

func TestVertexLayoutsMatchStructs(t *testing.T) {
	assert.Equal(t, uint64(unsafe.Sizeof(core.Vertex{})), vertexLayout().ArrayStride)
	assert.Equal(t, uint64(unsafe.Sizeof(core.ColoredVertex{})), coloredVertexLayout().ArrayStride)
	assert.Equal(t, uint64(unsafe.Sizeof(core.TextVertex{})), textVertexLayout().ArrayStride)
}

// Uniform blocks are written with a straight memcpy, so the Go structs must
// honor the 16-byte uniform buffer size requirement.
func TestUniformBlockSizes(t *testing.T) {
	assert.Zero(t, unsafe.Sizeof(tilemapUniforms{})%16)
	assert.Zero(t, unsafe.Sizeof(doorUniforms{})%16)
	assert.Zero(t, unsafe.Sizeof(particleUniforms{})%16)
	assert.Zero(t, unsafe.Sizeof(playerUniforms{})%16)

	// mat4 + vec4-aligned members only.
	assert.Equal(t, uintptr(80), unsafe.Sizeof(tilemapUniforms{}))
	assert.Equal(t, uintptr(144), unsafe.Sizeof(playerUniforms{}))
}
