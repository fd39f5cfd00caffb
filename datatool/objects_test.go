package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payloadBuilder struct {
	buf bytes.Buffer
}

func (p *payloadBuilder) i32(v int32) *payloadBuilder {
	binary.Write(&p.buf, binary.LittleEndian, v)
	return p
}

func (p *payloadBuilder) f32(v float32) *payloadBuilder {
	binary.Write(&p.buf, binary.LittleEndian, v)
	return p
}

func (p *payloadBuilder) vec2(x, y float32) *payloadBuilder {
	return p.f32(x).f32(y)
}

func (p *payloadBuilder) bytes(bs ...byte) *payloadBuilder {
	p.buf.Write(bs)
	return p
}

func (p *payloadBuilder) alignTo(n int) *payloadBuilder {
	for p.buf.Len()%n != 0 {
		p.buf.WriteByte(0)
	}
	return p
}

func TestDecodeObjectData_Door(t *testing.T) {
	var p payloadBuilder
	p.vec2(2, 4).i32(3)

	name, data, err := decodeObjectData(10, p.buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, "Door", name)
	assert.Equal(t, fvec2{X: 2, Y: 4}, data["size"])
	assert.Equal(t, int32(3), data["group"])

	// All door prototype variants decode identically.
	for _, id := range []int32{11, 12, 14} {
		name, _, err := decodeObjectData(id, p.buf.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "Door", name)
	}
}

func TestDecodeObjectData_Key(t *testing.T) {
	var p payloadBuilder
	p.i32(7)

	name, data, err := decodeObjectData(8, p.buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Key", name)
	assert.Equal(t, int32(7), data["group"])
}

func TestDecodeObjectData_ParticleSystem(t *testing.T) {
	var p payloadBuilder
	p.i32(100)            // duration
	p.i32(2)              // type = Diamond
	p.i32(5).i32(10)      // emission interval
	p.i32(1).i32(4)       // emission rate
	p.vec2(-0.1, -0.3)    // min start velocity
	p.vec2(0.1, -0.1)     // max start velocity
	p.f32(0.02)           // gravity
	p.i32(60)             // max life time
	p.bytes(255, 0, 0, 255)  // start color
	p.bytes(0, 0, 255, 0)    // end color
	p.f32(0.5).f32(0.1)   // sizes
	p.bytes(1, 1, 0, 0, 0)   // bool block
	p.alignTo(4)
	p.i32(2).vec2(3, 2)   // emission type = Box
	p.f32(0)              // attract speed
	p.i32(1)              // layer = OverTilemap
	p.bytes(1)            // auto invert
	p.alignTo(4)
	p.i32(0)              // out of box lifetime loss
	p.vec2(0, 0)          // clamp box size
	p.bytes(0)            // symmetrical

	name, data, err := decodeObjectData(4, p.buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, "ParticleSystem", name)
	assert.Equal(t, "Diamond", data["type"])
	assert.Equal(t, int32(100), data["duration"])
	assert.Equal(t, int32(60), data["max_life_time"])
	assert.Equal(t, colorValue{R: 255, G: 0, B: 0, A: 255}, data["start_color"])
	assert.Equal(t, true, data["play_on_spawn"])
	assert.Equal(t, false, data["destroy_on_end"])
	assert.Equal(t, map[string]fvec2{"Box": {X: 3, Y: 2}}, data["emission_type"])
	assert.Equal(t, "OverTilemap", data["layer"])
	assert.Equal(t, true, data["auto_invert_color"])
}

func TestDecodeObjectData_UnknownPrototype(t *testing.T) {
	_, _, err := decodeObjectData(99, make([]byte, payloadSize))
	assert.Error(t, err)
}

func TestConvertObjectMap(t *testing.T) {
	// Layout: header, two payloads, then the object table.
	var file bytes.Buffer
	file.WriteString("CMOM")
	binary.Write(&file, binary.LittleEndian, uint64(0)) // patched below

	keyPayloadOffset := int32(file.Len())
	binary.Write(&file, binary.LittleEndian, int32(1)) // key group

	doorPayloadOffset := int32(file.Len())
	binary.Write(&file, binary.LittleEndian, float32(2)) // door size
	binary.Write(&file, binary.LittleEndian, float32(3))
	binary.Write(&file, binary.LittleEndian, int32(1)) // door group

	tableOffset := uint64(file.Len())
	binary.Write(&file, binary.LittleEndian, int32(2)) // object count
	binary.Write(&file, binary.LittleEndian, int32(7)) // key prototype
	binary.Write(&file, binary.LittleEndian, fvec2{X: 5, Y: 6})
	binary.Write(&file, binary.LittleEndian, keyPayloadOffset)
	binary.Write(&file, binary.LittleEndian, int32(10)) // door prototype
	binary.Write(&file, binary.LittleEndian, fvec2{X: 8, Y: 1})
	binary.Write(&file, binary.LittleEndian, doorPayloadOffset)

	raw := file.Bytes()
	binary.LittleEndian.PutUint64(raw[4:], tableOffset)

	dir := t.TempDir()
	src := filepath.Join(dir, "objects.cmom")
	target := filepath.Join(dir, "objects.json")
	require.NoError(t, os.WriteFile(src, raw, 0o644))

	require.NoError(t, convertObjectMap(src, target))

	encoded, err := os.ReadFile(target)
	require.NoError(t, err)

	var objects []objectJSON
	require.NoError(t, json.Unmarshal(encoded, &objects))
	require.Len(t, objects, 2)

	assert.Equal(t, "Key", objects[0].Type)
	assert.Equal(t, fvec2{X: 5, Y: 6}, objects[0].Position)
	assert.Equal(t, "Door", objects[1].Type)
	assert.Equal(t, fvec2{X: 8, Y: 1}, objects[1].Position)
	assert.Equal(t, float64(1), objects[1].Data["group"])
}

func TestConvertObjectMap_SkipsUndecodableObjects(t *testing.T) {
	// A map with a broken entry between two good ones: the unknown
	// prototype is dropped, the rest converts normally.
	var file bytes.Buffer
	file.WriteString("CMOM")
	binary.Write(&file, binary.LittleEndian, uint64(0)) // patched below

	keyPayloadOffset := int32(file.Len())
	binary.Write(&file, binary.LittleEndian, int32(2)) // key group

	tableOffset := uint64(file.Len())
	binary.Write(&file, binary.LittleEndian, int32(3)) // object count
	binary.Write(&file, binary.LittleEndian, int32(7)) // key prototype
	binary.Write(&file, binary.LittleEndian, fvec2{X: 1, Y: 1})
	binary.Write(&file, binary.LittleEndian, keyPayloadOffset)
	binary.Write(&file, binary.LittleEndian, int32(99)) // unknown prototype
	binary.Write(&file, binary.LittleEndian, fvec2{X: 2, Y: 2})
	binary.Write(&file, binary.LittleEndian, keyPayloadOffset)
	binary.Write(&file, binary.LittleEndian, int32(8)) // key prototype
	binary.Write(&file, binary.LittleEndian, fvec2{X: 3, Y: 3})
	binary.Write(&file, binary.LittleEndian, keyPayloadOffset)

	raw := file.Bytes()
	binary.LittleEndian.PutUint64(raw[4:], tableOffset)

	dir := t.TempDir()
	src := filepath.Join(dir, "objects.cmom")
	target := filepath.Join(dir, "objects.json")
	require.NoError(t, os.WriteFile(src, raw, 0o644))

	require.NoError(t, convertObjectMap(src, target))

	encoded, err := os.ReadFile(target)
	require.NoError(t, err)

	var objects []objectJSON
	require.NoError(t, json.Unmarshal(encoded, &objects))
	require.Len(t, objects, 2)
	assert.Equal(t, fvec2{X: 1, Y: 1}, objects[0].Position)
	assert.Equal(t, fvec2{X: 3, Y: 3}, objects[1].Position)
}

func TestConvertObjectFile(t *testing.T) {
	var file bytes.Buffer
	file.WriteString("CMOB")
	binary.Write(&file, binary.LittleEndian, int32(9)) // key prototype
	binary.Write(&file, binary.LittleEndian, fvec2{X: 1, Y: 2})
	binary.Write(&file, binary.LittleEndian, int32(4)) // group, short payload

	dir := t.TempDir()
	src := filepath.Join(dir, "obj.cmob")
	target := filepath.Join(dir, "obj.json")
	require.NoError(t, os.WriteFile(src, file.Bytes(), 0o644))

	require.NoError(t, convertObjectFile(src, target))

	encoded, err := os.ReadFile(target)
	require.NoError(t, err)

	var object objectJSON
	require.NoError(t, json.Unmarshal(encoded, &object))
	assert.Equal(t, "Key", object.Type)
	assert.Equal(t, fvec2{X: 1, Y: 2}, object.Position)
	assert.Equal(t, float64(4), object.Data["group"])
}

func TestConvertObjectFile_RejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.cmob")
	require.NoError(t, os.WriteFile(src, make([]byte, 32), 0o644))

	assert.Error(t, convertObjectFile(src, filepath.Join(dir, "bad.json")))
}
