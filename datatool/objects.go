package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Typed payload decoding for the legacy object binaries. Every structure is
// little-endian; colors are stored as four bytes, booleans as one byte with
// 4-byte alignment between groups.

type fvec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type colorValue struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

type binReader struct {
	r   *bytes.Reader
	err error
}

func newBinReader(data []byte) *binReader {
	return &binReader{r: bytes.NewReader(data)}
}

func (b *binReader) i32() int32 {
	var v int32
	if b.err == nil {
		b.err = binary.Read(b.r, binary.LittleEndian, &v)
	}
	return v
}

func (b *binReader) f32() float32 {
	var v float32
	if b.err == nil {
		b.err = binary.Read(b.r, binary.LittleEndian, &v)
	}
	return v
}

func (b *binReader) vec2() fvec2 {
	return fvec2{X: b.f32(), Y: b.f32()}
}

func (b *binReader) boolean() bool {
	if b.err != nil {
		return false
	}
	v, err := b.r.ReadByte()
	if err != nil {
		b.err = err
		return false
	}
	if v > 1 {
		b.err = fmt.Errorf("invalid bool value %d", v)
		return false
	}
	return v != 0
}

// byteColor reads a four-byte color, widening each channel to a float as-is.
func (b *binReader) byteColor() colorValue {
	var raw [4]byte
	if b.err == nil {
		_, b.err = io.ReadFull(b.r, raw[:])
	}
	return colorValue{
		R: float32(raw[0]),
		G: float32(raw[1]),
		B: float32(raw[2]),
		A: float32(raw[3]),
	}
}

// align skips to the next multiple of n within the payload.
func (b *binReader) align(n int64) {
	if b.err != nil {
		return
	}
	pos, _ := b.r.Seek(0, io.SeekCurrent)
	if rem := pos % n; rem != 0 {
		_, b.err = b.r.Seek(n-rem, io.SeekCurrent)
	}
}

var particleTypeNames = []string{"Triangle", "Square", "Diamond"}
var particleLayerNames = []string{"BehindTilemap", "OverTilemap"}
var abilityNames = []string{"None", "DoubleJump", "Glider", "Dash", "WallJump"}

func enumName(names []string, v int32) (string, error) {
	if v < 0 || int(v) >= len(names) {
		return "", fmt.Errorf("enum value %d out of range", v)
	}
	return names[v], nil
}

// emissionType decodes the discriminant plus the box size that is always
// present but only meaningful for the box variants.
func (b *binReader) emissionType() (any, error) {
	discriminant := b.i32()
	boxSize := b.vec2()
	if b.err != nil {
		return nil, b.err
	}
	switch discriminant {
	case 0:
		return "Center", nil
	case 1:
		return map[string]fvec2{"BoxEdge": boxSize}, nil
	case 2:
		return map[string]fvec2{"Box": boxSize}, nil
	case 3:
		return "Wind", nil
	case 4:
		return map[string]fvec2{"BoxEdgeSpiky": boxSize}, nil
	default:
		return nil, fmt.Errorf("unknown emission type %d", discriminant)
	}
}

func decodeParticleSystem(b *binReader) (map[string]any, error) {
	data := map[string]any{}
	data["duration"] = b.i32()
	particleType, err := enumName(particleTypeNames, b.i32())
	if err != nil {
		return nil, err
	}
	data["type"] = particleType
	data["min_emission_interval"] = b.i32()
	data["max_emission_interval"] = b.i32()
	data["min_emission_rate"] = b.i32()
	data["max_emission_rate"] = b.i32()
	data["min_start_velocity"] = b.vec2()
	data["max_start_velocity"] = b.vec2()
	data["gravity"] = b.f32()
	data["max_life_time"] = b.i32()
	data["start_color"] = b.byteColor()
	data["end_color"] = b.byteColor()
	data["start_size"] = b.f32()
	data["end_size"] = b.f32()
	data["follow_player"] = b.boolean()
	data["play_on_spawn"] = b.boolean()
	data["destroy_on_end"] = b.boolean()
	data["enable_collision"] = b.boolean()
	data["clamp_position_in_bounds"] = b.boolean()
	b.align(4)
	emission, err := b.emissionType()
	if err != nil {
		return nil, err
	}
	data["emission_type"] = emission
	data["attract_speed"] = b.f32()
	layer, err := enumName(particleLayerNames, b.i32())
	if err != nil {
		return nil, err
	}
	data["layer"] = layer
	data["auto_invert_color"] = b.boolean()
	b.align(4)
	data["out_of_box_lifetime_loss"] = b.i32()
	data["clamp_box_size"] = b.vec2()
	data["symmetrical"] = b.boolean()
	return data, b.err
}

func decodeAbilityBlock(b *binReader) (map[string]any, error) {
	size := b.vec2()
	first, err := enumName(abilityNames, b.i32())
	if err != nil {
		return nil, err
	}
	second, err := enumName(abilityNames, b.i32())
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"size":      size,
		"abilities": []string{first, second},
	}, b.err
}

func decodePlatform(b *binReader, worldSwitch bool) (map[string]any, error) {
	data := map[string]any{}
	data["size"] = b.vec2()
	data["goal"] = b.vec2()
	data["speed"] = b.f32()
	data["spiky"] = []bool{b.boolean(), b.boolean(), b.boolean(), b.boolean()}
	if worldSwitch {
		// Stored as a "seen" flag: visible in the dark world when set.
		if b.boolean() {
			data["world_type"] = "Dark"
		} else {
			data["world_type"] = "Light"
		}
	}
	return data, b.err
}

var tutorialTypeNames = map[int32]string{
	1: "WorldSwitch",
	2: "Jump",
	3: "DashSwitchCombo",
	4: "DoubleJump",
	5: "Glider",
	6: "Dash",
	7: "WallJump",
}

// decodeObjectData maps a legacy prototype ID to the object type name and
// its decoded payload.
func decodeObjectData(prototypeID int32, payload []byte) (string, map[string]any, error) {
	b := newBinReader(payload)

	var name string
	var data map[string]any
	var err error
	switch prototypeID {
	case 0, 1:
		name = "AbilityBlock"
		data, err = decodeAbilityBlock(b)
	case 2:
		name = "Wind"
		data = map[string]any{"size": b.vec2(), "force": b.vec2()}
		err = b.err
	case 3:
		name = "Platform"
		data, err = decodePlatform(b, false)
	case 4:
		name = "ParticleSystem"
		data, err = decodeParticleSystem(b)
	case 5, 6:
		name = "Platform"
		data, err = decodePlatform(b, true)
	case 7, 8, 9:
		name = "Key"
		data = map[string]any{"group": b.i32()}
		err = b.err
	case 10, 11, 12, 14:
		name = "Door"
		data = map[string]any{"size": b.vec2(), "group": b.i32()}
		err = b.err
	case 13:
		name = "LevelTag"
		data = map[string]any{"level_id": b.i32(), "size": b.vec2()}
		err = b.err
	case 15:
		name = "Tutorial"
		tutorialType, ok := tutorialTypeNames[b.i32()]
		if !ok {
			return "", nil, fmt.Errorf("unknown tutorial type")
		}
		data = map[string]any{
			"tutorial_type": tutorialType,
			"size":          b.vec2(),
			"instant":       b.boolean(),
		}
		err = b.err
	default:
		return "", nil, fmt.Errorf("unknown prototype ID %d", prototypeID)
	}
	if err != nil {
		return "", nil, err
	}
	return name, data, nil
}
