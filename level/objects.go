package level

import (
	"encoding/json"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Object maps are JSON arrays of {position, type, data} entries produced by
// the level editor (or by datatool from the legacy binaries).

type vec2JSON struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func (v vec2JSON) vec() mgl32.Vec2 { return mgl32.Vec2{v.X, v.Y} }

type colorJSON struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

type serializedObject struct {
	Position vec2JSON        `json:"position"`
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`
}

type doorData struct {
	Size  vec2JSON `json:"size"`
	Group int32    `json:"group"`
}

type platformData struct {
	Size  vec2JSON `json:"size"`
	Goal  vec2JSON `json:"goal"`
	Speed float32  `json:"speed"`
	Spiky [4]bool  `json:"spiky"`
	// WorldType is "Light" or "Dark" for world-bound platforms, empty for
	// platforms present in both worlds.
	WorldType string `json:"world_type"`
}

type abilityBlockData struct {
	Size      vec2JSON   `json:"size"`
	Abilities [2]Ability `json:"abilities"`
}

type keyData struct {
	Group int32 `json:"group"`
}

type emitterData struct {
	Duration            int32     `json:"duration"`
	ParticleType        string    `json:"type"`
	MinEmissionInterval int32     `json:"min_emission_interval"`
	MaxEmissionInterval int32     `json:"max_emission_interval"`
	MinEmissionRate     int32     `json:"min_emission_rate"`
	MaxEmissionRate     int32     `json:"max_emission_rate"`
	MinStartVelocity    vec2JSON  `json:"min_start_velocity"`
	MaxStartVelocity    vec2JSON  `json:"max_start_velocity"`
	Gravity             float32   `json:"gravity"`
	MaxLifeTime         int32     `json:"max_life_time"`
	StartColor          colorJSON `json:"start_color"`
	EndColor            colorJSON `json:"end_color"`
	StartSize           float32   `json:"start_size"`
	EndSize             float32   `json:"end_size"`
	FollowPlayer        bool      `json:"follow_player"`
	PlayOnSpawn         bool      `json:"play_on_spawn"`
	DestroyOnEnd        bool      `json:"destroy_on_end"`
	AutoInvertColor     bool      `json:"auto_invert_color"`
}

// objectSet holds the typed objects decoded from one object map.
type objectSet struct {
	doors         []*Door
	keys          []*Key
	emitters      []*Emitter
	platforms     []*Platform
	abilityBlocks []*AbilityBlock
}

// decodeObjects splits a serialized object list into the typed object slices
// a level carries. Object types without runtime behavior here (wind zones,
// tutorials, level tags) are skipped.
func decodeObjects(raw []byte) (*objectSet, error) {
	var serialized []serializedObject
	if err := json.Unmarshal(raw, &serialized); err != nil {
		return nil, fmt.Errorf("invalid object map: %w", err)
	}

	set := &objectSet{}
	for i, obj := range serialized {
		switch obj.Type {
		case "Door":
			var data doorData
			if err := json.Unmarshal(obj.Data, &data); err != nil {
				return nil, fmt.Errorf("object %d (Door): %w", i, err)
			}
			set.doors = append(set.doors, &Door{
				Position: obj.Position.vec(),
				Size:     data.Size.vec(),
				Group:    data.Group,
			})
		case "Key":
			var data keyData
			if err := json.Unmarshal(obj.Data, &data); err != nil {
				return nil, fmt.Errorf("object %d (Key): %w", i, err)
			}
			set.keys = append(set.keys, &Key{
				Position: obj.Position.vec(),
				Group:    data.Group,
			})
		case "ParticleSystem":
			var data emitterData
			if err := json.Unmarshal(obj.Data, &data); err != nil {
				return nil, fmt.Errorf("object %d (ParticleSystem): %w", i, err)
			}
			set.emitters = append(set.emitters, newEmitter(obj.Position.vec(), data))
		case "Platform":
			var data platformData
			if err := json.Unmarshal(obj.Data, &data); err != nil {
				return nil, fmt.Errorf("object %d (Platform): %w", i, err)
			}
			set.platforms = append(set.platforms, newPlatform(obj.Position.vec(), data))
		case "AbilityBlock":
			var data abilityBlockData
			if err := json.Unmarshal(obj.Data, &data); err != nil {
				return nil, fmt.Errorf("object %d (AbilityBlock): %w", i, err)
			}
			set.abilityBlocks = append(set.abilityBlocks, &AbilityBlock{
				Position:  obj.Position.vec(),
				Size:      data.Size.vec(),
				Abilities: data.Abilities,
			})
		}
	}
	return set, nil
}
