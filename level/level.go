package level

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/SkaillZ/complementary/render/core"
	"github.com/SkaillZ/complementary/tilemap"
)

// ID identifies a loaded level instance.
type ID string

func makeID() ID { return ID(uuid.NewString()) }

// Level bundles a tile grid with the objects placed on top of it. Doors,
// keys and emitters come from the JSON object map stored next to the
// tilemap under the same name.
type Level struct {
	ID      ID
	Name    string
	Tilemap *tilemap.Tilemap

	Doors         []*Door
	Keys          []*Key
	Emitters      []*Emitter
	Platforms     []*Platform
	AbilityBlocks []*AbilityBlock

	State *State
}

// List returns the names of all levels in dir, sorted. A level's name is the
// tilemap file name without the .cmtm extension.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(filepath.Ext(name), ".cmtm") {
			names = append(names, strings.TrimSuffix(name, filepath.Ext(name)))
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load reads <dir>/<name>.cmtm and its sibling object map <dir>/<name>.json.
// A missing object map is not an error; the level just has no objects.
func Load(dir, name string) (*Level, error) {
	tm, err := tilemap.Load(filepath.Join(dir, name+".cmtm"))
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", name, err)
	}

	lvl := &Level{
		ID:      makeID(),
		Name:    name,
		Tilemap: tm,
		State:   NewState(),
	}

	raw, err := os.ReadFile(filepath.Join(dir, name+".json"))
	if err == nil {
		set, err := decodeObjects(raw)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", name, err)
		}
		lvl.Doors = set.doors
		lvl.Keys = set.keys
		lvl.Emitters = set.emitters
		lvl.Platforms = set.platforms
		lvl.AbilityBlocks = set.abilityBlocks
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("level %q: %w", name, err)
	}

	for _, key := range lvl.Keys {
		lvl.State.RegisterKey(key.Group)
	}
	return lvl, nil
}

// Tick advances all object state by one fixed step.
func (l *Level) Tick() {
	for _, key := range l.Keys {
		key.Tick()
	}
	for _, door := range l.Doors {
		door.Tick(l.State)
	}
	for _, em := range l.Emitters {
		em.Tick()
	}
	for _, p := range l.Platforms {
		p.Tick()
	}
}

// DoorInstances builds the per-door draw data for the current world. Door
// tint follows the world's foreground and fades out as the door's key group
// fills up.
func (l *Level) DoorInstances(world core.WorldType) []core.DoorInstance {
	if len(l.Doors) == 0 {
		return nil
	}
	instances := make([]core.DoorInstance, 0, len(l.Doors))
	for _, door := range l.Doors {
		instances = append(instances, core.DoorInstance{
			Color:    world.DoorColor().WithAlpha(1.0 - door.keyCollectedPercentage),
			Position: [2]float32{door.Position.X(), door.Position.Y()},
			Size:     [2]float32{door.Size.X(), door.Size.Y()},
		})
	}
	return instances
}

// ParticleInstances builds the per-particle draw data: one diamond per key
// (fading out once collected) plus everything the emitters currently keep
// alive.
func (l *Level) ParticleInstances(world core.WorldType) []core.ParticleInstance {
	var instances []core.ParticleInstance
	for _, key := range l.Keys {
		alpha := key.Alpha()
		if alpha <= 0 {
			continue
		}
		instances = append(instances, core.ParticleInstance{
			Color:    world.DoorColor().WithAlpha(alpha),
			Position: [2]float32{key.Position.X(), key.Position.Y()},
		})
	}
	for _, em := range l.Emitters {
		instances = em.AppendInstances(instances, world)
	}
	return instances
}

// State tracks collected keys per door group.
type State struct {
	keysByGroup map[int32]*collectedKeys
}

type collectedKeys struct {
	total     int
	collected int
}

func NewState() *State {
	return &State{keysByGroup: make(map[int32]*collectedKeys)}
}

func (s *State) group(group int32) *collectedKeys {
	entry, ok := s.keysByGroup[group]
	if !ok {
		entry = &collectedKeys{}
		s.keysByGroup[group] = entry
	}
	return entry
}

func (s *State) RegisterKey(group int32) {
	s.group(group).total++
}

// AddCollectedKey records one collected key in the given group.
func (s *State) AddCollectedKey(group int32) {
	s.group(group).collected++
}

// KeyCollectedPercentage reports the collected fraction for a group in
// [0, 1]. A group with no keys counts as complete.
func (s *State) KeyCollectedPercentage(group int32) float32 {
	entry, ok := s.keysByGroup[group]
	if !ok || entry.total == 0 {
		return 1.0
	}
	return float32(entry.collected) / float32(entry.total)
}

// AllKeysCollected reports whether every key in the group was collected.
func (s *State) AllKeysCollected(group int32) bool {
	entry, ok := s.keysByGroup[group]
	if !ok {
		return true
	}
	return entry.collected >= entry.total
}

// Door blocks the player until its key group is fully collected.
type Door struct {
	Position mgl32.Vec2
	Size     mgl32.Vec2
	Group    int32

	keyCollectedPercentage float32
}

// Tick refreshes the cached key percentage driving the door's alpha.
func (d *Door) Tick(state *State) {
	d.keyCollectedPercentage = state.KeyCollectedPercentage(d.Group)
}

// Open reports whether the door no longer blocks movement.
func (d *Door) Open() bool {
	return d.keyCollectedPercentage >= 1.0
}

// Blocks reports whether the door currently occupies the given point.
func (d *Door) Blocks(p mgl32.Vec2) bool {
	if d.Open() {
		return false
	}
	return p.X() >= d.Position.X() && p.X() < d.Position.X()+d.Size.X() &&
		p.Y() >= d.Position.Y() && p.Y() < d.Position.Y()+d.Size.Y()
}

const keyFadeTicks = 30

// Key is a collectible diamond. Collected keys fade out over a short
// animation before disappearing.
type Key struct {
	Position mgl32.Vec2
	Group    int32

	collected      bool
	ticksCollected int32
}

// Collectible reports whether the key was not collected yet.
func (k *Key) Collectible() bool { return !k.collected }

// Collect marks the key collected and bumps its group counter. Collecting
// twice has no effect.
func (k *Key) Collect(state *State) {
	if k.collected {
		return
	}
	k.collected = true
	state.AddCollectedKey(k.Group)
}

func (k *Key) Tick() {
	if k.collected {
		k.ticksCollected++
	}
}

// Alpha is 1 while collectible and fades to 0 over the collect animation.
func (k *Key) Alpha() float32 {
	if !k.collected {
		return 1.0
	}
	alpha := 1.0 - float32(k.ticksCollected)/float32(keyFadeTicks)
	if alpha < 0 {
		return 0
	}
	return alpha
}
