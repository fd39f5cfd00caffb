package complementary

import (
	"fmt"
	"strings"

	"github.com/SkaillZ/complementary/level"
	"github.com/SkaillZ/complementary/render/core"
	"github.com/SkaillZ/complementary/render/gpu"
	"github.com/SkaillZ/complementary/tilemap"
)

// Game holds the world polarity, the current level and the player, and
// produces one frame snapshot per tick for the renderer.
type Game struct {
	log Logger

	mapDir     string
	levels     []string
	levelIndex int

	world  core.WorldType
	level  *level.Level
	player *Player

	debug bool
}

// NewGame lists the levels in mapDir and loads the first main level (names
// starting with "map"; everything else is considered a test map).
func NewGame(log Logger, mapDir string, debug bool) (*Game, error) {
	names, err := level.List(mapDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	var mains []string
	for _, name := range names {
		if strings.HasPrefix(name, "map") {
			mains = append(mains, name)
		}
	}
	if len(mains) == 0 {
		return nil, fmt.Errorf("no levels found in %s", mapDir)
	}

	g := &Game{
		log:    log,
		mapDir: mapDir,
		levels: mains,
		world:  core.WorldLight,
		player: NewPlayer(),
		debug:  debug,
	}
	if err := g.loadLevel(0); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Level() *level.Level { return g.level }

func (g *Game) loadLevel(index int) error {
	lvl, err := level.Load(g.mapDir, g.levels[index])
	if err != nil {
		return err
	}
	g.levelIndex = index
	g.level = lvl
	g.log.Infof("loaded level %s (%s)", lvl.Name, lvl.ID)
	g.spawnPlayer()
	return nil
}

func (g *Game) spawnPlayer() {
	pos, ok := g.level.Tilemap.SpawnPoint()
	if !ok {
		g.log.Warnf("level %s has no spawn point", g.level.Name)
	}
	g.player.Reset(pos)
}

// InstallLevel uploads the current level's baked geometry into the renderer.
func (g *Game) InstallLevel(renderer *gpu.FrameRenderer) error {
	vertices := tilemap.BakeVertices(g.level.Tilemap)
	return renderer.SetLevelGeometry(vertices,
		float32(g.level.Tilemap.Width()), float32(g.level.Tilemap.Height()))
}

// Tick advances the simulation by one fixed step. It reports whether the
// level changed, in which case the caller must reinstall level geometry.
func (g *Game) Tick(input *Input) (levelChanged bool, err error) {
	if g.player.SwitchRequested(input) {
		g.world = g.world.Inverse()
	}

	g.player.Tick(input, g.level, g.world)
	g.level.Tick()

	if g.player.TouchedGoal() {
		next := (g.levelIndex + 1) % len(g.levels)
		if err := g.loadLevel(next); err != nil {
			return false, fmt.Errorf("failed to load next level: %w", err)
		}
		return true, nil
	}
	if g.player.Dead() {
		g.spawnPlayer()
	}
	return false, nil
}

// Snapshot builds the renderer input for the current state.
func (g *Game) Snapshot(fps float64) *core.FrameSnapshot {
	snap := &core.FrameSnapshot{
		World:        g.world,
		InvertColors: g.world.InvertColors(),
		Platforms: append(g.level.AbilityBlockInstances(g.world),
			g.level.PlatformInstances(g.world)...),
		Doors:     g.level.DoorInstances(g.world),
		Particles: g.level.ParticleInstances(g.world),
		Player: core.PlayerState{
			Model: g.player.ModelMatrix(),
			Tint:  g.world.ForegroundColor(),
			Debug: g.debug,
		},
	}
	if g.debug {
		snap.Texts = append(snap.Texts, core.TextItem{
			Text:     fmt.Sprintf("FPS: %.1f", fps),
			Position: [2]float32{10, 10},
			Scale:    1.0,
			Color:    core.Color{R: 1, G: 1, B: 0, A: 1},
		})
		snap.Texts = append(snap.Texts, core.TextItem{
			Text:     g.level.Name,
			Position: [2]float32{10, 40},
			Scale:    1.0,
			Color:    core.Color{R: 1, G: 1, B: 0, A: 1},
		})
	}
	return snap
}
