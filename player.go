package complementary

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/SkaillZ/complementary/level"
	"github.com/SkaillZ/complementary/render/core"
	"github.com/SkaillZ/complementary/tilemap"
)

// Per-tick movement constants. One tick is 10ms, distances are in tiles.
const (
	playerMoveSpeed    = 0.1
	playerJumpVelocity = 0.27
	playerGravity      = 0.012
	playerMaxFallSpeed = 0.35
)

// Input is the per-tick button state the player consumes. The window layer
// fills one of these from glfw every frame.
type Input struct {
	Left   bool
	Right  bool
	Jump   bool
	Switch bool
}

// Player is the single controllable quad. Its position is the bottom-center
// of its bounds, matching the baked player mesh.
type Player struct {
	position mgl32.Vec2
	velocity mgl32.Vec2
	onGround bool
	dead     bool
	atGoal   bool

	prevJump   bool
	prevSwitch bool
}

func NewPlayer() *Player {
	return &Player{}
}

func (p *Player) Position() mgl32.Vec2 { return p.position }

// Reset places the player at a spawn position with cleared state.
func (p *Player) Reset(position mgl32.Vec2) {
	p.position = position
	p.velocity = mgl32.Vec2{}
	p.onGround = false
	p.dead = false
	p.atGoal = false
}

func (p *Player) Dead() bool        { return p.dead }
func (p *Player) TouchedGoal() bool { return p.atGoal }

// SwitchRequested reports a rising edge on the switch button.
func (p *Player) SwitchRequested(input *Input) bool {
	return input.Switch && !p.prevSwitch
}

// ModelMatrix is the world transform fed to the player pipeline.
func (p *Player) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(p.position.X(), p.position.Y(), 0)
}

func (p *Player) halfWidth() float32 { return core.PlayerSize[0] / 2 }
func (p *Player) height() float32    { return core.PlayerSize[1] }

// Tick advances physics by one fixed step and resolves tile and door
// collisions axis by axis.
func (p *Player) Tick(input *Input, lvl *level.Level, world core.WorldType) {
	if input.Left {
		p.velocity[0] = -playerMoveSpeed
	} else if input.Right {
		p.velocity[0] = playerMoveSpeed
	} else {
		p.velocity[0] = 0
	}

	if input.Jump && !p.prevJump && p.onGround {
		p.velocity[1] = -playerJumpVelocity
		p.onGround = false
	}
	p.prevJump = input.Jump
	p.prevSwitch = input.Switch

	p.velocity[1] += playerGravity
	if p.velocity[1] > playerMaxFallSpeed {
		p.velocity[1] = playerMaxFallSpeed
	}

	p.moveAxis(lvl, world, 0, p.velocity.X())
	p.moveAxis(lvl, world, 1, p.velocity.Y())

	p.checkTiles(lvl.Tilemap)
	p.collectKeys(lvl)
}

// moveAxis moves along one axis and backs out of solid geometry, zeroing
// the velocity component on contact. Vertical contact from below sets the
// ground flag.
func (p *Player) moveAxis(lvl *level.Level, world core.WorldType, axis int, delta float32) {
	if delta == 0 {
		if axis == 1 {
			p.onGround = false
		}
		return
	}

	p.position[axis] += delta
	if !p.collides(lvl, world) {
		if axis == 1 {
			p.onGround = false
		}
		return
	}

	// Step back in small increments until free.
	const step = 1.0 / 64.0
	back := float32(step)
	if delta > 0 {
		back = -step
	}
	for i := 0; i < 64 && p.collides(lvl, world); i++ {
		p.position[axis] += back
	}

	if axis == 1 && delta > 0 {
		p.onGround = true
	}
	p.velocity[axis] = 0
}

// collides checks the corners and edge midpoints of the player bounds
// against solid tiles, closed doors and platforms solid in this world.
func (p *Player) collides(lvl *level.Level, world core.WorldType) bool {
	minX := p.position.X() - p.halfWidth()
	maxX := p.position.X() + p.halfWidth()
	minY := p.position.Y()
	maxY := p.position.Y() + p.height()

	points := [...]mgl32.Vec2{
		{minX, minY}, {maxX, minY},
		{minX, maxY}, {maxX, maxY},
		{p.position.X(), minY}, {p.position.X(), maxY},
		{minX, p.position.Y() + p.height()/2}, {maxX, p.position.Y() + p.height()/2},
	}
	for _, pt := range points {
		if tileAt(lvl.Tilemap, pt).Solid() {
			return true
		}
		for _, door := range lvl.Doors {
			if door.Blocks(pt) {
				return true
			}
		}
		for _, platform := range lvl.Platforms {
			if platform.Blocks(pt, world) {
				return true
			}
		}
	}
	return false
}

// checkTiles scans the overlapped tiles for spikes and goals.
func (p *Player) checkTiles(m *tilemap.Tilemap) {
	minX := int32(p.position.X() - p.halfWidth())
	maxX := int32(p.position.X() + p.halfWidth())
	minY := int32(p.position.Y())
	maxY := int32(p.position.Y() + p.height())

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if x < 0 || y < 0 || x >= m.Width() || y >= m.Height() {
				continue
			}
			switch m.Get(x, y) {
			case tilemap.TileSpikesLeft, tilemap.TileSpikesRight,
				tilemap.TileSpikesUp, tilemap.TileSpikesDown,
				tilemap.TileSpikeAllSides:
				p.dead = true
			case tilemap.TileGoalLeft, tilemap.TileGoalRight,
				tilemap.TileGoalUp, tilemap.TileGoalDown:
				p.atGoal = true
			}
		}
	}
}

func (p *Player) collectKeys(lvl *level.Level) {
	minX := p.position.X() - p.halfWidth()
	maxX := p.position.X() + p.halfWidth()
	minY := p.position.Y()
	maxY := p.position.Y() + p.height()

	for _, key := range lvl.Keys {
		if !key.Collectible() {
			continue
		}
		kx, ky := key.Position.X(), key.Position.Y()
		if maxX > kx && minX < kx+1 && maxY > ky && minY < ky+1 {
			key.Collect(lvl.State)
		}
	}
}

func tileAt(m *tilemap.Tilemap, p mgl32.Vec2) tilemap.Tile {
	x, y := int32(p.X()), int32(p.Y())
	if p.X() < 0 || p.Y() < 0 || x >= m.Width() || y >= m.Height() {
		// Outside the map counts as wall so the player can't leave.
		return tilemap.TileSolid
	}
	return m.Get(x, y)
}
