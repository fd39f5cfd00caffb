package level

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/SkaillZ/complementary/render/core"
)

// Platform is a solid quad that commutes between its spawn position and a
// goal offset. A platform bound to one world is only visible and solid
// there; an unbound platform exists in both.
type Platform struct {
	Position mgl32.Vec2
	Size     mgl32.Vec2
	Speed    float32
	// World is nil for platforms present in both worlds.
	World *core.WorldType

	currentGoal mgl32.Vec2
	nextGoal    mgl32.Vec2
}

func newPlatform(position mgl32.Vec2, data platformData) *Platform {
	p := &Platform{
		Position: position,
		Size:     data.Size.vec(),
		Speed:    data.Speed,
	}
	switch data.WorldType {
	case "Light":
		w := core.WorldLight
		p.World = &w
	case "Dark":
		w := core.WorldDark
		p.World = &w
	}
	p.currentGoal = position.Add(data.Goal.vec())
	p.nextGoal = position
	return p
}

// Tick moves the platform toward its current goal and turns it around when
// it gets there. The squared distance is compared against the per-tick
// speed, so the snap fires one step early and the platform never overshoots.
func (p *Platform) Tick() {
	delta := p.currentGoal.Sub(p.Position)
	distance := delta.Dot(delta)
	if distance < 0.0005 {
		p.currentGoal, p.nextGoal = p.nextGoal, p.currentGoal
	}
	if distance < p.Speed {
		p.Position = p.currentGoal
		p.currentGoal, p.nextGoal = p.nextGoal, p.currentGoal
	} else {
		p.Position = p.Position.Add(delta.Normalize().Mul(p.Speed))
	}
}

// Blocks reports whether the platform occupies the given point in the given
// world. Platforms bound to the other world don't collide.
func (p *Platform) Blocks(pt mgl32.Vec2, world core.WorldType) bool {
	if p.World != nil && *p.World != world {
		return false
	}
	return pt.X() >= p.Position.X() && pt.X() < p.Position.X()+p.Size.X() &&
		pt.Y() >= p.Position.Y() && pt.Y() < p.Position.Y()+p.Size.Y()
}

// Ability names one of the player movement abilities an ability block
// grants. The movement mechanics themselves live with the player; the level
// only carries the blocks and their display colors.
type Ability string

const (
	AbilityNone       Ability = "None"
	AbilityDoubleJump Ability = "DoubleJump"
	AbilityGlider     Ability = "Glider"
	AbilityDash       Ability = "Dash"
	AbilityWallJump   Ability = "WallJump"
)

// Color is the tint ability blocks granting this ability render with.
func (a Ability) Color() core.Color {
	switch a {
	case AbilityDoubleJump:
		return core.ColorGreen
	case AbilityGlider:
		return core.NewSolidColor(0, 0.75, 1)
	case AbilityDash:
		return core.ColorOrange
	case AbilityWallJump:
		return core.NewSolidColor(0.6, 0, 1)
	}
	return core.ColorGray
}

// AbilityBlock grants an ability pair on touch, one ability per world. It
// renders as a quad tinted with the color of the ability active in the
// current world.
type AbilityBlock struct {
	Position mgl32.Vec2
	Size     mgl32.Vec2
	// Abilities holds the light-world ability first, the dark-world one
	// second.
	Abilities [2]Ability
}

// CurrentAbility is the ability the block grants in the given world.
func (b *AbilityBlock) CurrentAbility(world core.WorldType) Ability {
	if world == core.WorldDark {
		return b.Abilities[1]
	}
	return b.Abilities[0]
}

// PlatformInstances builds the per-platform draw data for the current
// world. Platforms bound to the other world are omitted.
func (l *Level) PlatformInstances(world core.WorldType) []core.DoorInstance {
	if len(l.Platforms) == 0 {
		return nil
	}
	instances := make([]core.DoorInstance, 0, len(l.Platforms))
	for _, p := range l.Platforms {
		color := world.ForegroundColor()
		if p.World != nil {
			if *p.World != world {
				continue
			}
			color = p.World.ForegroundColor()
		}
		instances = append(instances, core.DoorInstance{
			Color:    color,
			Position: [2]float32{p.Position.X(), p.Position.Y()},
			Size:     [2]float32{p.Size.X(), p.Size.Y()},
		})
	}
	return instances
}

// AbilityBlockInstances builds the per-block draw data, tinted with the
// ability active in the current world.
func (l *Level) AbilityBlockInstances(world core.WorldType) []core.DoorInstance {
	if len(l.AbilityBlocks) == 0 {
		return nil
	}
	instances := make([]core.DoorInstance, 0, len(l.AbilityBlocks))
	for _, b := range l.AbilityBlocks {
		instances = append(instances, core.DoorInstance{
			Color:    b.CurrentAbility(world).Color(),
			Position: [2]float32{b.Position.X(), b.Position.Y()},
			Size:     [2]float32{b.Size.X(), b.Size.Y()},
		})
	}
	return instances
}
