package shaders

import (
	_ "embed"
)

//go:embed tilemap.wgsl
var TilemapWGSL string

//go:embed door.wgsl
var DoorWGSL string

//go:embed platform.wgsl
var PlatformWGSL string

//go:embed particle.wgsl
var ParticleWGSL string

//go:embed player.wgsl
var PlayerWGSL string

//go:embed player_debug.wgsl
var PlayerDebugWGSL string

//go:embed text.wgsl
var TextWGSL string
