package component

import "image/color"

// Projectile ages out after Lifetime seconds and applies Damage on its
// first hit. Owner is immune to it for every contact.
type Projectile struct {
	Damage   int
	Owner    uint64 // Entity of the firing entity
	Lifetime float64
	Speed    float64
	Glow     color.RGBA
}

var ProjectileComponent = NewComponent[Projectile]()
