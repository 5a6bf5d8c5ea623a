package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/bproctor91/sidewinder/common"
	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
)

// a contact counts as ground/wall when the normal is within ~45° of the
// axis
const contactAxisThreshold = 0.7

// CollisionSystem consumes the contact events drained by the physics
// bridge. It is the only writer of Grounded/WallDirection and of the
// JumpCount reset on landing; projectile contacts become damage events
// resolved by the projectile system.
type CollisionSystem struct {
	log *zap.Logger
}

func NewCollisionSystem(log *zap.Logger) *CollisionSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &CollisionSystem{log: log}
}

func (s *CollisionSystem) Update(w *ecs.World, _ float64) error {
	grounded := make(map[ecs.Entity]bool)
	wall := make(map[ecs.Entity]int)

	for _, c := range w.Events().DrainContacts() {
		s.classifyDamage(w, c)

		if !ecs.Has(w, c.Entity, component.PlayerComponent.Kind()) {
			continue
		}
		switch {
		case c.NormalY > contactAxisThreshold:
			grounded[c.Entity] = true
		case c.OtherStatic && math.Abs(c.NormalX) > contactAxisThreshold:
			wall[c.Entity] = common.Sign(c.NormalX)
		}
	}

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, p *component.Player) {
		now := grounded[e]
		if now {
			if !p.Grounded {
				// exactly the false→true landing transition
				p.JumpCount = 0
			}
			p.CoyoteLeft = p.CoyoteFrames
		} else if p.CoyoteLeft > 0 {
			p.CoyoteLeft--
		}
		p.Grounded = now

		if !now {
			p.WallDirection = wall[e]
		} else {
			p.WallDirection = 0
		}
	})
	return nil
}

// classifyDamage raises a damage event for a projectile touching a
// damageable entity. Owner filtering happens at the application site.
func (s *CollisionSystem) classifyDamage(w *ecs.World, c ecs.ContactEvent) {
	proj, ok := ecs.Get(w, c.Entity, component.ProjectileComponent.Kind())
	if !ok || !c.Other.Valid() {
		return
	}
	if !ecs.Has(w, c.Other, component.HealthComponent.Kind()) {
		return
	}
	w.Events().PushDamage(ecs.DamageEvent{
		Projectile: c.Entity,
		Owner:      ecs.Entity(proj.Owner),
		Target:     c.Other,
		Amount:     proj.Damage,
	})
}
