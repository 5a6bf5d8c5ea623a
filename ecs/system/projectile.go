package system

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
	"github.com/bproctor91/sidewinder/ecs/entity"
)

// ProjectileSystem owns the projectile lifecycle: it fires bolts from
// entities with fire intent, ages live bolts out, and applies the damage
// events raised by collision resolution. A bolt lands at most one hit and
// never hurts its owner.
type ProjectileSystem struct {
	deps entity.Deps
	log  *zap.Logger
}

func NewProjectileSystem(deps entity.Deps, log *zap.Logger) *ProjectileSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProjectileSystem{deps: deps, log: log}
}

func (s *ProjectileSystem) Update(w *ecs.World, dt float64) error {
	s.fire(w, dt)

	// spent bolts apply no damage even when contact and expiry share a
	// frame
	spent := make(map[ecs.Entity]bool)

	ecs.ForEach(w, component.ProjectileComponent.Kind(), func(e ecs.Entity, p *component.Projectile) {
		p.Lifetime -= dt
		// epsilon so accumulated float error can't stretch the lifetime
		// by a frame
		if p.Lifetime <= 1e-9 {
			spent[e] = true
			ecs.DestroyEntity(w, e)
		}
	})

	for _, d := range w.Events().DrainDamage() {
		if spent[d.Projectile] || !ecs.IsAlive(w, d.Projectile) {
			continue
		}
		if d.Target == d.Owner {
			s.log.Debug("projectile: ignoring owner contact", zap.String("projectile", d.Projectile.String()))
			continue
		}
		if !ecs.IsAlive(w, d.Target) {
			continue
		}
		h, ok := ecs.Get(w, d.Target, component.HealthComponent.Kind())
		if !ok {
			continue
		}
		h.Current -= d.Amount

		if t, ok := ecs.Get(w, d.Target, component.TransformComponent.Kind()); ok {
			if _, err := entity.NewFloatingLabel(w, s.deps, "-"+strconv.Itoa(d.Amount), t.X, t.Y-0.5); err != nil {
				s.log.Warn("projectile: hit label", zap.Error(err))
			}
		}

		// the player's death is a state transition, not a despawn
		if h.Depleted() && !ecs.Has(w, d.Target, component.PlayerTagComponent.Kind()) {
			ecs.DestroyEntity(w, d.Target)
		}

		spent[d.Projectile] = true
		ecs.DestroyEntity(w, d.Projectile)
	}
	return nil
}

// fire ticks cooldowns and spawns a bolt for each live shooter with fire
// intent and a ready cooldown.
func (s *ProjectileSystem) fire(w *ecs.World, dt float64) {
	for _, e := range w.Query(
		component.IntentComponent.Kind(),
		component.CooldownComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.TransformComponent.Kind(),
	) {
		cd, _ := ecs.Get(w, e, component.CooldownComponent.Kind())
		if cd.Remaining > 0 {
			cd.Remaining -= dt
		}

		intent, _ := ecs.Get(w, e, component.IntentComponent.Kind())
		p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !intent.Fire || cd.Remaining > 0 || p.State == component.StateDead {
			continue
		}

		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if _, err := entity.NewBolt(w, s.deps, e, t.X, t.Y, p.Facing); err != nil {
			s.log.Warn("projectile: fire failed", zap.String("shooter", e.String()), zap.Error(err))
			continue
		}
		cd.Remaining = cd.Interval
	}
}
