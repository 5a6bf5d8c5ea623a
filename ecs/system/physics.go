package system

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
	"github.com/bproctor91/sidewinder/physics"
)

// PhysicsBridge mirrors PhysicsBody handles against the engine: it pushes
// component velocities before the step, steps, then pulls integrated
// transforms back and drains contacts into the world event queue. A stale
// handle is a no-op for that entity this frame and flags it for
// destruction; a failed step aborts the frame.
type PhysicsBridge struct {
	engine physics.Engine
	log    *zap.Logger
}

func NewPhysicsBridge(engine physics.Engine, log *zap.Logger) *PhysicsBridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &PhysicsBridge{engine: engine, log: log}
}

func (b *PhysicsBridge) Update(w *ecs.World, dt float64) error {
	byHandle := make(map[physics.Handle]ecs.Entity)
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody) {
		byHandle[pb.Handle] = e
	})

	b.preStep(w)

	if err := b.engine.Step(dt); err != nil {
		return fmt.Errorf("%w: physics step: %w", ecs.ErrAbortFrame, err)
	}

	b.postStep(w)
	b.drainContacts(w, byHandle)
	return nil
}

// preStep pushes each component velocity as the body's target linear
// velocity. Static bodies are skipped.
func (b *PhysicsBridge) preStep(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, pb *component.PhysicsBody, vel *component.Velocity) {
			if pb.Type == physics.Static {
				return
			}
			if err := b.engine.SetLinearVelocity(pb.Handle, vel.X, vel.Y); err != nil {
				b.handleBodyErr(w, e, pb, err)
			}
		})
}

// postStep pulls integrated positions and velocities back into the
// simulation state.
func (b *PhysicsBridge) postStep(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
			x, y, err := b.engine.Position(pb.Handle)
			if err != nil {
				b.handleBodyErr(w, e, pb, err)
				return
			}
			t.X, t.Y = x, y

			vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
			if !ok {
				return
			}
			vx, vy, err := b.engine.Velocity(pb.Handle)
			if err != nil {
				b.handleBodyErr(w, e, pb, err)
				return
			}
			vel.X, vel.Y = vx, vy
		})
}

func (b *PhysicsBridge) drainContacts(w *ecs.World, byHandle map[physics.Handle]ecs.Entity) {
	for _, c := range b.engine.DrainContacts() {
		ea, okA := byHandle[c.A]
		eb, okB := byHandle[c.B]
		if okA {
			w.Events().PushContact(ecs.ContactEvent{
				Entity:      ea,
				Other:       eb,
				NormalX:     c.NormalX,
				NormalY:     c.NormalY,
				OtherStatic: b.sideStatic(w, eb, okB),
			})
		}
		if okB {
			w.Events().PushContact(ecs.ContactEvent{
				Entity:      eb,
				Other:       ea,
				NormalX:     -c.NormalX,
				NormalY:     -c.NormalY,
				OtherStatic: b.sideStatic(w, ea, okA),
			})
		}
	}
}

// sideStatic reports whether the far side of a contact is static: either
// bare level geometry (no entity) or an entity with a static body.
func (b *PhysicsBridge) sideStatic(w *ecs.World, other ecs.Entity, tracked bool) bool {
	if !tracked {
		return true
	}
	pb, ok := ecs.Get(w, other, component.PhysicsBodyComponent.Kind())
	return ok && pb.Type == physics.Static
}

func (b *PhysicsBridge) handleBodyErr(w *ecs.World, e ecs.Entity, pb *component.PhysicsBody, err error) {
	if errors.Is(err, physics.ErrStaleHandle) {
		if ecs.DestroyEntity(w, e) {
			b.log.Warn("physics: stale body handle, destroying entity",
				zap.String("entity", e.String()),
				zap.Uint64("handle", uint64(pb.Handle)))
		}
		return
	}
	b.log.Warn("physics: body op failed",
		zap.String("entity", e.String()),
		zap.Error(err))
}
