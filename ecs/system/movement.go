package system

import (
	"go.uber.org/zap"

	"github.com/bproctor91/sidewinder/common"
	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
)

// MovementSystem is the movement state machine for every entity carrying
// a Player component, the player and scripted enemies alike. It consumes
// the grounding/wall flags written by collision resolution and the
// frame's Intent, and is the only writer of State and the JumpCount
// increment.
//
// Transition priority: dead is terminal; wall slide; accepted jump;
// grounded run/idle; airborne jump/fall by vertical velocity sign.
type MovementSystem struct {
	log *zap.Logger
}

func NewMovementSystem(log *zap.Logger) *MovementSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &MovementSystem{log: log}
}

func (s *MovementSystem) Update(w *ecs.World, _ float64) error {
	for _, e := range w.Query(
		component.PlayerComponent.Kind(),
		component.IntentComponent.Kind(),
		component.VelocityComponent.Kind(),
	) {
		p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
		intent, _ := ecs.Get(w, e, component.IntentComponent.Kind())
		vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())

		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Depleted() && p.State != component.StateDead {
			s.log.Info("movement: entity died", zap.String("entity", e.String()))
			p.State = component.StateDead
		}
		if p.State == component.StateDead {
			vel.X = 0
			continue
		}

		if dir := common.Sign(intent.MoveX); dir != 0 {
			p.Facing = dir
		}
		vel.X = intent.MoveX * p.MoveSpeed

		// wall slide outranks the jump per the transition order
		if !p.Grounded && p.WallDirection != 0 && common.Sign(intent.MoveX) == p.WallDirection {
			p.State = component.StateWallSliding
			if vel.Y > p.WallSlideMax {
				vel.Y = p.WallSlideMax
			}
			continue
		}

		if intent.Jump {
			if p.Grounded || p.CoyoteLeft > 0 || p.JumpCount < p.MaxJumps {
				vel.Y = -p.JumpSpeed
				if p.JumpCount < p.MaxJumps {
					p.JumpCount++
				}
				p.CoyoteLeft = 0
				p.State = component.StateJumping
				continue
			}
			// rejected: no state or velocity change from this input
		}

		switch {
		case p.Grounded && intent.MoveX != 0:
			p.State = component.StateRunning
		case p.Grounded:
			p.State = component.StateIdle
		case vel.Y < 0:
			p.State = component.StateJumping
		default:
			p.State = component.StateFalling
		}
	}
	return nil
}
