package entity

import (
	"errors"
	"fmt"

	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
	"github.com/bproctor91/sidewinder/level"
	"github.com/bproctor91/sidewinder/physics"
)

const (
	walkerWidth  = 0.7
	walkerHeight = 0.9
	walkerHealth = 50
	walkerSpeed  = 1.8

	bossScale  = 2.0
	bossHealth = 400
)

// NewWalker builds a scripted ground enemy. It shares the player's
// movement state machine; its intent comes from the behavior script
// named in the descriptor.
func NewWalker(w *ecs.World, deps Deps, sp level.Spawn) (ecs.Entity, error) {
	return newWalkerSized(w, deps, sp, 1.0, walkerHealth)
}

// NewBoss is the walker at boss scale. Level loading skips boss
// descriptors; an external trigger spawns them through Spawn later.
func NewBoss(w *ecs.World, deps Deps, sp level.Spawn) (ecs.Entity, error) {
	return newWalkerSized(w, deps, sp, bossScale, bossHealth)
}

func newWalkerSized(w *ecs.World, deps Deps, sp level.Spawn, scale float64, health int) (ecs.Entity, error) {
	if sp.Behavior == "" {
		sp.Behavior = "patrol"
	}
	if sp.MaxX < sp.MinX {
		return 0, fmt.Errorf("%w: walker: patrol bounds [%g, %g] inverted", ErrBadSpawn, sp.MinX, sp.MaxX)
	}

	clips, err := deps.Library.Clips("walker")
	if err != nil {
		return 0, fmt.Errorf("%w: walker: %v", ErrBadSpawn, err)
	}
	sheet, _ := deps.Library.Sheet("walker")

	handle, err := deps.Engine.CreateBody(physics.Dynamic, sp.X, sp.Y, walkerWidth*scale, walkerHeight*scale)
	if err != nil {
		return 0, fmt.Errorf("walker: create body: %w", err)
	}

	node := deps.Stage.NewSpriteNode(deps.Sheets["walker"], sheet.FrameWidth, sheet.FrameHeight)
	deps.Stage.Attach(node)

	e := ecs.CreateEntity(w)
	attachErr := errors.Join(
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: sp.X, Y: sp.Y}),
		ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}),
		ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Handle: handle, Type: physics.Dynamic}),
		ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
			State:        component.StateIdle,
			Facing:       1,
			MoveSpeed:    walkerSpeed,
			JumpSpeed:    deps.Movement.JumpSpeed,
			WallSlideMax: deps.Movement.WallSlideMax,
			MaxJumps:     1,
			CoyoteFrames: deps.Movement.CoyoteFrames,
		}),
		ecs.Add(w, e, component.IntentComponent.Kind(), &component.Intent{}),
		ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{
			Behavior: sp.Behavior,
			MinX:     sp.MinX,
			MaxX:     sp.MaxX,
		}),
		ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: health, Max: health}),
		ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
			Node:   node,
			Width:  float64(sheet.FrameWidth) * scale,
			Height: float64(sheet.FrameHeight) * scale,
		}),
		ecs.Add(w, e, component.AnimationStateComponent.Kind(), &component.AnimationState{Clips: clips, Current: "idle"}),
		ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}),
	)
	if attachErr != nil {
		rollback(w, deps, e, handle, node)
		return 0, fmt.Errorf("walker: attach: %w", attachErr)
	}
	return e, nil
}
