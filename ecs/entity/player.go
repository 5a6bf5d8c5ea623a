package entity

import (
	"errors"
	"fmt"

	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
	"github.com/bproctor91/sidewinder/physics"
)

// Player body size in metres.
const (
	playerWidth  = 0.6
	playerHeight = 1.2
	playerHealth = 100
)

// NewPlayer builds the player entity: body, movement state, intent,
// sprite and clip table attached in one call.
func NewPlayer(w *ecs.World, deps Deps, x, y float64) (ecs.Entity, error) {
	clips, err := deps.Library.Clips("player")
	if err != nil {
		return 0, fmt.Errorf("%w: player: %v", ErrBadSpawn, err)
	}
	sheet, _ := deps.Library.Sheet("player")

	handle, err := deps.Engine.CreateBody(physics.Dynamic, x, y, playerWidth, playerHeight)
	if err != nil {
		return 0, fmt.Errorf("player: create body: %w", err)
	}

	node := deps.Stage.NewSpriteNode(deps.Sheets["player"], sheet.FrameWidth, sheet.FrameHeight)
	deps.Stage.Attach(node)

	e := ecs.CreateEntity(w)
	attachErr := errors.Join(
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}),
		ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}),
		ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Handle: handle, Type: physics.Dynamic}),
		ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
			State:        component.StateIdle,
			Facing:       1,
			MoveSpeed:    deps.Movement.MoveSpeed,
			JumpSpeed:    deps.Movement.JumpSpeed,
			WallSlideMax: deps.Movement.WallSlideMax,
			MaxJumps:     deps.Movement.MaxJumps,
			CoyoteFrames: deps.Movement.CoyoteFrames,
		}),
		ecs.Add(w, e, component.IntentComponent.Kind(), &component.Intent{}),
		ecs.Add(w, e, component.CooldownComponent.Kind(), &component.Cooldown{Interval: deps.Combat.FireCooldown}),
		ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: playerHealth, Max: playerHealth}),
		ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
			Node:   node,
			Width:  float64(sheet.FrameWidth),
			Height: float64(sheet.FrameHeight),
		}),
		ecs.Add(w, e, component.AnimationStateComponent.Kind(), &component.AnimationState{Clips: clips, Current: "idle"}),
		ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}),
	)
	if attachErr != nil {
		rollback(w, deps, e, handle, node)
		return 0, fmt.Errorf("player: attach: %w", attachErr)
	}
	return e, nil
}
