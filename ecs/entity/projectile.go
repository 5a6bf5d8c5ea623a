package entity

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
	"github.com/bproctor91/sidewinder/physics"
)

const (
	boltSize = 0.25
	// spawn offset from the shooter's center, metres
	boltMuzzle = 0.6
)

var boltGlow = color.RGBA{R: 0xff, G: 0xd8, B: 0x66, A: 0xff}

// NewBolt fires a projectile owned by shooter, moving horizontally in
// facing direction. Kinematic so gravity leaves it alone; the owner is
// immune to it for its whole flight.
func NewBolt(w *ecs.World, deps Deps, shooter ecs.Entity, x, y float64, facing int) (ecs.Entity, error) {
	clips, err := deps.Library.Clips("bolt")
	if err != nil {
		return 0, fmt.Errorf("%w: bolt: %v", ErrBadSpawn, err)
	}
	sheet, _ := deps.Library.Sheet("bolt")

	if facing == 0 {
		facing = 1
	}
	startX := x + float64(facing)*boltMuzzle
	vx := float64(facing) * deps.Combat.ProjectileSpeed

	handle, err := deps.Engine.CreateBody(physics.Kinematic, startX, y, boltSize, boltSize)
	if err != nil {
		return 0, fmt.Errorf("bolt: create body: %w", err)
	}
	if err := deps.Engine.SetLinearVelocity(handle, vx, 0); err != nil {
		_ = deps.Engine.RemoveBody(handle)
		return 0, fmt.Errorf("bolt: launch: %w", err)
	}

	node := deps.Stage.NewSpriteNode(deps.Sheets["bolt"], sheet.FrameWidth, sheet.FrameHeight)
	deps.Stage.Attach(node)

	e := ecs.CreateEntity(w)
	attachErr := errors.Join(
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: startX, Y: y}),
		ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: vx}),
		ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Handle: handle, Type: physics.Kinematic}),
		ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
			Damage:   deps.Combat.ProjectileDamage,
			Owner:    uint64(shooter),
			Lifetime: deps.Combat.ProjectileLifetime,
			Speed:    deps.Combat.ProjectileSpeed,
			Glow:     boltGlow,
		}),
		ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
			Node:   node,
			Width:  float64(sheet.FrameWidth),
			Height: float64(sheet.FrameHeight),
		}),
		ecs.Add(w, e, component.AnimationStateComponent.Kind(), &component.AnimationState{Clips: clips, Current: "idle"}),
	)
	if attachErr != nil {
		rollback(w, deps, e, handle, node)
		return 0, fmt.Errorf("bolt: attach: %w", attachErr)
	}
	return e, nil
}
