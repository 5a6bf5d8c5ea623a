package entity

import (
	"errors"
	"fmt"

	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
)

const (
	labelLifetime  = 0.8
	labelFloatRate = 1.5 // m/s upward
)

// NewFloatingLabel spawns a short-lived text label drifting upward from
// (x, y). It has no physics body; the TTL system drifts and expires it
// under the same deferred-flush discipline as gameplay entities.
func NewFloatingLabel(w *ecs.World, deps Deps, text string, x, y float64) (ecs.Entity, error) {
	node := deps.Stage.NewLabelNode(text)
	deps.Stage.Attach(node)

	e := ecs.CreateEntity(w)
	attachErr := errors.Join(
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}),
		ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{Y: -labelFloatRate}),
		ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: labelLifetime}),
		ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Node: node}),
	)
	if attachErr != nil {
		rollback(w, deps, e, 0, node)
		return 0, fmt.Errorf("label: attach: %w", attachErr)
	}
	return e, nil
}
