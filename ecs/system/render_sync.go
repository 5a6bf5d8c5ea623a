package system

import (
	"github.com/bproctor91/sidewinder/ecs"
	"github.com/bproctor91/sidewinder/ecs/component"
	"github.com/bproctor91/sidewinder/render"
)

// RenderSyncSystem is the last simulation stage: it pushes transforms and
// animation frames into the render stage. All traffic is one-way; nothing
// here reads the stage back into simulation state.
type RenderSyncSystem struct {
	stage *render.Stage
	ppm   float64
}

func NewRenderSyncSystem(stage *render.Stage, pixelsPerMeter float64) *RenderSyncSystem {
	return &RenderSyncSystem{stage: stage, ppm: pixelsPerMeter}
}

func (s *RenderSyncSystem) Update(w *ecs.World, _ float64) error {
	ecs.ForEach2(w, component.SpriteComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, sprite *component.Sprite, t *component.Transform) {
			if sprite.Node == nil {
				return
			}
			s.stage.SetTransform(sprite.Node, t.X*s.ppm-sprite.Width/2, t.Y*s.ppm-sprite.Height/2)

			if anim, ok := ecs.Get(w, e, component.AnimationStateComponent.Kind()); ok {
				s.stage.SetFrame(sprite.Node, anim.FrameIndex())
				s.stage.SetFlip(sprite.Node, anim.FlipX)
			}
		})
	return nil
}
