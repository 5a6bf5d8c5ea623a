package component

import "github.com/bproctor91/sidewinder/render"

// Sprite references a scene node owned by the render stage plus the logical
// pixel size used for layout. The node itself is opaque to the simulation.
type Sprite struct {
	Node   *render.SceneNode
	Width  float64
	Height float64
}

var SpriteComponent = NewComponent[Sprite]()
