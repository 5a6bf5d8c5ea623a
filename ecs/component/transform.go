package component

// Transform is an entity's position in simulation space, in metres.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()
