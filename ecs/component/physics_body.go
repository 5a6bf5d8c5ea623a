package component

import "github.com/bproctor91/sidewinder/physics"

// PhysicsBody ties an entity to a rigid body owned by the physics engine.
// The handle must reference a live body for the entity's whole lifetime;
// the world's destroy flush releases the body before the entity id.
type PhysicsBody struct {
	Handle physics.Handle
	Type   physics.BodyType
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
