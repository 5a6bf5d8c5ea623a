package component

// Velocity is the authoritative linear velocity in m/s, Y-down.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
