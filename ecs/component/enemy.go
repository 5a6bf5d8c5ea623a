package component

// Enemy carries the data its behavior script runs against. Behavior names
// a script in assets/scripts; patrol bounds are in metres.
type Enemy struct {
	Behavior string
	MinX     float64
	MaxX     float64
}

var EnemyComponent = NewComponent[Enemy]()
