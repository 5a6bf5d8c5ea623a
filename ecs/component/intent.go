package component

// Intent is the per-frame movement intent for an entity. The input system
// writes it for the player, the AI system for scripted enemies; the
// movement system is the only consumer.
type Intent struct {
	MoveX float64 // -1..1
	Jump  bool    // edge-triggered: pressed this frame
	Fire  bool
}

var IntentComponent = NewComponent[Intent]()
