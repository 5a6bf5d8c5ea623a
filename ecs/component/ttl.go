package component

// TTL destroys an entity after Seconds of simulated time. Ephemeral
// entities such as floating hit labels carry one so their removal goes
// through the same end-of-frame flush as everything else.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()
