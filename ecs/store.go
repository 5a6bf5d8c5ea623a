package ecs

// entityStore tracks entity generations and the free index list. Indexes
// start at 1; index 0 is reserved so the zero Entity is never valid.
// Release happens only from the world's destroy flush, which is what keeps
// an index from being recycled while a flush-pending reference exists.
type entityStore struct {
	gens []generation
	free []entityID
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gens = append(s.gens, 0)
		id = entityID(len(s.gens))
	}
	return makeEntity(id, s.gens[id-1])
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return s.gens[id-1] == e.generation()
}

func (s *entityStore) release(e Entity) {
	if !s.isAlive(e) {
		return
	}
	id := e.id()
	s.gens[id-1]++
	s.free = append(s.free, id)
}
