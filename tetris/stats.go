package tetris

// Stats counts what happened since the game was created. Counters survive
// resets.
type Stats struct {
	Ticks       int64
	Spawns      int
	Locks       int
	RowsCleared int
	Resets      int

	byShape [numShapes]int
}

func (s *Stats) recordSpawn(shape Shape) {
	s.Spawns++
	s.byShape[shape]++
}

// SpawnsOf returns how many pieces of the given shape were spawned.
func (s Stats) SpawnsOf(shape Shape) int {
	if !shape.Valid() {
		return 0
	}
	return s.byShape[shape]
}
