package slither

import "math/rand"

// spawnFood tops the room's food set back up to TargetFoodCount. Each
// attempt picks a uniformly random cell and accepts it only if it is
// neither occupied by a snake nor already holding food, giving up after
// FoodSpawnAttempts tries per missing item rather than scanning the whole
// grid.
func (r *Room) spawnFood() {
	for len(r.food) < TargetFoodCount {
		placed := false
		for attempt := 0; attempt < FoodSpawnAttempts; attempt++ {
			c := Cell{X: rand.Intn(MapWidth), Y: rand.Intn(MapHeight)}
			if _, occupied := r.occupied[c]; occupied {
				continue
			}
			if r.hasFoodAt(c) {
				continue
			}
			r.food = append(r.food, c)
			placed = true
			break
		}
		if !placed {
			// Grid too crowded to place more food; stop instead of
			// spinning. The next call (after food is eaten, or at round
			// start) tops up again.
			return
		}
	}
}

func (r *Room) hasFoodAt(c Cell) bool {
	for _, f := range r.food {
		if f == c {
			return true
		}
	}
	return false
}

// removeFood deletes one cell from the room's food set, if present.
func (r *Room) removeFood(c Cell) {
	for i, f := range r.food {
		if f == c {
			r.food = append(r.food[:i], r.food[i+1:]...)
			return
		}
	}
}
