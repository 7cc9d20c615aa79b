package slither

import "testing"

func TestSpawnFoodReplenishes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BotsPerRoom = 0
	r := NewRoom(0, cfg, nil)
	r.occupied[Cell{X: 5, Y: 5}] = struct{}{}
	r.occupied[Cell{X: 6, Y: 5}] = struct{}{}

	r.spawnFood()

	if len(r.food) != TargetFoodCount {
		t.Fatalf("food count = %d, want %d", len(r.food), TargetFoodCount)
	}
	seen := make(map[Cell]struct{})
	for _, c := range r.food {
		if !c.InBounds(MapWidth, MapHeight) {
			t.Errorf("food %v off-map", c)
		}
		if _, occ := r.occupied[c]; occ {
			t.Errorf("food %v spawned on an occupied cell", c)
		}
		if _, dup := seen[c]; dup {
			t.Errorf("duplicate food cell %v", c)
		}
		seen[c] = struct{}{}
	}

	// Already full: a second call must not overshoot the target.
	r.spawnFood()
	if len(r.food) != TargetFoodCount {
		t.Errorf("food count after refill = %d, want %d", len(r.food), TargetFoodCount)
	}
}

func TestRemoveFood(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BotsPerRoom = 0
	r := NewRoom(0, cfg, nil)
	r.food = []Cell{{1, 1}, {2, 2}, {3, 3}}

	r.removeFood(Cell{X: 2, Y: 2})
	if len(r.food) != 2 || r.hasFoodAt(Cell{X: 2, Y: 2}) {
		t.Errorf("removeFood left %v", r.food)
	}

	// Removing an absent cell is a no-op.
	r.removeFood(Cell{X: 9, Y: 9})
	if len(r.food) != 2 {
		t.Errorf("no-op removal changed food to %v", r.food)
	}
}
