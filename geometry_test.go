package slither

import "testing"

func TestTurn(t *testing.T) {
	cases := []struct {
		name   string
		dir    Cell
		action int
		want   Cell
	}{
		{"right straight", DirRight, 0, DirRight},
		{"right turns right", DirRight, 1, DirDown},
		{"right turns left", DirRight, 2, DirUp},
		{"up turns right", DirUp, 1, DirRight},
		{"up turns left", DirUp, 2, DirLeft},
		{"left turns right", DirLeft, 1, DirUp},
		{"down turns left", DirDown, 2, DirRight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := turn(tc.dir, tc.action); got != tc.want {
				t.Errorf("turn(%v, %d) = %v, want %v", tc.dir, tc.action, got, tc.want)
			}
		})
	}
}

func TestIsReverse(t *testing.T) {
	cases := []struct {
		from, to Cell
		want     bool
	}{
		{DirRight, DirLeft, true},
		{DirLeft, DirRight, true},
		{DirUp, DirDown, true},
		{DirDown, DirUp, true},
		{DirRight, DirUp, false},
		{DirRight, DirRight, false},
		{DirDown, DirLeft, false},
	}
	for _, tc := range cases {
		if got := isReverse(tc.from, tc.to); got != tc.want {
			t.Errorf("isReverse(%v, %v) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParseDirection(t *testing.T) {
	cases := []struct {
		in   string
		want Cell
		ok   bool
	}{
		{"up", DirUp, true},
		{"down", DirDown, true},
		{"left", DirLeft, true},
		{"right", DirRight, true},
		{"north", Cell{}, false},
		{"", Cell{}, false},
		{"UP", Cell{}, false},
	}
	for _, tc := range cases {
		got, ok := parseDirection(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseDirection(%q) = %v, %v; want %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCellInBounds(t *testing.T) {
	cases := []struct {
		c    Cell
		want bool
	}{
		{Cell{0, 0}, true},
		{Cell{MapWidth - 1, MapHeight - 1}, true},
		{Cell{-1, 0}, false},
		{Cell{0, -1}, false},
		{Cell{MapWidth, 0}, false},
		{Cell{0, MapHeight}, false},
	}
	for _, tc := range cases {
		if got := tc.c.InBounds(MapWidth, MapHeight); got != tc.want {
			t.Errorf("%v.InBounds = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestCellAdd(t *testing.T) {
	got := Cell{X: 3, Y: 4}.Add(DirUp)
	if got != (Cell{X: 3, Y: 3}) {
		t.Errorf("Add = %v, want (3,3)", got)
	}
}
